package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Infection is the on-hit infection entry of a creature archetype.
type Infection struct {
	Kind condition.Kind
	// Permille is the chance per damaging hit, in thousandths.
	Permille int
	// Pool lists the effect IDs one of which is inflicted.
	Pool []string
}

// InfectionTables maps archetype keys to their on-hit infection.
var InfectionTables = map[string]Infection{
	"rat":             {condition.KindDisease, 50, []string{"plague"}},
	"giant_bat":       {condition.KindDisease, 100, []string{"plague", "stomach_rot", "brain_fever"}},
	"zombie":          {condition.KindDisease, 20, []string{"plague"}},
	"mummy":           {condition.KindDisease, 50, []string{"yellow_fever", "consumption", "swamp_rot", "cholera"}},
	"spider":          {condition.KindParalysis, 1000, []string{"paralysis"}},
	"giant_scorpion":  {condition.KindParalysis, 1000, []string{"paralysis"}},
	"werewolf":        {condition.KindLycanthropy, 6, []string{"lycanthropy_werewolf"}},
	"wereboar":        {condition.KindLycanthropy, 6, []string{"lycanthropy_wereboar"}},
	"vampire":         {condition.KindVampirism, 6, []string{"vampirism"}},
	"vampire_ancient": {condition.KindVampirism, 6, []string{"vampirism"}},
}

// InfectionFor returns the infection entry of c, keyed by its infection
// table or, failing that, its archetype.
func InfectionFor(c *entity.Combatant) (Infection, bool) {
	if c == nil {
		return Infection{}, false
	}
	key := c.InfectionTable
	if key == "" {
		key = c.Archetype
	}
	inf, ok := InfectionTables[key]
	return inf, ok
}

// injectPoison gives the target a saving throw against the weapon's poison.
// The poison is wiped from the blade whether or not it takes hold.
func (r *resolution) injectPoison(target *entity.Combatant, weapon *inventory.Item, damage int) {
	if weapon == nil || weapon.Poison == "" || damage <= 0 {
		return
	}
	id := weapon.Poison
	weapon.Poison = ""
	if r.savingThrowResolved(entity.ElementDiseaseOrPoison, entity.FlagPoison, target, 0) > 0 {
		r.applyEffect(target, id, 100)
	}
}

// monsterHit is the built-in monster_hit formula.
func (r *resolution) monsterHit(attacker, target *entity.Combatant, damage int) {
	if attacker == nil || target == nil || damage <= 0 {
		return
	}
	inf, ok := InfectionFor(attacker)
	if !ok || len(inf.Pool) == 0 {
		return
	}
	switch inf.Kind {
	case condition.KindLycanthropy, condition.KindVampirism:
		if !target.IsPlayer() || condition.IsInfected(target.Effects) {
			return
		}
		if r.roll.Permille(inf.Permille) {
			r.applyEffect(target, inf.Pool[r.roll.Pick(len(inf.Pool))], 100)
		}
	case condition.KindDisease:
		if !r.roll.Permille(inf.Permille) {
			return
		}
		if r.savingThrowResolved(entity.ElementDiseaseOrPoison, entity.FlagDisease, target, 0) != 0 {
			r.applyEffect(target, inf.Pool[r.roll.Pick(len(inf.Pool))], 100)
		}
	case condition.KindParalysis:
		if !r.roll.Permille(inf.Permille) {
			return
		}
		if pct := r.savingThrowResolved(entity.ElementParalysis, entity.FlagParalysis, target, 0); pct > 0 {
			r.applyEffect(target, inf.Pool[r.roll.Pick(len(inf.Pool))], pct)
		}
	}
}

// applyEffect applies effect id to target with its base duration scaled by pct.
func (r *resolution) applyEffect(target *entity.Combatant, id string, pct int) {
	def, ok := r.effects.Get(id)
	if !ok {
		r.logger.Warn("unknown effect",
			zap.String("effect", id),
			zap.String("target", target.ID),
		)
		return
	}
	duration := def.BaseDuration()
	if duration > 0 {
		duration = max(1, duration*pct/100)
	}
	if err := target.EnsureEffects().Apply(def, 1, duration); err != nil {
		r.logger.Warn("applying effect", zap.String("effect", id), zap.Error(err))
		return
	}
	r.logger.Debug("effect applied",
		zap.String("effect", id),
		zap.String("target", target.ID),
		zap.Int("duration", duration),
	)
}
