package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Context describes one attack. Weapon defaults to the attacker's wielded weapon.
type Context struct {
	Attacker         *entity.Combatant
	Target           *entity.Combatant
	Weapon           *inventory.Item
	Ammo             *inventory.Item
	Swing            formula.Swing
	DrawTimeMs       int
	TargetFacingAway bool
}

// Strike is the outcome of a single swing or natural sub-attack.
type Strike struct {
	Hit            bool
	Damage         int
	Backstab       bool
	Critical       bool
	Blocked        bool
	ShieldAbsorbed int
	ArmorAbsorbed  int
}

// Result is the outcome of one attack resolution.
type Result struct {
	AttackerID string
	TargetID   string
	BodyPart   inventory.BodyPart
	Path       Path
	// Chance is the clamped hit chance every strike rolled against.
	Chance  int
	Hit     bool
	Damage  int
	Strikes []Strike

	Backstab       bool
	Critical       bool
	Blocked        bool
	ShieldAbsorbed int
	ArmorAbsorbed  int

	// Effects lists the effect IDs newly active on the target, sorted.
	Effects []string
	// Broken lists the items whose condition reached zero during the attack.
	Broken     []*inventory.Item
	TargetDead bool
}

// resolution is the per-attack state: the engine plus the roller every
// built-in formula of this attack draws from.
type resolution struct {
	*Engine
	roll        *dice.Roller
	broken      []*inventory.Item
	backstabbed bool
}

// begin starts a resolution drawing from src.
//
// Precondition: src must be non-nil.
func (e *Engine) begin(src dice.Source) *resolution {
	return &resolution{Engine: e, roll: dice.NewLoggedRoller(src, e.logger)}
}

func (r *resolution) notify(msg string) { r.notifier.Notify(msg) }

// struckBodyPart is the built-in struck_body_part formula.
func (r *resolution) struckBodyPart() inventory.BodyPart {
	n := r.roll.Pick(struckWeightTotal)
	for _, w := range struckWeights {
		if n < w.weight {
			return w.part
		}
		n -= w.weight
	}
	return inventory.PartChest
}

// weaponMods sums the swing, proficiency and racial modifiers. Unarmed and
// archery attacks ignore the swing.
func (r *resolution) weaponMods(attacker *entity.Combatant, weapon *inventory.Item, swing formula.Swing) formula.ToHitAndDamageMods {
	var mods formula.ToHitAndDamageMods
	if weapon != nil && weapon.Skill != inventory.SkillArchery {
		mods = mods.Add(formula.Resolve[formula.SwingFunc](r.formulas, formula.SwingModifiers, SwingModifiers)(swing))
	}
	mods = mods.Add(formula.Resolve[formula.WeaponModsFunc](r.formulas, formula.ProficiencyModifiers, ProficiencyModifiers)(attacker, weapon))
	mods = mods.Add(formula.Resolve[formula.WeaponModsFunc](r.formulas, formula.RacialModifiers, RacialModifiers)(attacker, weapon))
	return mods
}

// ResolveAttack runs one attack of ctx.Attacker against ctx.Target: body
// part, hit chance and roll, then per strike damage, backstab, critical,
// block, armour and the metal penalty, and finally equipment wear and
// status effects. Damage is applied to the target's health.
//
// An attack_damage override replaces everything from the hit roll through the
// metal penalty; wear and status effects still follow.
//
// Precondition: src must be non-nil.
// Postcondition: Result.Damage >= 0. A nil attacker or target yields the zero Result.
func (e *Engine) ResolveAttack(ctx Context, src dice.Source) Result {
	a, t := ctx.Attacker, ctx.Target
	if a == nil || t == nil {
		return Result{}
	}
	r := e.begin(src)
	before := effectIDs(t)

	part := formula.Resolve[formula.BodyPartFunc](r.formulas, formula.StruckBodyPart, r.struckBodyPart)()
	res := Result{AttackerID: a.ID, TargetID: t.ID, BodyPart: part}

	weapon := ctx.Weapon
	if weapon == nil {
		weapon = a.Weapon
	}
	res.Path = r.choosePath(a, weapon)
	if res.Path != PathWeapon {
		weapon = nil
	}

	mods := r.weaponMods(a, weapon, ctx.Swing)
	atk := formula.AttackContext{
		Weapon:           weapon,
		Ammo:             ctx.Ammo,
		Swing:            ctx.Swing,
		DrawTimeMs:       ctx.DrawTimeMs,
		TargetFacingAway: ctx.TargetFacingAway,
		BodyPart:         part,
		DamageModifier:   mods.Damage,
	}
	backstab := formula.Resolve[formula.BackstabChanceFunc](r.formulas, formula.BackstabChance, BackstabChance)(a, ctx.TargetFacingAway)

	base := a.Skill(entity.ForWeapon(weapon)) + mods.ToHit + backstab
	if weapon != nil {
		base += weapon.Material.DamageModifier() * 10
	}
	res.Chance = r.ChanceToHit(a, t, base)

	material := a.NaturalMaterial
	if weapon != nil {
		material = weapon.Material
	}

	if override, ok := formula.Lookup[formula.AttackDamageFunc](r.formulas, formula.AttackDamage); ok {
		dmg := max(0, override(a, t, atk))
		res.Strikes = []Strike{{Hit: dmg > 0, Damage: dmg}}
	} else {
		res.Strikes = r.strikes(a, t, atk, base, backstab, res.Path)
	}

	for _, s := range res.Strikes {
		res.Hit = res.Hit || s.Hit
		res.Damage += s.Damage
		res.Backstab = res.Backstab || s.Backstab
		res.Critical = res.Critical || s.Critical
		res.Blocked = res.Blocked || s.Blocked
		res.ShieldAbsorbed += s.ShieldAbsorbed
		res.ArmorAbsorbed += s.ArmorAbsorbed
	}
	t.ApplyDamage(res.Damage)

	if res.Hit {
		wear := formula.Wear{
			Weapon:         weapon,
			BodyPart:       part,
			Inflicted:      res.Damage,
			ShieldAbsorbed: res.ShieldAbsorbed,
			ArmorAbsorbed:  res.ArmorAbsorbed,
			AttackMaterial: material,
		}
		formula.Resolve[formula.EquipmentFunc](r.formulas, formula.DamageEquipment, r.damageEquipment)(a, t, wear)

		r.injectPoison(t, weapon, res.Damage)
		if !a.IsPlayer() && res.Path != PathWeapon {
			monsterHit := formula.Resolve[formula.MonsterHitFunc](r.formulas, formula.MonsterHit, r.monsterHit)
			for _, s := range res.Strikes {
				if s.Damage > 0 {
					monsterHit(a, t, s.Damage)
				}
			}
		}
	}

	res.Effects = newEffects(before, t)
	res.Broken = r.broken
	res.TargetDead = t.IsDead()

	r.logger.Debug("attack resolved",
		zap.String("attacker", a.ID),
		zap.String("target", t.ID),
		zap.String("part", string(part)),
		zap.String("path", string(res.Path)),
		zap.Int("chance", res.Chance),
		zap.Bool("hit", res.Hit),
		zap.Int("damage", res.Damage),
		zap.Int("target_health", t.CurrentHealth),
	)
	return res
}

// strikes rolls every strike of the chosen path.
func (r *resolution) strikes(a, t *entity.Combatant, atk formula.AttackContext, base, backstab int, path Path) []Strike {
	hit := formula.Resolve[formula.HitFunc](r.formulas, formula.SuccessfulHit, r.successfulHit)
	skill := inventory.WeaponSkill(entity.ForWeapon(atk.Weapon))
	material := a.NaturalMaterial
	if atk.Weapon != nil {
		material = atk.Weapon.Material
	}

	var rolls []func() int
	switch path {
	case PathWeapon:
		fn := formula.Resolve[formula.AttackDamageFunc](r.formulas, formula.WeaponAttackDamage, r.weaponAttackDamage)
		rolls = append(rolls, func() int { return fn(a, t, atk) })
	case PathHandToHand:
		fn := formula.Resolve[formula.MatchupFunc](r.formulas, formula.HandToHandAttackDamage, r.handToHandAttackDamage)
		rolls = append(rolls, func() int { return fn(a, t) + atk.DamageModifier })
	case PathNatural:
		for _, sub := range naturalAttacks(a) {
			rolls = append(rolls, func() int { return r.roll.Range(sub.MinDamage, sub.MaxDamage) + atk.DamageModifier })
		}
	}

	out := make([]Strike, 0, len(rolls))
	for _, roll := range rolls {
		var s Strike
		if !hit(a, t, base, atk.BodyPart) {
			out = append(out, s)
			continue
		}
		s.Hit = true
		dmg := roll()

		r.backstabbed = false
		stabbed := formula.Resolve[formula.BackstabDamageFunc](r.formulas, formula.BackstabDamage, r.backstabDamage)(dmg, backstab, atk.Weapon)
		s.Backstab = r.backstabbed || stabbed > dmg
		dmg = stabbed

		dmg, s.Critical = r.applyCritical(a, skill, dmg)
		dmg, s.ShieldAbsorbed, s.Blocked = r.resolveBlock(t, atk.BodyPart, dmg)
		dmg, s.ArmorAbsorbed = ResolveArmor(t, atk.BodyPart, skill, s.Critical, dmg)
		dmg = ApplyMetalPenalty(t, material, dmg)
		s.Damage = max(0, dmg)
		out = append(out, s)
	}
	return out
}

func effectIDs(c *entity.Combatant) map[string]bool {
	ids := make(map[string]bool)
	if c.Effects == nil {
		return ids
	}
	for _, ae := range c.Effects.All() {
		ids[ae.Def.ID] = true
	}
	return ids
}

func newEffects(before map[string]bool, c *entity.Combatant) []string {
	var out []string
	if c.Effects == nil {
		return out
	}
	for _, ae := range c.Effects.All() {
		if !before[ae.Def.ID] {
			out = append(out, ae.Def.ID)
		}
	}
	return out
}
