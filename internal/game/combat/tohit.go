package combat

import (
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// SwingModifiers returns the to-hit and damage modifiers of a melee swing.
// Left and right swings are neutral.
func SwingModifiers(swing formula.Swing) formula.ToHitAndDamageMods {
	return swingTable[swing]
}

// ProficiencyModifiers grants an expert in the weapon's skill
// damage level/3+1 and to-hit equal to level.
func ProficiencyModifiers(attacker *entity.Combatant, weapon *inventory.Item) formula.ToHitAndDamageMods {
	if attacker == nil || attacker.Career == nil {
		return formula.ToHitAndDamageMods{}
	}
	if !attacker.Career.IsExpert(inventory.WeaponSkill(entity.ForWeapon(weapon))) {
		return formula.ToHitAndDamageMods{}
	}
	return formula.ToHitAndDamageMods{ToHit: attacker.Level, Damage: attacker.Level/3 + 1}
}

// RacialModifiers returns the racial weapon bonuses of the attacker.
func RacialModifiers(attacker *entity.Combatant, weapon *inventory.Item) formula.ToHitAndDamageMods {
	if attacker == nil {
		return formula.ToHitAndDamageMods{}
	}
	skill := entity.ForWeapon(weapon)
	var bonus int
	switch attacker.Race {
	case entity.RaceDarkElf:
		b := attacker.Level / 4
		return formula.ToHitAndDamageMods{ToHit: b, Damage: b}
	case entity.RaceRedguard:
		if weapon != nil && skill != entity.SkillArchery {
			bonus = attacker.Level / 3
		}
	case entity.RaceWoodElf:
		if skill == entity.SkillArchery {
			bonus = attacker.Level / 3
		}
	case entity.RaceKhajiit:
		if weapon == nil {
			bonus = attacker.Level / 3
		}
	}
	return formula.ToHitAndDamageMods{ToHit: bonus, Damage: bonus}
}

// AdrenalineRushToHit rewards an attacker and penalises the attacker against a
// target whose career grants adrenaline rush while below an eighth of their
// maximum health.
func (e *Engine) AdrenalineRushToHit(attacker, target *entity.Combatant) int {
	mod := 5
	if e.opts.ImprovedAdrenalineRush {
		mod = 8
	}
	var total int
	if rushing(attacker) {
		total += mod
	}
	if rushing(target) {
		total -= mod
	}
	return total
}

func rushing(c *entity.Combatant) bool {
	return c != nil && c.Career != nil && c.Career.AdrenalineRush && c.CurrentHealth < c.MaxHealth/8
}

// StatsToHit is the luck and agility differential between attacker and target.
func StatsToHit(attacker, target *entity.Combatant) int {
	if attacker == nil || target == nil {
		return 0
	}
	return (attacker.Stats.Luck-target.Stats.Luck)/10 + (attacker.Stats.Agility-target.Stats.Agility)/5
}

// SkillsToHit subtracts the target's dodge, scaled by how freely the target
// can move. With ClassicDodge the attacker's dodging skill is used instead.
func (e *Engine) SkillsToHit(attacker, target *entity.Combatant) int {
	if target == nil {
		return 0
	}
	dodger := target
	if e.opts.ClassicDodge && attacker != nil {
		dodger = attacker
	}
	return -(dodger.Skill(entity.SkillDodging) * DodgeMalus(target) / 100)
}

// DodgeMalus is the percentage of the dodging skill that applies given the
// target's encumbrance, armour and shield.
//
// Postcondition: Returns a value in [5, 100].
func DodgeMalus(target *entity.Combatant) int {
	enc := formula.Clamp(target.Encumbrance, 0, len(encumbrancePenalty)-1)
	malus := 100 - encumbrancePenalty[enc] - armorDodgePenalty(target.HeaviestArmor()) - shieldDodgePenalty(target.Shield)
	if malus < 5 {
		return 5
	}
	return malus
}

// AdjustmentsToHit applies the flat monster and biography adjustments.
func AdjustmentsToHit(attacker, target *entity.Combatant) int {
	if target == nil {
		return 0
	}
	adj := -50
	if target.IsMonster() {
		adj += 40
	}
	if target.IsPlayer() {
		adj -= target.Biography.AvoidHitMod
	}
	return adj
}

// ChanceToHit sums base with the adrenaline, enchantment, stat, skill and
// adjustment terms, each resolved through the formula registry.
//
// Postcondition: Returns a value in [MinChanceToHit, MaxChanceToHit].
func (e *Engine) ChanceToHit(attacker, target *entity.Combatant, base int) int {
	if attacker == nil || target == nil {
		return MinChanceToHit
	}
	chance := base
	chance += formula.Resolve[formula.MatchupFunc](e.formulas, formula.AdrenalineRushToHit, e.AdrenalineRushToHit)(attacker, target)
	chance += attacker.ChanceToHitModifier
	chance += formula.Resolve[formula.MatchupFunc](e.formulas, formula.StatsToHit, StatsToHit)(attacker, target)
	chance += formula.Resolve[formula.MatchupFunc](e.formulas, formula.SkillsToHit, e.SkillsToHit)(attacker, target)
	chance += formula.Resolve[formula.MatchupFunc](e.formulas, formula.AdjustmentsToHit, AdjustmentsToHit)(attacker, target)
	return formula.Clamp(chance, MinChanceToHit, MaxChanceToHit)
}

// successfulHit is the built-in successful_hit formula.
func (r *resolution) successfulHit(attacker, target *entity.Combatant, chanceToHitMod int, _ inventory.BodyPart) bool {
	return r.roll.SuccessRoll(r.ChanceToHit(attacker, target, chanceToHitMod))
}
