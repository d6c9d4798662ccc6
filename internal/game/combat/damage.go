package combat

import (
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Path is the damage path chosen for an attack.
type Path string

const (
	PathWeapon     Path = "weapon"
	PathHandToHand Path = "hand_to_hand"
	// PathNatural is a creature's own claws, bites and stings.
	PathNatural Path = "natural"
)

// DamageModifier is the strength damage bonus, floor((strength-50)/5).
func DamageModifier(strength int) int {
	return formula.FloorDiv(strength-50, 5)
}

// HandToHandMinDamage is the unarmed minimum damage for skill.
func HandToHandMinDamage(skill int) int { return skill/10 + 1 }

// HandToHandMaxDamage is the unarmed maximum damage for skill.
func HandToHandMaxDamage(skill int) int { return skill/5 + 1 }

// EnemyTypeModifier applies the attacker career's bonus or phobia against
// the target's affinity as plus or minus the attacker's level.
func EnemyTypeModifier(attacker, target *entity.Combatant) int {
	if attacker == nil || target == nil || attacker.Career == nil {
		return 0
	}
	switch attacker.Career.AttackModifierFor(target.Affinity) {
	case entity.AttackBonus:
		return attacker.Level
	case entity.AttackPhobia:
		return -attacker.Level
	}
	return 0
}

// BackstabChance is the attacker's backstabbing skill when the target faces away.
func BackstabChance(attacker *entity.Combatant, targetFacingAway bool) int {
	if attacker == nil || !targetFacingAway {
		return 0
	}
	return attacker.Skill(entity.SkillBackstabbing)
}

// CriticalStrikeChance is a third of the attacker's critical strike skill.
func CriticalStrikeChance(attacker *entity.Combatant) int {
	return attacker.Skill(entity.SkillCriticalStrike) / 3
}

func isUndead(c *entity.Combatant) bool {
	return c != nil && (c.Affinity == entity.AffinityUndead || c.UndeadClass != entity.UndeadNone)
}

func (r *resolution) damageModifier(strength int) int {
	return formula.Resolve[formula.StrengthFunc](r.formulas, formula.DamageModifier, DamageModifier)(strength)
}

func (r *resolution) enemyTypeModifier(attacker, target *entity.Combatant) int {
	return formula.Resolve[formula.MatchupFunc](r.formulas, formula.EnemyTypeModifier, EnemyTypeModifier)(attacker, target)
}

func (r *resolution) handToHandRange(attacker *entity.Combatant) (int, int) {
	skill := attacker.Skill(entity.SkillHandToHand)
	lo := formula.Resolve[formula.SkillFunc](r.formulas, formula.HandToHandMinDamage, HandToHandMinDamage)(skill)
	hi := formula.Resolve[formula.SkillFunc](r.formulas, formula.HandToHandMaxDamage, HandToHandMaxDamage)(skill)
	return lo, hi
}

// handToHandAttackDamage is the built-in hand_to_hand_attack_damage formula.
func (r *resolution) handToHandAttackDamage(attacker, target *entity.Combatant) int {
	if attacker == nil || target == nil {
		return 0
	}
	lo, hi := r.handToHandRange(attacker)
	dmg := r.roll.Range(lo, hi)
	if attacker.IsPlayer() {
		dmg += r.damageModifier(attacker.Stats.Strength)
	}
	return dmg + r.enemyTypeModifier(attacker, target)
}

// weaponAttackDamage is the built-in weapon_attack_damage formula.
func (r *resolution) weaponAttackDamage(attacker, target *entity.Combatant, atk formula.AttackContext) int {
	w := atk.Weapon
	if attacker == nil || target == nil || w == nil {
		return 0
	}
	dmg := r.roll.Range(w.MinDamage, w.MaxDamage) + atk.DamageModifier
	if attacker.IsPlayer() {
		dmg += r.damageModifier(attacker.Stats.Strength)
	}
	material := w.Material.DamageModifier()
	if atk.Ammo != nil {
		material = (material + atk.Ammo.Material.DamageModifier()) / 2
	}
	dmg += material

	if w.Skill == inventory.SkillArchery && atk.DrawTimeMs > 0 {
		dmg = dmg * drawTimePct(atk.DrawTimeMs) / 100
	}
	dmg += r.enemyTypeModifier(attacker, target)

	if isUndead(target) {
		if undeadResists(target.UndeadClass, w.Skill) {
			dmg /= 2
		}
		if w.Material == inventory.MaterialSilver {
			dmg *= 2
		}
	}
	return dmg
}

// undeadResists reports whether an undead of class c takes half damage from skill.
// Skeletons and liches shrug off edges. Vampires and ghosts take full damage;
// every other undead resists everything but crushing blows and axes.
func undeadResists(c entity.UndeadClass, skill inventory.WeaponSkill) bool {
	switch c {
	case entity.UndeadSkeletal, entity.UndeadLich:
		return skill == inventory.SkillShortBlade || skill == inventory.SkillLongBlade || skill == inventory.SkillAxe
	case entity.UndeadVampire, entity.UndeadGhost:
		return false
	}
	return skill != inventory.SkillBlunt && skill != inventory.SkillAxe
}

// choosePath picks the damage path. The player always swings a wielded
// weapon; AI combatants use whichever of weapon and natural attack has the
// higher average, preferring the weapon on a tie.
func (r *resolution) choosePath(attacker *entity.Combatant, weapon *inventory.Item) Path {
	natural := PathHandToHand
	if !attacker.IsPlayer() && len(naturalAttacks(attacker)) > 0 {
		natural = PathNatural
	}
	if weapon == nil {
		return natural
	}
	if attacker.IsPlayer() {
		return PathWeapon
	}
	if weapon.AverageDamage() >= r.naturalAverage(attacker, natural) {
		return PathWeapon
	}
	return natural
}

func (r *resolution) naturalAverage(attacker *entity.Combatant, p Path) float64 {
	if p == PathHandToHand {
		lo, hi := r.handToHandRange(attacker)
		return float64(lo+hi) / 2
	}
	var sum float64
	for _, a := range naturalAttacks(attacker) {
		sum += float64(a.MinDamage+a.MaxDamage) / 2
	}
	return sum
}

// naturalAttacks returns the non-empty sub-attacks, at most MaxSubAttacks.
func naturalAttacks(c *entity.Combatant) []entity.Attack {
	var out []entity.Attack
	for _, a := range c.SubAttacks {
		if len(out) == entity.MaxSubAttacks {
			break
		}
		if !a.Empty() {
			out = append(out, a)
		}
	}
	return out
}

// backstabDamage is the built-in backstab_damage formula.
func (r *resolution) backstabDamage(damage, backstabChance int, weapon *inventory.Item) int {
	if backstabChance <= 1 || !r.roll.SuccessRoll(backstabChance) {
		return damage
	}
	r.backstabbed = true
	r.notify("Successful backstab!")
	return damage * backstabMultiplier(weapon)
}

// applyCritical rolls the critical strike chance and scales damage on success.
func (r *resolution) applyCritical(attacker *entity.Combatant, skill inventory.WeaponSkill, damage int) (int, bool) {
	chance := formula.Resolve[formula.CriticalChanceFunc](r.formulas, formula.CriticalStrikeChance, CriticalStrikeChance)(attacker)
	if chance <= 0 || !r.roll.SuccessRoll(chance) {
		return damage, false
	}
	r.notify("Critical strike!")
	return damage * criticalDamagePct(skill) / 100, true
}
