package combat

import (
	"fmt"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// BlockChance is the chance that the target's shield turns a blow aside on a
// body part it protects.
func BlockChance(target *entity.Combatant) int {
	return target.Skill(entity.SkillBlock) * 70 / 100
}

// resolveBlock applies the target's shield. A protected part is fully blocked
// on success. An unprotected part rolls at half the chance and, on success,
// loses that same percentage of the damage.
//
// Postcondition: absorbed >= 0 and damage-absorbed is the returned damage.
func (r *resolution) resolveBlock(target *entity.Combatant, part inventory.BodyPart, damage int) (out, absorbed int, blocked bool) {
	if target.Shield == nil || damage <= 0 {
		return damage, 0, false
	}
	chance := BlockChance(target)
	if target.Shield.Shield.Protects(part) {
		if !r.roll.SuccessRoll(chance) {
			return damage, 0, false
		}
		r.notify(fmt.Sprintf("%s blocked the attack", target.Name))
		return 0, damage, true
	}
	half := chance / 2
	if !r.roll.SuccessRoll(half) {
		return damage, 0, false
	}
	reduced := damage * half / 100
	return damage - reduced, reduced, false
}

// ResolveArmor subtracts the armour of part from damage.
//
// A critical strike scales armour by the weapon's penetration. When an armour
// item covers the part, its class adjusts the armour against the weapon skill.
// The returned damage may be zero or negative.
//
// Postcondition: 0 <= absorbed <= max(damage, 0).
func ResolveArmor(target *entity.Combatant, part inventory.BodyPart, skill inventory.WeaponSkill, critical bool, damage int) (out, absorbed int) {
	armor := target.ArmorValue(part)
	if critical {
		armor = armor * armorPenetration(skill) / 10
	}
	if item := target.ArmorAt(part); item != nil {
		armor = armor * armorMatchupPct(item.ArmorClass(), skill) / 100
	}
	absorbed = min(armor, damage)
	if absorbed < 0 {
		absorbed = 0
	}
	return damage - armor, absorbed
}

// MetalGap is how many tiers the attack material falls short of the target's
// minimum metal. Zero when the target has no requirement.
func MetalGap(target *entity.Combatant, material inventory.Material) int {
	if target == nil || target.MinMetalToHit == "" {
		return 0
	}
	gap := target.MinMetalToHit.Tier() - material.Tier()
	if gap < 0 {
		return 0
	}
	return gap
}

// ApplyMetalPenalty scales damage by the share that an inadequate metal gets through.
func ApplyMetalPenalty(target *entity.Combatant, material inventory.Material, damage int) int {
	return damage * metalGapPct(MetalGap(target, material)) / 100
}
