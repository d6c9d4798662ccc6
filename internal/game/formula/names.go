package formula

import (
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Name identifies an overridable formula.
type Name string

const (
	DamageModifier         Name = "damage_modifier"
	HandToHandMinDamage    Name = "hand_to_hand_min_damage"
	HandToHandMaxDamage    Name = "hand_to_hand_max_damage"
	LockpickingChance      Name = "lockpicking_chance"
	PlayerLevel            Name = "player_level"
	SkillAdvancement       Name = "skill_advancement"
	CastingCost            Name = "casting_cost"
	StruckBodyPart         Name = "struck_body_part"
	SwingModifiers         Name = "swing_modifiers"
	ProficiencyModifiers   Name = "proficiency_modifiers"
	RacialModifiers        Name = "racial_modifiers"
	EnemyTypeModifier      Name = "enemy_type_modifier"
	AdrenalineRushToHit    Name = "adrenaline_rush_to_hit"
	StatsToHit             Name = "stats_to_hit"
	SkillsToHit            Name = "skills_to_hit"
	AdjustmentsToHit       Name = "adjustments_to_hit"
	SuccessfulHit          Name = "successful_hit"
	HandToHandAttackDamage Name = "hand_to_hand_attack_damage"
	WeaponAttackDamage     Name = "weapon_attack_damage"
	BackstabChance         Name = "backstab_chance"
	BackstabDamage         Name = "backstab_damage"
	CriticalStrikeChance   Name = "critical_strike_chance"
	SavingThrow            Name = "saving_throw"
	DamageEquipment        Name = "damage_equipment"
	MonsterHit             Name = "monster_hit"
	AttackDamage           Name = "attack_damage"
)

// Call shapes. They are aliases so that an unnamed function literal of the
// right signature satisfies the shape check.
type (
	StrengthFunc       = func(strength int) int
	SkillFunc          = func(skill int) int
	LockpickingFunc    = func(skill, lockValue int) int
	PlayerLevelFunc    = func(startingSkillSum, currentSkillSum int) int
	AdvancementFunc    = func(skillValue, skillMultiplier, careerMultiplierPct, level int) int
	CastingCostFunc    = func(costs EffectCosts, starting, increase, perLevel, casterSkill int) SpellCost
	BodyPartFunc       = func() inventory.BodyPart
	SwingFunc          = func(swing Swing) ToHitAndDamageMods
	WeaponModsFunc     = func(attacker *entity.Combatant, weapon *inventory.Item) ToHitAndDamageMods
	MatchupFunc        = func(attacker, target *entity.Combatant) int
	HitFunc            = func(attacker, target *entity.Combatant, chanceToHitMod int, part inventory.BodyPart) bool
	AttackDamageFunc   = func(attacker, target *entity.Combatant, atk AttackContext) int
	BackstabChanceFunc = func(attacker *entity.Combatant, targetFacingAway bool) int
	BackstabDamageFunc = func(damage, backstabChance int, weapon *inventory.Item) int
	CriticalChanceFunc = func(attacker *entity.Combatant) int
	SavingThrowFunc    = func(element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int
	EquipmentFunc      = func(attacker, target *entity.Combatant, wear Wear)
	MonsterHitFunc     = func(attacker, target *entity.Combatant, damage int)
)

func is[F any](fn any) bool {
	_, ok := fn.(F)
	return ok
}

// shapes maps every known name to the check for its call shape.
var shapes = map[Name]func(any) bool{
	DamageModifier:         is[StrengthFunc],
	HandToHandMinDamage:    is[SkillFunc],
	HandToHandMaxDamage:    is[SkillFunc],
	LockpickingChance:      is[LockpickingFunc],
	PlayerLevel:            is[PlayerLevelFunc],
	SkillAdvancement:       is[AdvancementFunc],
	CastingCost:            is[CastingCostFunc],
	StruckBodyPart:         is[BodyPartFunc],
	SwingModifiers:         is[SwingFunc],
	ProficiencyModifiers:   is[WeaponModsFunc],
	RacialModifiers:        is[WeaponModsFunc],
	EnemyTypeModifier:      is[MatchupFunc],
	AdrenalineRushToHit:    is[MatchupFunc],
	StatsToHit:             is[MatchupFunc],
	SkillsToHit:            is[MatchupFunc],
	AdjustmentsToHit:       is[MatchupFunc],
	SuccessfulHit:          is[HitFunc],
	HandToHandAttackDamage: is[MatchupFunc],
	WeaponAttackDamage:     is[AttackDamageFunc],
	BackstabChance:         is[BackstabChanceFunc],
	BackstabDamage:         is[BackstabDamageFunc],
	CriticalStrikeChance:   is[CriticalChanceFunc],
	SavingThrow:            is[SavingThrowFunc],
	DamageEquipment:        is[EquipmentFunc],
	MonsterHit:             is[MonsterHitFunc],
	AttackDamage:           is[AttackDamageFunc],
}

// Known reports whether name is an overridable formula.
func Known(name Name) bool {
	_, ok := shapes[name]
	return ok
}
