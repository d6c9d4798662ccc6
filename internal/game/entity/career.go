package entity

import "github.com/cory-johannsen/dfcombat/internal/game/inventory"

// AttackModifier is a career's stance toward a creature family.
type AttackModifier int

const (
	AttackNormal AttackModifier = iota
	// AttackBonus adds the attacker's level to damage.
	AttackBonus
	// AttackPhobia subtracts the attacker's level from damage.
	AttackPhobia
)

// Career is a player class or a class-NPC archetype's training.
type Career struct {
	ID                  string
	Name                string
	AdrenalineRush      bool
	Tolerances          map[EffectFlags]Tolerance
	ExpertProficiencies []inventory.WeaponSkill
	AttackModifiers     map[Affinity]AttackModifier
	// AdvancementMultiplierPct scales skill advancement; 100 is neutral.
	AdvancementMultiplierPct int
}

// ToleranceFor returns the tolerance flags the career holds against flag.
func (c *Career) ToleranceFor(flag EffectFlags) Tolerance {
	if c == nil {
		return 0
	}
	return c.Tolerances[flag]
}

// IsExpert reports whether the career is expert in skill.
func (c *Career) IsExpert(skill inventory.WeaponSkill) bool {
	if c == nil {
		return false
	}
	for _, s := range c.ExpertProficiencies {
		if s == skill {
			return true
		}
	}
	return false
}

// AttackModifierFor returns the career's modifier against a creature family.
func (c *Career) AttackModifierFor(a Affinity) AttackModifier {
	if c == nil {
		return AttackNormal
	}
	return c.AttackModifiers[a]
}
