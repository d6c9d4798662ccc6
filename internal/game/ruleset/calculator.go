// Package ruleset loads careers and computes the progression formulas that
// sit beside combat: lockpicking, player level, skill advancement and spell cost.
package ruleset

import (
	"math"

	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// Calculator evaluates progression formulas, honouring registered overrides.
type Calculator struct {
	formulas *formula.Registry
}

// NewCalculator returns a Calculator resolving overrides from formulas.
// A nil registry always uses the built-in formulas.
func NewCalculator(formulas *formula.Registry) *Calculator {
	return &Calculator{formulas: formulas}
}

// LockpickingChance returns the percent chance to pick a lock.
func (c *Calculator) LockpickingChance(skill, lockValue int) int {
	return formula.Resolve(c.formulas, formula.LockpickingChance, DefaultLockpickingChance)(skill, lockValue)
}

// PlayerLevel returns the character level implied by skill growth.
func (c *Calculator) PlayerLevel(startingSkillSum, currentSkillSum int) int {
	return formula.Resolve(c.formulas, formula.PlayerLevel, DefaultPlayerLevel)(startingSkillSum, currentSkillSum)
}

// SkillAdvancement returns the number of uses needed to advance a skill.
func (c *Calculator) SkillAdvancement(skillValue, skillMultiplier, careerMultiplierPct, level int) int {
	return formula.Resolve(c.formulas, formula.SkillAdvancement, DefaultSkillAdvancement)(skillValue, skillMultiplier, careerMultiplierPct, level)
}

// CastingCost returns the gold and spell point cost of one spell effect.
func (c *Calculator) CastingCost(costs formula.EffectCosts, starting, increase, perLevel, casterSkill int) formula.SpellCost {
	return formula.Resolve(c.formulas, formula.CastingCost, DefaultCastingCost)(costs, starting, increase, perLevel, casterSkill)
}

// DefaultLockpickingChance is clamp(skill - 5*lock, 5, 95).
func DefaultLockpickingChance(skill, lockValue int) int {
	return formula.Clamp(skill-5*lockValue, 5, 95)
}

// DefaultPlayerLevel is floor((current - starting + 28) / 15).
func DefaultPlayerLevel(startingSkillSum, currentSkillSum int) int {
	return formula.FloorDiv(currentSkillSum-startingSkillSum+28, 15)
}

// DefaultSkillAdvancement is floor(skill * mult * careerPct/100 * 1.04^level * 2/5) + 1.
//
// Precondition: careerMultiplierPct below 1 is treated as 1.
// Postcondition: Returns >= 1 for non-negative inputs.
func DefaultSkillAdvancement(skillValue, skillMultiplier, careerMultiplierPct, level int) int {
	if careerMultiplierPct < 1 {
		careerMultiplierPct = 1
	}
	uses := float64(skillValue) * float64(skillMultiplier) * float64(careerMultiplierPct) / 100 *
		math.Pow(1.04, float64(level)) * 2 / 5
	return int(math.Floor(uses)) + 1
}

// DefaultCastingCost prices one effect: gold is the offset plus CostA per
// starting unit plus CostB per full increase step; spell points are
// gold*(110-skill)/400 with a minimum of 5 for any non-free effect.
func DefaultCastingCost(costs formula.EffectCosts, starting, increase, perLevel, casterSkill int) formula.SpellCost {
	if perLevel < 1 {
		perLevel = 1
	}
	gold := costs.OffsetGold + costs.CostA*starting + costs.CostB*(increase/perLevel)
	sp := gold * (110 - casterSkill) / 400
	if gold > 0 && sp < 5 {
		sp = 5
	}
	return formula.SpellCost{Gold: gold, SpellPoints: sp}
}
