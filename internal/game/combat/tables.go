package combat

import (
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Hit chance bounds.
const (
	MinChanceToHit = 3
	MaxChanceToHit = 97
)

// Saving throw bounds.
const (
	minSavingThrow = 5
	maxSavingThrow = 95
)

var swingTable = map[formula.Swing]formula.ToHitAndDamageMods{
	formula.SwingUp:        {ToHit: 10, Damage: -4},
	formula.SwingDownRight: {ToHit: 5, Damage: -2},
	formula.SwingDownLeft:  {ToHit: -5, Damage: 2},
	formula.SwingDown:      {ToHit: -10, Damage: 4},
}

// struckWeights sums to 20.
var struckWeights = []struct {
	part   inventory.BodyPart
	weight int
}{
	{inventory.PartHead, 2},
	{inventory.PartRightArm, 3},
	{inventory.PartLeftArm, 3},
	{inventory.PartChest, 5},
	{inventory.PartHands, 2},
	{inventory.PartLegs, 4},
	{inventory.PartFeet, 1},
}

const struckWeightTotal = 20

func backstabMultiplier(weapon *inventory.Item) int {
	if weapon == nil {
		return 2
	}
	switch {
	case weapon.Skill == inventory.SkillArchery:
		return 3
	case weapon.TwoHanded:
		return 2
	}
	switch weapon.Skill {
	case inventory.SkillShortBlade:
		return 5
	case inventory.SkillLongBlade, inventory.SkillAxe:
		return 3
	case inventory.SkillBlunt, inventory.SkillHandToHand:
		return 2
	}
	return 1
}

func criticalDamagePct(skill inventory.WeaponSkill) int {
	switch skill {
	case inventory.SkillLongBlade:
		return 130
	case inventory.SkillAxe, inventory.SkillArchery:
		return 150
	case inventory.SkillBlunt:
		return 200
	}
	return 100
}

// armorPenetration is applied to armour on a critical strike as armor*pen/10.
func armorPenetration(skill inventory.WeaponSkill) int {
	switch skill {
	case inventory.SkillShortBlade:
		return 0
	case inventory.SkillLongBlade, inventory.SkillArchery:
		return 5
	case inventory.SkillAxe:
		return 7
	}
	return 10
}

// armorMatchupPct scales armour by how well its class resists the weapon skill.
func armorMatchupPct(class inventory.ArmorClass, skill inventory.WeaponSkill) int {
	switch class {
	case inventory.ArmorLight:
		switch skill {
		case inventory.SkillBlunt:
			return 150
		case inventory.SkillLongBlade:
			return 50
		}
	case inventory.ArmorMedium:
		switch skill {
		case inventory.SkillShortBlade, inventory.SkillHandToHand:
			return 150
		case inventory.SkillAxe:
			return 50
		}
	case inventory.ArmorHeavy:
		switch skill {
		case inventory.SkillShortBlade, inventory.SkillHandToHand, inventory.SkillLongBlade:
			return 150
		case inventory.SkillBlunt:
			return 50
		}
	}
	return 100
}

// metalGapPct is the share of damage that gets through when the attack
// material is gap tiers below the target's minimum metal.
func metalGapPct(gap int) int {
	switch {
	case gap <= 0:
		return 100
	case gap == 1:
		return 50
	case gap == 2:
		return 25
	}
	return 0
}

// drawTimePct scales archery damage by how long the bow was drawn.
func drawTimePct(ms int) int {
	switch {
	case ms < 800:
		return 0
	case ms < 5000:
		return 100
	case ms < 6000:
		return 80
	case ms < 8000:
		return 60
	case ms < 9000:
		return 40
	}
	return 20
}

var encumbrancePenalty = [...]int{0, 15, 30, 45}

func armorDodgePenalty(class inventory.ArmorClass) int {
	switch class {
	case inventory.ArmorLight:
		return 10
	case inventory.ArmorMedium:
		return 20
	case inventory.ArmorHeavy:
		return 35
	}
	return 0
}

func shieldDodgePenalty(shield *inventory.Item) int {
	if shield == nil {
		return 0
	}
	switch shield.Shield {
	case inventory.ShieldBuckler:
		return 5
	case inventory.ShieldRound:
		return 10
	case inventory.ShieldKite:
		return 15
	case inventory.ShieldTower:
		return 25
	}
	return 0
}
