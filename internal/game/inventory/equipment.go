package inventory

// BodyPart identifies a struck or armoured body location.
type BodyPart string

const (
	// PartHead is the head.
	PartHead BodyPart = "head"
	// PartRightArm is the right arm.
	PartRightArm BodyPart = "right_arm"
	// PartLeftArm is the left (shield) arm.
	PartLeftArm BodyPart = "left_arm"
	// PartChest is the chest.
	PartChest BodyPart = "chest"
	// PartHands covers both hands.
	PartHands BodyPart = "hands"
	// PartLegs covers both legs.
	PartLegs BodyPart = "legs"
	// PartFeet covers both feet.
	PartFeet BodyPart = "feet"
)

// BodyParts lists every body part in canonical order.
var BodyParts = []BodyPart{PartHead, PartRightArm, PartLeftArm, PartChest, PartHands, PartLegs, PartFeet}

// Valid reports whether p is one of the seven body parts.
func (p BodyPart) Valid() bool {
	for _, bp := range BodyParts {
		if bp == p {
			return true
		}
	}
	return false
}

// WeaponSkill is the skill a weapon is wielded with.
type WeaponSkill string

const (
	SkillShortBlade WeaponSkill = "short_blade"
	SkillLongBlade  WeaponSkill = "long_blade"
	SkillAxe        WeaponSkill = "axe"
	SkillBlunt      WeaponSkill = "blunt"
	SkillHandToHand WeaponSkill = "hand_to_hand"
	SkillArchery    WeaponSkill = "archery"
)

var validWeaponSkills = map[WeaponSkill]bool{
	SkillShortBlade: true,
	SkillLongBlade:  true,
	SkillAxe:        true,
	SkillBlunt:      true,
	SkillHandToHand: true,
	SkillArchery:    true,
}

// Valid reports whether s is a known weapon skill.
func (s WeaponSkill) Valid() bool { return validWeaponSkills[s] }

// Resilience returns the divisor used to turn inflicted damage into weapon wear.
// Lower values wear faster.
func (s WeaponSkill) Resilience() int {
	switch s {
	case SkillShortBlade, SkillLongBlade:
		return 5
	case SkillAxe:
		return 7
	default:
		return 10
	}
}

// Material is the substance an item or natural attack is made of.
type Material string

const (
	MaterialLeather    Material = "leather"
	MaterialIron       Material = "iron"
	MaterialSteel      Material = "steel"
	MaterialSilver     Material = "silver"
	MaterialElven      Material = "elven"
	MaterialDwarven    Material = "dwarven"
	MaterialMithril    Material = "mithril"
	MaterialAdamantium Material = "adamantium"
	MaterialEbony      Material = "ebony"
	MaterialOrcish     Material = "orcish"
	MaterialDaedric    Material = "daedric"
)

type materialStats struct {
	tier   int
	damage int
}

var materialTable = map[Material]materialStats{
	MaterialLeather:    {tier: 0, damage: 0},
	MaterialIron:       {tier: 0, damage: -1},
	MaterialSteel:      {tier: 1, damage: 0},
	MaterialSilver:     {tier: 2, damage: 0},
	MaterialElven:      {tier: 3, damage: 1},
	MaterialDwarven:    {tier: 4, damage: 2},
	MaterialMithril:    {tier: 5, damage: 3},
	MaterialAdamantium: {tier: 6, damage: 3},
	MaterialEbony:      {tier: 7, damage: 4},
	MaterialOrcish:     {tier: 8, damage: 5},
	MaterialDaedric:    {tier: 9, damage: 6},
}

// Valid reports whether m is a known material.
func (m Material) Valid() bool {
	_, ok := materialTable[m]
	return ok
}

// Tier returns the metal tier of m, 0 (iron, leather) through 9 (daedric).
// Unknown materials are tier 0.
func (m Material) Tier() int {
	return materialTable[m].tier
}

// DamageModifier returns the flat damage bonus for weapons made of m.
func (m Material) DamageModifier() int {
	return materialTable[m].damage
}

// Construction is how a piece of body armour is built.
type Construction string

const (
	ConstructionLeather Construction = "leather"
	ConstructionChain   Construction = "chain"
	ConstructionPlate   Construction = "plate"
)

// ArmorClass groups armour by weight for dodge and weapon-matchup rules.
type ArmorClass int

const (
	ArmorNone ArmorClass = iota
	ArmorLight
	ArmorMedium
	ArmorHeavy
)

// Class returns the armour class of the construction.
func (c Construction) Class() ArmorClass {
	switch c {
	case ConstructionLeather:
		return ArmorLight
	case ConstructionChain:
		return ArmorMedium
	case ConstructionPlate:
		return ArmorHeavy
	default:
		return ArmorNone
	}
}

// ShieldType is the size class of a shield.
type ShieldType string

const (
	ShieldBuckler ShieldType = "buckler"
	ShieldRound   ShieldType = "round"
	ShieldKite    ShieldType = "kite"
	ShieldTower   ShieldType = "tower"
)

var shieldCoverage = map[ShieldType][]BodyPart{
	ShieldBuckler: {PartLeftArm, PartHands},
	ShieldRound:   {PartLeftArm, PartHands, PartChest},
	ShieldKite:    {PartLeftArm, PartHands, PartChest, PartLegs},
	ShieldTower:   {PartLeftArm, PartHands, PartChest, PartLegs, PartHead},
}

// Valid reports whether s is a known shield type.
func (s ShieldType) Valid() bool {
	_, ok := shieldCoverage[s]
	return ok
}

// Protects reports whether a shield of type s covers part.
func (s ShieldType) Protects(part BodyPart) bool {
	for _, p := range shieldCoverage[s] {
		if p == part {
			return true
		}
	}
	return false
}
