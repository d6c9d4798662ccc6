package entity

import "github.com/cory-johannsen/dfcombat/internal/game/inventory"

// Stats holds the eight primary attributes, each nominally 1..100.
type Stats struct {
	Strength     int `yaml:"strength"`
	Intelligence int `yaml:"intelligence"`
	Willpower    int `yaml:"willpower"`
	Agility      int `yaml:"agility"`
	Endurance    int `yaml:"endurance"`
	Personality  int `yaml:"personality"`
	Speed        int `yaml:"speed"`
	Luck         int `yaml:"luck"`
}

// Skill identifies a trained skill.
type Skill string

// Weapon skills share their identifiers with inventory.WeaponSkill.
const (
	SkillShortBlade Skill = Skill(inventory.SkillShortBlade)
	SkillLongBlade  Skill = Skill(inventory.SkillLongBlade)
	SkillAxe        Skill = Skill(inventory.SkillAxe)
	SkillBlunt      Skill = Skill(inventory.SkillBlunt)
	SkillHandToHand Skill = Skill(inventory.SkillHandToHand)
	SkillArchery    Skill = Skill(inventory.SkillArchery)

	SkillDodging        Skill = "dodging"
	SkillBackstabbing   Skill = "backstabbing"
	SkillCriticalStrike Skill = "critical_strike"
	SkillLockpicking    Skill = "lockpicking"
	// SkillBlock drives shield blocking.
	SkillBlock Skill = "block"
)

// ForWeapon returns the skill used to wield weapon, or hand-to-hand when unarmed.
func ForWeapon(weapon *inventory.Item) Skill {
	if weapon == nil || weapon.Skill == "" {
		return SkillHandToHand
	}
	return Skill(weapon.Skill)
}

// Race is a playable race.
type Race string

const (
	RaceBreton   Race = "breton"
	RaceRedguard Race = "redguard"
	RaceNord     Race = "nord"
	RaceDarkElf  Race = "dark_elf"
	RaceHighElf  Race = "high_elf"
	RaceWoodElf  Race = "wood_elf"
	RaceKhajiit  Race = "khajiit"
	RaceArgonian Race = "argonian"
)

// Affinity is the creature family used by career bonuses and phobias.
type Affinity string

const (
	AffinityUndead   Affinity = "undead"
	AffinityDaedra   Affinity = "daedra"
	AffinityHumanoid Affinity = "humanoid"
	AffinityAnimal   Affinity = "animal"
)

// UndeadClass distinguishes undead for weapon-type damage rules.
type UndeadClass string

const (
	UndeadNone     UndeadClass = ""
	UndeadSkeletal UndeadClass = "skeletal"
	UndeadLich     UndeadClass = "lich"
	UndeadZombie   UndeadClass = "zombie"
	UndeadMummy    UndeadClass = "mummy"
	UndeadVampire  UndeadClass = "vampire"
	UndeadGhost    UndeadClass = "ghost"
	UndeadWraith   UndeadClass = "wraith"
)

// Attack is one natural attack of a creature.
type Attack struct {
	MinDamage int `yaml:"min"`
	MaxDamage int `yaml:"max"`
}

// Empty reports whether the attack deals no damage at all.
func (a Attack) Empty() bool { return a.MaxDamage <= 0 }

// MaxSubAttacks is the most natural attacks a creature may make in one swing.
const MaxSubAttacks = 3
