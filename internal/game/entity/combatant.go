// Package entity defines the combatant view the combat core reads and writes:
// attributes, skills, career, race, equipment and active effects.
package entity

import (
	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Kind distinguishes the player from AI-controlled combatants.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindMonster Kind = "monster"
	// KindClass is a human NPC built from a career, such as a knight or a thief.
	KindClass Kind = "class"
)

// Combatant is one side of an attack. The combat core mutates only
// CurrentHealth, item condition, equipment slots and Effects.
//
// A Combatant is not safe for concurrent use.
type Combatant struct {
	ID    string
	Name  string
	Kind  Kind
	Level int

	Stats  Stats
	Skills map[Skill]int

	CurrentHealth int
	MaxHealth     int

	// ArmorValues is the natural armour rating per body part. Worn armour
	// adds its own rating only while equipped.
	ArmorValues map[inventory.BodyPart]int
	// ArmorModifier is added to every part's armour value.
	ArmorModifier int
	// ChanceToHitModifier is the enchantment to-hit bonus of the attacker.
	ChanceToHitModifier int
	// Encumbrance is 0 (unburdened) through 3 (overloaded).
	Encumbrance int

	Career      *Career
	Race        Race
	Biography   Biography
	Resistances map[Element]int

	Affinity    Affinity
	Archetype   string
	UndeadClass UndeadClass
	// MinMetalToHit is the lowest weapon material that can harm the creature; empty means none.
	MinMetalToHit   inventory.Material
	NaturalMaterial inventory.Material
	SubAttacks      []Attack
	// InfectionTable is the archetype key consulted for disease and infection on hit.
	InfectionTable string

	Weapon   *inventory.Item
	Shield   *inventory.Item
	Armor    map[inventory.BodyPart]*inventory.Item
	Clothing map[inventory.BodyPart]*inventory.Item

	Effects *condition.ActiveSet
}

// IsPlayer reports whether c is the player character.
func (c *Combatant) IsPlayer() bool { return c != nil && c.Kind == KindPlayer }

// IsMonster reports whether c is a creature rather than the player or a class NPC.
func (c *Combatant) IsMonster() bool { return c != nil && c.Kind == KindMonster }

// Skill returns the value of skill s, or 0 when untrained.
func (c *Combatant) Skill(s Skill) int {
	if c == nil {
		return 0
	}
	return c.Skills[s]
}

// ApplyDamage reduces current health by amount.
//
// Precondition: amount >= 0; negative amounts are ignored.
// Postcondition: CurrentHealth >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	if c == nil || amount <= 0 {
		return
	}
	c.CurrentHealth -= amount
	if c.CurrentHealth < 0 {
		c.CurrentHealth = 0
	}
}

// IsDead reports whether current health has reached zero.
func (c *Combatant) IsDead() bool { return c != nil && c.CurrentHealth <= 0 }

// ArmorAt returns the body armour covering part, or nil.
func (c *Combatant) ArmorAt(part inventory.BodyPart) *inventory.Item {
	if c == nil {
		return nil
	}
	return c.Armor[part]
}

// ClothingAt returns the clothing covering part, or nil.
func (c *Combatant) ClothingAt(part inventory.BodyPart) *inventory.Item {
	if c == nil {
		return nil
	}
	return c.Clothing[part]
}

// ArmorValue returns the armour rating of part: the natural rating, plus the
// armour currently worn there, plus the global modifier.
//
// Postcondition: Returns >= 0.
func (c *Combatant) ArmorValue(part inventory.BodyPart) int {
	if c == nil {
		return 0
	}
	v := c.ArmorValues[part] + c.ArmorModifier
	if worn := c.Armor[part]; worn != nil {
		v += worn.ArmorValue
	}
	if v < 0 {
		return 0
	}
	return v
}

// HeaviestArmor returns the heaviest armour class worn on any part.
func (c *Combatant) HeaviestArmor() inventory.ArmorClass {
	heaviest := inventory.ArmorNone
	if c == nil {
		return heaviest
	}
	for _, it := range c.Armor {
		if cls := it.ArmorClass(); cls > heaviest {
			heaviest = cls
		}
	}
	return heaviest
}

// Equip places item in the slot matching its kind, replacing what was there.
// Armour and clothing occupy every part they cover.
func (c *Combatant) Equip(item *inventory.Item) {
	if c == nil || item == nil {
		return
	}
	switch item.Kind {
	case inventory.KindWeapon:
		c.Weapon = item
	case inventory.KindShield:
		c.Shield = item
	case inventory.KindArmor:
		if c.Armor == nil {
			c.Armor = make(map[inventory.BodyPart]*inventory.Item)
		}
		for _, p := range item.Parts {
			c.Armor[p] = item
		}
	case inventory.KindClothing:
		if c.Clothing == nil {
			c.Clothing = make(map[inventory.BodyPart]*inventory.Item)
		}
		for _, p := range item.Parts {
			c.Clothing[p] = item
		}
	}
}

// Unequip removes item from every slot it occupies.
//
// Postcondition: returns true iff item was equipped.
func (c *Combatant) Unequip(item *inventory.Item) bool {
	if c == nil || item == nil {
		return false
	}
	found := false
	if c.Weapon == item {
		c.Weapon = nil
		found = true
	}
	if c.Shield == item {
		c.Shield = nil
		found = true
	}
	for p, it := range c.Armor {
		if it == item {
			delete(c.Armor, p)
			found = true
		}
	}
	for p, it := range c.Clothing {
		if it == item {
			delete(c.Clothing, p)
			found = true
		}
	}
	return found
}

// HasEffectKind reports whether an effect of kind k is active on c.
func (c *Combatant) HasEffectKind(k condition.Kind) bool {
	return c != nil && c.Effects.HasKind(k)
}

// EnsureEffects lazily creates the active effect set.
func (c *Combatant) EnsureEffects() *condition.ActiveSet {
	if c.Effects == nil {
		c.Effects = condition.NewActiveSet()
	}
	return c.Effects
}
