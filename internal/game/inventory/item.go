package inventory

// Kind classifies an item instance.
type Kind string

const (
	KindWeapon   Kind = "weapon"
	KindAmmo     Kind = "ammo"
	KindArmor    Kind = "armor"
	KindShield   Kind = "shield"
	KindClothing Kind = "clothing"
)

// Item is a concrete, equippable item instance. Items are created from
// templates and carry their own mutable condition.
type Item struct {
	// ID is the unique instance identifier.
	ID string
	// TemplateID is the ID of the template the item was created from.
	TemplateID string
	Name       string
	Kind       Kind
	Material   Material

	// Weapon and ammo fields.
	Skill     WeaponSkill
	MinDamage int
	MaxDamage int
	TwoHanded bool
	// Poison is the effect ID coating the weapon; empty when clean.
	Poison string

	// Armour, shield and clothing fields.
	Construction Construction
	Shield       ShieldType
	Parts        []BodyPart
	ArmorValue   int

	Enchanted    bool
	Condition    int
	MaxCondition int
}

// IsWeapon reports whether the item is a wielded weapon.
func (i *Item) IsWeapon() bool { return i != nil && i.Kind == KindWeapon }

// IsShield reports whether the item is a shield.
func (i *Item) IsShield() bool { return i != nil && i.Kind == KindShield }

// AverageDamage returns the midpoint of the damage range.
func (i *Item) AverageDamage() float64 {
	if i == nil {
		return 0
	}
	return float64(i.MinDamage+i.MaxDamage) / 2
}

// Covers reports whether the item protects part.
func (i *Item) Covers(part BodyPart) bool {
	if i == nil {
		return false
	}
	if i.Kind == KindShield {
		return i.Shield.Protects(part)
	}
	for _, p := range i.Parts {
		if p == part {
			return true
		}
	}
	return false
}

// ArmorClass returns the class of body armour, or ArmorNone for other items.
func (i *Item) ArmorClass() ArmorClass {
	if i == nil || i.Kind != KindArmor {
		return ArmorNone
	}
	return i.Construction.Class()
}

// LowerCondition reduces the item's condition by amount, flooring at zero.
//
// Precondition: amount >= 0; negative amounts are ignored.
// Postcondition: returns true iff this call brought the condition to zero.
func (i *Item) LowerCondition(amount int) bool {
	if i == nil || amount <= 0 || i.Condition <= 0 {
		return false
	}
	i.Condition -= amount
	if i.Condition < 0 {
		i.Condition = 0
	}
	return i.Condition == 0
}

// Broken reports whether the item's condition has reached zero.
func (i *Item) Broken() bool { return i != nil && i.Condition <= 0 }
