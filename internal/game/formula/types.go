package formula

import "github.com/cory-johannsen/dfcombat/internal/game/inventory"

// Swing is the direction of a melee swing.
type Swing int

const (
	SwingNone Swing = iota
	SwingLeft
	SwingRight
	// SwingUp is a thrust.
	SwingUp
	SwingDown
	SwingDownLeft
	SwingDownRight
)

var swingNames = [...]string{"none", "left", "right", "up", "down", "down_left", "down_right"}

// String returns the snake_case name of the swing.
func (s Swing) String() string {
	if s < 0 || int(s) >= len(swingNames) {
		return "unknown"
	}
	return swingNames[s]
}

// ParseSwing returns the swing named s.
func ParseSwing(s string) (Swing, bool) {
	for i, n := range swingNames {
		if n == s {
			return Swing(i), true
		}
	}
	return SwingNone, false
}

// ToHitAndDamageMods is a pair of additive to-hit and damage modifiers.
type ToHitAndDamageMods struct {
	ToHit  int
	Damage int
}

// Add returns the component-wise sum of m and o.
func (m ToHitAndDamageMods) Add(o ToHitAndDamageMods) ToHitAndDamageMods {
	return ToHitAndDamageMods{ToHit: m.ToHit + o.ToHit, Damage: m.Damage + o.Damage}
}

// SpellCost is the price of casting one effect.
type SpellCost struct {
	Gold        int
	SpellPoints int
}

// EffectCosts are the per-effect cost coefficients of a spell component.
type EffectCosts struct {
	OffsetGold int
	CostA      int
	CostB      int
}

// AttackContext describes the weapon side of one attack.
type AttackContext struct {
	Weapon           *inventory.Item
	Ammo             *inventory.Item
	Swing            Swing
	DrawTimeMs       int
	TargetFacingAway bool
	BodyPart         inventory.BodyPart
	// DamageModifier is the summed swing, proficiency and racial damage bonus.
	DamageModifier int
}

// Wear is the damage an attack delivered and absorbed, handed to the
// equipment durability step.
type Wear struct {
	Weapon         *inventory.Item
	BodyPart       inventory.BodyPart
	Inflicted      int
	ShieldAbsorbed int
	ArmorAbsorbed  int
	AttackMaterial inventory.Material
}
