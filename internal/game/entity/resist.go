package entity

// Element is the saving-throw category of an incoming effect.
type Element int

const (
	ElementFire Element = iota
	ElementFrost
	ElementDiseaseOrPoison
	ElementShock
	ElementMagic
	ElementParalysis
	// ElementUnused has no tolerance, biography, resistance or racial terms.
	// Its saving throw is built from the base, the caller modifier and willpower only.
	ElementUnused
)

var elementNames = [...]string{"fire", "frost", "disease_or_poison", "shock", "magic", "paralysis", "unused"}

// String returns the snake_case name of the element.
func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return "unknown"
	}
	return elementNames[e]
}

// ParseElement returns the element named s.
func ParseElement(s string) (Element, bool) {
	for i, n := range elementNames {
		if n == s {
			return Element(i), true
		}
	}
	return 0, false
}

// EffectFlags describes what an incoming effect carries.
type EffectFlags uint8

const (
	FlagParalysis EffectFlags = 1 << iota
	FlagMagic
	FlagPoison
	FlagFire
	FlagFrost
	FlagShock
	FlagDisease
)

// Has reports whether every bit of f2 is set in f.
func (f EffectFlags) Has(f2 EffectFlags) bool { return f&f2 == f2 && f2 != 0 }

// Tolerance is a combinable set of career tolerance flags.
type Tolerance uint8

const (
	Immune Tolerance = 1 << iota
	Resistant
	LowTolerance
	CriticalWeakness
)

// Modifier sums the saving-throw adjustment of every set flag:
// Immune +50, Resistant +25, LowTolerance -25, CriticalWeakness -50.
func (t Tolerance) Modifier() int {
	mod := 0
	if t&Immune != 0 {
		mod += 50
	}
	if t&Resistant != 0 {
		mod += 25
	}
	if t&LowTolerance != 0 {
		mod -= 25
	}
	if t&CriticalWeakness != 0 {
		mod -= 50
	}
	return mod
}

// ParseTolerance returns the tolerance flag named s.
func ParseTolerance(s string) (Tolerance, bool) {
	switch s {
	case "immune":
		return Immune, true
	case "resistant":
		return Resistant, true
	case "low_tolerance":
		return LowTolerance, true
	case "critical_weakness":
		return CriticalWeakness, true
	}
	return 0, false
}

// ToleranceFlag selects the career tolerance entry consulted for an element.
// Disease-or-poison picks disease when the effect carries the disease flag.
// Returns 0 for ElementUnused.
func ToleranceFlag(e Element, flags EffectFlags) EffectFlags {
	switch e {
	case ElementFire:
		return FlagFire
	case ElementFrost:
		return FlagFrost
	case ElementShock:
		return FlagShock
	case ElementMagic:
		return FlagMagic
	case ElementParalysis:
		return FlagParalysis
	case ElementDiseaseOrPoison:
		if flags.Has(FlagDisease) {
			return FlagDisease
		}
		return FlagPoison
	}
	return 0
}

// Biography holds the player's background modifiers.
type Biography struct {
	AvoidHitMod int
	ResistMods  map[Element]int
}

var effectFlagNames = map[string]EffectFlags{
	"paralysis": FlagParalysis,
	"magic":     FlagMagic,
	"poison":    FlagPoison,
	"fire":      FlagFire,
	"frost":     FlagFrost,
	"shock":     FlagShock,
	"disease":   FlagDisease,
}

// ParseEffectFlag returns the single effect flag named s.
func ParseEffectFlag(s string) (EffectFlags, bool) {
	f, ok := effectFlagNames[s]
	return f, ok
}
