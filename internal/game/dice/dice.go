// Package dice provides the randomness abstraction used by every combat roll.
//
// Nothing in the combat core reads a global generator: callers hand a Source to
// each resolution so that a seeded Source reproduces an attack exactly.
package dice

// Source is the randomness provider for all rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Kind labels a roll in the debug log.
type Kind string

const (
	KindRange    Kind = "range"
	KindD100     Kind = "d100"
	KindPermille Kind = "permille"
	KindPick     Kind = "pick"
)
