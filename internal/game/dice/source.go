package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource is a deterministic PCG-backed Source.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source. Two sources created with the
// same seed produce the same sequence.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a deterministic pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// NewSource returns a seeded Source when seed is non-zero and a crypto Source otherwise.
func NewSource(seed uint64) Source {
	if seed == 0 {
		return NewCryptoSource()
	}
	return NewSeededSource(seed)
}

// Sequence replays a fixed list of raw Intn results, clamped to n-1, and
// returns 0 once the list is exhausted. It is used to replay recorded rolls.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence returns a Sequence that replays values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn returns the next recorded value, clamped to [0, n).
//
// Precondition: n > 0.
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.values) {
		return 0
	}
	v := s.values[s.next]
	s.next++
	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	default:
		return v
	}
}

// Consumed returns how many recorded values have been used.
func (s *Sequence) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
