package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every roll is logged at debug level with
// its kind, bounds, and result so a resolution can be audited after the fact.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced with zap.NewNop().
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewLoggedRoller precondition violated: src must be non-nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn returns a value in [0, n) and satisfies Source, so a Roller can be
// handed to anything that needs a plain Source.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Range returns a value in [min, max] inclusive.
//
// Postcondition: returns min when max <= min.
func (r *Roller) Range(min, max int) int {
	if max <= min {
		return min
	}
	v := min + r.src.Intn(max-min+1)
	r.log(KindRange, min, max, v)
	return v
}

// D100 returns a percentile roll in [1, 100].
func (r *Roller) D100() int {
	v := r.src.Intn(100) + 1
	r.log(KindD100, 1, 100, v)
	return v
}

// SuccessRoll reports whether a percentile roll lands at or below chance.
//
// Postcondition: always false for chance <= 0 and always true for chance >= 100,
// but a roll is consumed in both cases so roll sequences stay aligned.
func (r *Roller) SuccessRoll(chance int) bool {
	return r.D100() <= chance
}

// Permille reports whether a roll in [0, 1000) is below chance. Used for the
// sub-percent infection chances.
func (r *Roller) Permille(chance int) bool {
	v := r.src.Intn(1000)
	r.log(KindPermille, 0, 999, v)
	return v < chance
}

// Pick returns an index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(n int) int {
	v := r.src.Intn(n)
	r.log(KindPick, 0, n-1, v)
	return v
}

func (r *Roller) log(kind Kind, min, max, result int) {
	r.logger.Debug("dice roll",
		zap.String("kind", string(kind)),
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("result", result),
	)
}
