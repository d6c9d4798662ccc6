package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	a := dice.NewSeededSource(1234)
	b := dice.NewSeededSource(1234)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(100), b.Intn(100), "draw %d diverged", i)
	}
}

func TestNewSource_ZeroSeedIsCrypto(t *testing.T) {
	src := dice.NewSource(0)
	v := src.Intn(10)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 10)
}

func TestSequence_ClampsAndExhausts(t *testing.T) {
	seq := dice.NewSequence(5, 200, -3)
	assert.Equal(t, 5, seq.Intn(10))
	assert.Equal(t, 9, seq.Intn(10))
	assert.Equal(t, 0, seq.Intn(10))
	assert.Equal(t, 0, seq.Intn(10), "exhausted sequence returns 0")
	assert.Equal(t, 3, seq.Consumed())
}

func TestRoller_D100_OffsetsByOne(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSequence(0, 99), zap.NewNop())
	assert.Equal(t, 1, r.D100())
	assert.Equal(t, 100, r.D100())
}

func TestRoller_Range_Inclusive(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSequence(0, 100), zap.NewNop())
	assert.Equal(t, 3, r.Range(3, 7))
	assert.Equal(t, 7, r.Range(3, 7))
}

func TestRoller_Range_DegenerateConsumesNothing(t *testing.T) {
	seq := dice.NewSequence(4)
	r := dice.NewLoggedRoller(seq, zap.NewNop())
	assert.Equal(t, 5, r.Range(5, 5))
	assert.Equal(t, 5, r.Range(5, 2))
	assert.Equal(t, 0, seq.Consumed())
}

func TestRoller_SuccessRoll(t *testing.T) {
	// d100 rolls of 40 and 41 against a chance of 40.
	r := dice.NewLoggedRoller(dice.NewSequence(39, 40), zap.NewNop())
	assert.True(t, r.SuccessRoll(40))
	assert.False(t, r.SuccessRoll(40))
}

func TestRoller_Permille(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSequence(5, 6), zap.NewNop())
	assert.True(t, r.Permille(6))
	assert.False(t, r.Permille(6))
}

func TestRoller_LogsEveryRoll(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewSequence(10, 20, 30), zap.New(core))
	r.D100()
	r.Range(1, 50)
	r.Pick(4)
	require.Equal(t, 3, logs.FilterMessage("dice roll").Len())
	first := logs.All()[0].ContextMap()
	assert.Equal(t, "d100", first["kind"])
	assert.Equal(t, int64(11), first["result"])
}

func TestNewLoggedRoller_PanicsOnNilSource(t *testing.T) {
	assert.Panics(t, func() { dice.NewLoggedRoller(nil, zap.NewNop()) })
}

func TestProperty_RangeWithinBounds(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		min := rapid.IntRange(-50, 50).Draw(rt, "min")
		max := rapid.IntRange(min, min+100).Draw(rt, "max")
		v := r.Range(min, max)
		assert.GreaterOrEqual(rt, v, min)
		assert.LessOrEqual(rt, v, max)
	})
}

func TestProperty_D100WithinBounds(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		v := r.D100()
		assert.GreaterOrEqual(rt, v, 1)
		assert.LessOrEqual(rt, v, 100)
	})
}
