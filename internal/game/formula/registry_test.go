package formula_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

func newRegistry(t *testing.T) (*formula.Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return formula.NewRegistry(zap.New(core)), logs
}

func constStrength(v int) formula.StrengthFunc {
	return func(int) int { return v }
}

func TestNewRegistry_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { formula.NewRegistry(nil) })
}

func TestResolve_NoOverride_ReturnsBuiltin(t *testing.T) {
	r, _ := newRegistry(t)
	fn := formula.Resolve(r, formula.DamageModifier, constStrength(7))
	assert.Equal(t, 7, fn(50))
}

func TestResolve_NilRegistry_ReturnsBuiltin(t *testing.T) {
	fn := formula.Resolve[formula.StrengthFunc](nil, formula.DamageModifier, constStrength(3))
	assert.Equal(t, 3, fn(50))
}

func TestRegister_HighestPriorityWins(t *testing.T) {
	for _, order := range [][]int{{10, 5, 20}, {10, 20, 5}, {20, 10, 5}, {5, 10, 20}} {
		r, _ := newRegistry(t)
		for _, p := range order {
			r.Register(formula.DamageModifier, "mod", p, constStrength(p))
		}
		fn, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
		require.True(t, ok)
		assert.Equal(t, 20, fn(0), "order %v", order)
		b, _ := r.Active(formula.DamageModifier)
		assert.Equal(t, 20, b.Priority)
	}
}

func TestRegister_TieGoesToMostRecent(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "first", 10, constStrength(1)))
	require.True(t, r.Register(formula.DamageModifier, "second", 10, constStrength(2)))
	fn, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
	require.True(t, ok)
	assert.Equal(t, 2, fn(0))
	b, _ := r.Active(formula.DamageModifier)
	assert.Equal(t, "second", b.Provider)
}

func TestRegister_LowerPriorityIsNoOp(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "high", 10, constStrength(1)))
	assert.False(t, r.Register(formula.DamageModifier, "low", 9, constStrength(2)))
	b, _ := r.Active(formula.DamageModifier)
	assert.Equal(t, "high", b.Provider)
}

func TestRegister_ShapeMismatchRejected(t *testing.T) {
	r, logs := newRegistry(t)
	ok := r.Register(formula.DamageModifier, "bad", 100, func(a, b int) int { return a + b })
	assert.False(t, ok)
	_, active := r.Active(formula.DamageModifier)
	assert.False(t, active)
	entries := logs.FilterMessage("override rejected: call shape mismatch").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "damage_modifier", entries[0].ContextMap()["formula"])
	assert.Equal(t, "bad", entries[0].ContextMap()["provider"])
}

func TestRegister_UnknownNameRejected(t *testing.T) {
	r, logs := newRegistry(t)
	assert.False(t, r.Register("teleport_chance", "mod", 1, constStrength(1)))
	assert.Equal(t, 1, logs.FilterMessage("override rejected: unknown formula").Len())
}

func TestRegister_NilRejected(t *testing.T) {
	r, _ := newRegistry(t)
	assert.False(t, r.Register(formula.DamageModifier, "mod", 1, nil))
}

func TestRegister_SharedShapeAcrossNames(t *testing.T) {
	r, _ := newRegistry(t)
	h2h := func(skill int) int { return skill }
	assert.True(t, r.Register(formula.HandToHandMinDamage, "mod", 1, h2h))
	assert.True(t, r.Register(formula.DamageModifier, "mod", 1, h2h))
}

func TestRegister_CombatantShape(t *testing.T) {
	r, _ := newRegistry(t)
	ok := r.Register(formula.StatsToHit, "mod", 1, func(a, d *entity.Combatant) int { return 42 })
	require.True(t, ok)
	fn := formula.Resolve[formula.MatchupFunc](r, formula.StatsToHit, func(a, d *entity.Combatant) int { return 0 })
	assert.Equal(t, 42, fn(nil, nil))
}

func TestLookup_WrongExpectedShape_Evicts(t *testing.T) {
	r, logs := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "mod", 1, constStrength(9)))
	_, ok := formula.Lookup[formula.LockpickingFunc](r, formula.DamageModifier)
	assert.False(t, ok)
	_, active := r.Active(formula.DamageModifier)
	assert.False(t, active, "stale override must be discarded")
	assert.Equal(t, 1, logs.FilterMessage("override evicted: call shape mismatch").Len())
}

func TestLookup_IsPure(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "mod", 1, constStrength(4)))
	for i := 0; i < 3; i++ {
		fn, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
		require.True(t, ok)
		assert.Equal(t, 4, fn(0))
	}
	_, ok := formula.Lookup[formula.StrengthFunc](r, formula.HandToHandMaxDamage)
	assert.False(t, ok)
	assert.Len(t, r.Bindings(), 1)
}

type stubAdapter struct {
	fn  any
	err error
}

func (s stubAdapter) Adapt(formula.Name, any) (any, error) { return s.fn, s.err }

func TestLookup_AdapterSuccess(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "lua", 1, stubAdapter{fn: constStrength(11)}))
	fn := formula.Resolve(r, formula.DamageModifier, constStrength(0))
	assert.Equal(t, 11, fn(50))
}

func TestLookup_AdapterFailureEvictsAndFallsBack(t *testing.T) {
	r, logs := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "lua", 1, stubAdapter{err: errors.New("arity 2, want 1")}))
	fn := formula.Resolve(r, formula.DamageModifier, constStrength(5))
	assert.Equal(t, 5, fn(50))
	_, active := r.Active(formula.DamageModifier)
	assert.False(t, active)
	assert.Equal(t, 1, logs.FilterMessage("override evicted: adapter failed").Len())
}

func TestLookup_AdapterWrongShapeEvicts(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "lua", 1, stubAdapter{fn: "not a function"}))
	_, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
	assert.False(t, ok)
	_, active := r.Active(formula.DamageModifier)
	assert.False(t, active)
}

func TestEvict_DoesNotRemoveNewerBinding(t *testing.T) {
	r, _ := newRegistry(t)
	adapter := &blockingAdapter{release: make(chan struct{}), entered: make(chan struct{})}
	require.True(t, r.Register(formula.DamageModifier, "lua", 1, adapter))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
	}()
	<-adapter.entered
	require.True(t, r.Register(formula.DamageModifier, "go", 2, constStrength(8)))
	close(adapter.release)
	wg.Wait()

	b, ok := r.Active(formula.DamageModifier)
	require.True(t, ok)
	assert.Equal(t, "go", b.Provider)
}

type blockingAdapter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAdapter) Adapt(formula.Name, any) (any, error) {
	close(b.entered)
	<-b.release
	return nil, errors.New("failed")
}

func TestUnregister_OnlyOwner(t *testing.T) {
	r, _ := newRegistry(t)
	require.True(t, r.Register(formula.DamageModifier, "owner", 1, constStrength(1)))
	assert.False(t, r.Unregister(formula.DamageModifier, "other"))
	assert.True(t, r.Unregister(formula.DamageModifier, "owner"))
	_, ok := r.Active(formula.DamageModifier)
	assert.False(t, ok)
}

func TestNames_CoversEveryShape(t *testing.T) {
	names := formula.Names()
	assert.Len(t, names, 26)
	for _, n := range names {
		assert.True(t, formula.Known(n))
	}
	assert.False(t, formula.Known("teleport_chance"))
}

func TestProperty_HighestPriorityWinsRegardlessOfOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prios := rapid.SliceOfN(rapid.IntRange(-100, 100), 1, 12).Draw(rt, "priorities")
		r := formula.NewRegistry(zap.NewNop())
		best := prios[0]
		for _, p := range prios {
			r.Register(formula.DamageModifier, "p", p, constStrength(p))
			if p > best {
				best = p
			}
		}
		fn, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
		if !ok {
			rt.Fatal("expected an active override")
		}
		if fn(0) != best {
			rt.Fatalf("active override has priority %d, want %d", fn(0), best)
		}
	})
}

func TestRegistry_ConcurrentRegisterAndResolve(t *testing.T) {
	r := formula.NewRegistry(zap.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(p int) {
			defer wg.Done()
			r.Register(formula.DamageModifier, "p", p, constStrength(p))
		}(i)
		go func() {
			defer wg.Done()
			_ = formula.Resolve(r, formula.DamageModifier, constStrength(-1))(0)
		}()
	}
	wg.Wait()
	fn, ok := formula.Lookup[formula.StrengthFunc](r, formula.DamageModifier)
	require.True(t, ok)
	assert.Equal(t, 7, fn(0))
}
