// Package scripting loads Lua mods that override combat formulas. Each mod
// file runs in its own sandboxed GopherLua state and registers overrides
// through the engine.formula API; every call into Lua runs under an
// instruction budget.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// call when no limit is configured.
const DefaultInstructionLimit = 100_000

// countingContext is a context.Context that cancels itself after Done() has
// been called limit times. GopherLua's mainLoopWithContext calls Done() once
// per opcode, making this an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done returns the underlying cancellation channel. Each call decrements the
// remaining counter; when it reaches zero the cancel function fires,
// terminating the Lua VM on the next opcode boundary.
func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to Done().
// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{
		Context:   base,
		cancel:    cancel,
		remaining: rem,
	}, cancel
}

func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//
// The state carries no instruction budget of its own; run code through
// WithBudget.
//
// Postcondition: Returns a non-nil LState. The caller owns it and must call L.Close().
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// WithBudget runs fn with L limited to at most instLimit Lua opcodes. The
// budget is fresh for every call, so an exhausted budget never leaks into the
// next one.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: L has no context attached when WithBudget returns.
func WithBudget(L *lua.LState, instLimit int, fn func() error) error {
	ctx, cancel := newCountingContext(effectiveLimit(instLimit))
	L.SetContext(ctx)
	defer func() {
		L.RemoveContext()
		cancel()
	}()
	return fn()
}
