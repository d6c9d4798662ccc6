// Package formula holds the override registry for every replaceable combat
// and progression formula, together with the call shapes and small value
// types those formulas exchange.
//
// Each formula name has exactly one call shape. A provider registers a
// function for a name with a priority; the highest priority wins and ties go
// to the most recent registration. Call sites resolve a name with the shape
// they expect and fall back to their built-in when no usable override exists.
package formula

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Adapter is implemented by bindings whose shape is only known when they are
// resolved, such as functions defined in a scripting language.
type Adapter interface {
	// Adapt returns a Go function with the call shape of name. builtin is the
	// built-in implementation for the call site (possibly nil) and may be used
	// as a fallback by the returned function.
	Adapt(name Name, builtin any) (any, error)
}

// Binding describes the active override of one formula.
type Binding struct {
	Name     Name
	Provider string
	Priority int
}

type entry struct {
	Binding
	fn  any
	seq uint64
}

// Registry maps formula names to their active override.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	bindings map[Name]entry
	seq      uint64
	logger   *zap.Logger
}

// NewRegistry creates an empty Registry.
//
// Precondition: logger must be non-nil.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		panic("formula.NewRegistry: logger must not be nil")
	}
	return &Registry{
		bindings: make(map[Name]entry),
		logger:   logger,
	}
}

// Register binds fn to name on behalf of provider.
//
// Precondition: fn has the call shape of name, or implements Adapter.
// Postcondition: returns true iff fn became the active binding. Unknown names
// and mismatched shapes are rejected with a warning. A binding is replaced only
// when priority >= the current binding's priority.
func (r *Registry) Register(name Name, provider string, priority int, fn any) bool {
	log := r.logger.With(
		zap.String("formula", string(name)),
		zap.String("provider", provider),
		zap.Int("priority", priority),
	)
	check, ok := shapes[name]
	if !ok {
		log.Warn("override rejected: unknown formula")
		return false
	}
	if fn == nil {
		log.Warn("override rejected: nil function")
		return false
	}
	if _, lazy := fn.(Adapter); !lazy && !check(fn) {
		log.Warn("override rejected: call shape mismatch", zap.String("got", fmt.Sprintf("%T", fn)))
		return false
	}

	r.mu.Lock()
	cur, exists := r.bindings[name]
	if exists && priority < cur.Priority {
		r.mu.Unlock()
		log.Debug("override ignored: lower priority than active binding",
			zap.String("active_provider", cur.Provider),
			zap.Int("active_priority", cur.Priority),
		)
		return false
	}
	r.seq++
	r.bindings[name] = entry{
		Binding: Binding{Name: name, Provider: provider, Priority: priority},
		fn:      fn,
		seq:     r.seq,
	}
	r.mu.Unlock()

	log.Info("override registered")
	return true
}

// Unregister removes the binding for name if it belongs to provider.
//
// Postcondition: returns true iff a binding was removed.
func (r *Registry) Unregister(name Name, provider string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bindings[name]
	if !ok || cur.Provider != provider {
		return false
	}
	delete(r.bindings, name)
	return true
}

// Active returns the binding currently registered for name.
func (r *Registry) Active(name Name) (Binding, bool) {
	if r == nil {
		return Binding{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.bindings[name]
	return e.Binding, ok
}

// Bindings returns every active binding sorted by name.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	out := make([]Binding, 0, len(r.bindings))
	for _, e := range r.bindings {
		out = append(out, e.Binding)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every overridable formula name, sorted.
func Names() []Name {
	out := make([]Name, 0, len(shapes))
	for n := range shapes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the active override for name if it has call shape F.
//
// Postcondition: a binding that cannot be adapted to F is evicted and a
// warning is logged; otherwise the registry is not modified.
func Lookup[F any](r *Registry, name Name) (F, bool) {
	return lookup[F](r, name, nil)
}

// Resolve returns the active override for name, or builtin when there is no
// usable override.
func Resolve[F any](r *Registry, name Name, builtin F) F {
	if fn, ok := lookup[F](r, name, builtin); ok {
		return fn
	}
	return builtin
}

func lookup[F any](r *Registry, name Name, builtin any) (F, bool) {
	var zero F
	if r == nil {
		return zero, false
	}
	r.mu.RLock()
	e, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return zero, false
	}

	fn := e.fn
	if a, lazy := fn.(Adapter); lazy {
		adapted, err := a.Adapt(name, builtin)
		if err != nil {
			r.evict(e, "override evicted: adapter failed", zap.Error(err))
			return zero, false
		}
		fn = adapted
	}
	typed, ok := fn.(F)
	if !ok {
		r.evict(e, "override evicted: call shape mismatch",
			zap.String("got", fmt.Sprintf("%T", fn)),
			zap.String("want", fmt.Sprintf("%T", zero)),
		)
		return zero, false
	}
	return typed, true
}

// evict removes e if it is still the active binding for its name.
func (r *Registry) evict(e entry, msg string, fields ...zap.Field) {
	r.mu.Lock()
	cur, ok := r.bindings[e.Name]
	if ok && cur.seq == e.seq {
		delete(r.bindings, e.Name)
	}
	r.mu.Unlock()
	r.logger.Warn(msg, append([]zap.Field{
		zap.String("formula", string(e.Name)),
		zap.String("provider", e.Provider),
		zap.Int("priority", e.Priority),
	}, fields...)...)
}
