package condition

import (
	"fmt"
	"sort"
)

// ActiveEffect tracks one applied effect on a combatant.
type ActiveEffect struct {
	Def               *Def
	Stacks            int
	DurationRemaining int // -1 = permanent
}

// ActiveSet tracks all effects currently applied to one combatant.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	effects map[string]*ActiveEffect
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[string]*ActiveEffect)}
}

// Apply adds or updates an effect on this combatant.
// If the effect is already present, stacks are incremented (capped at MaxStacks).
// If MaxStacks == 0 (unstackable), stacks is always stored as 1.
// duration is rounds remaining; use -1 for permanent.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true; stacks are incremented on re-apply (capped at MaxStacks);
// DurationRemaining is updated to max(existing, duration) on re-apply.
func (s *ActiveSet) Apply(def *Def, stacks, duration int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}

	if existing, ok := s.effects[def.ID]; ok {
		if def.MaxStacks == 0 {
			// unstackable: stacks stays at 1; extend duration if longer
			if duration > existing.DurationRemaining {
				existing.DurationRemaining = duration
			}
			return nil
		}
		newStacks := existing.Stacks + stacks
		if newStacks > def.MaxStacks {
			newStacks = def.MaxStacks
		}
		existing.Stacks = newStacks
		if duration > existing.DurationRemaining {
			existing.DurationRemaining = duration
		}
		return nil
	}

	effectiveStacks := stacks
	if def.MaxStacks == 0 {
		effectiveStacks = 1
	}
	capped := effectiveStacks
	if def.MaxStacks > 0 && capped > def.MaxStacks {
		capped = def.MaxStacks
	}
	s.effects[def.ID] = &ActiveEffect{
		Def:               def,
		Stacks:            capped,
		DurationRemaining: duration,
	}
	return nil
}

// Remove deletes the effect with the given ID from the set.
// If the effect is not present, Remove is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.effects, id)
}

// Tick decrements the DurationRemaining of all "rounds"-type effects by 1.
// Effects that reach 0 are removed; permanent effects are not affected.
//
// Postcondition: For every id in the returned slice, Has(id) is false.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, ac := range s.effects {
		if ac.Def.DurationType != DurationRounds || ac.DurationRemaining < 0 {
			continue
		}
		ac.DurationRemaining--
		if ac.DurationRemaining <= 0 {
			expired = append(expired, id)
			delete(s.effects, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// Has reports whether the effect with id is currently active. A nil set has no effects.
func (s *ActiveSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.effects[id]
	return ok
}

// Stacks returns the current stack count for effect id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if s == nil {
		return 0
	}
	if ac, ok := s.effects[id]; ok {
		return ac.Stacks
	}
	return 0
}

// All returns the active effects sorted by ID.
// The slice is a new allocation but the ActiveEffect values are shared; callers must not modify them.
func (s *ActiveSet) All() []*ActiveEffect {
	if s == nil {
		return nil
	}
	out := make([]*ActiveEffect, 0, len(s.effects))
	for _, ac := range s.effects {
		out = append(out, ac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}
