package condition

// HasKind reports whether any active effect is of kind k.
func (s *ActiveSet) HasKind(k Kind) bool {
	if s == nil {
		return false
	}
	for _, ac := range s.effects {
		if ac.Def.Kind == k {
			return true
		}
	}
	return false
}

// OfKind returns the IDs of active effects of kind k, sorted.
func (s *ActiveSet) OfKind(k Kind) []string {
	var ids []string
	for _, ac := range s.All() {
		if ac.Def.Kind == k {
			ids = append(ids, ac.Def.ID)
		}
	}
	return ids
}

// IsInfected reports whether the set carries lycanthropy or vampirism.
// The two infections are mutually exclusive.
func IsInfected(s *ActiveSet) bool {
	return s.HasKind(KindLycanthropy) || s.HasKind(KindVampirism)
}

// ParalysisRounds returns the longest remaining paralysis duration, or 0.
//
// Postcondition: Returns >= 0, or -1 for permanent paralysis.
func ParalysisRounds(s *ActiveSet) int {
	longest := 0
	if s == nil {
		return 0
	}
	for _, ac := range s.effects {
		if ac.Def.Kind != KindParalysis {
			continue
		}
		if ac.DurationRemaining < 0 {
			return -1
		}
		if ac.DurationRemaining > longest {
			longest = ac.DurationRemaining
		}
	}
	return longest
}
