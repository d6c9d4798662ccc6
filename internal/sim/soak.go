package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Matchup names the two archetypes of a soak duel.
type Matchup struct {
	Attacker string
	Target   string
}

// String returns "attacker vs target".
func (m Matchup) String() string { return m.Attacker + " vs " + m.Target }

// Tally accumulates the outcome of every duel fought for one matchup.
type Tally struct {
	Duels        int
	AttackerWins int
	TargetWins   int
	Draws        int
	Attacks      int
	Hits         int
	Damage       int
}

// HitRate returns Hits/Attacks, or zero when nothing was attempted.
func (t Tally) HitRate() float64 {
	if t.Attacks == 0 {
		return 0
	}
	return float64(t.Hits) / float64(t.Attacks)
}

func (t *Tally) add(rep Report) {
	t.Duels++
	switch rep.Winner {
	case SideAttacker:
		t.AttackerWins++
	case SideTarget:
		t.TargetWins++
	default:
		t.Draws++
	}
	_, results := rep.Results()
	for _, r := range results {
		t.Attacks++
		if r.Hit {
			t.Hits++
			t.Damage += r.Damage
		}
	}
}

// Soak repeatedly fights duels over a fixed set of matchups, cycling through
// them in order, and tallies the outcomes. It satisfies server.Service.
type Soak struct {
	rt       *Runtime
	matchups []Matchup
	rounds   int
	seed     uint64
	limit    int
	sink     func(Matchup, Report) error

	mu      sync.Mutex
	tallies map[Matchup]*Tally

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSoak creates a soak run. A zero limit fights until stopped. A non-zero
// seed makes duel i use seed+i; a zero seed uses the runtime's configured
// seed the same way, or the crypto source when that is zero too. sink, when
// non-nil, receives every finished duel; a sink error ends the run.
//
// Precondition: rt non-nil; matchups non-empty; rounds >= 1; limit >= 0.
func NewSoak(rt *Runtime, matchups []Matchup, rounds int, seed uint64, limit int, sink func(Matchup, Report) error) (*Soak, error) {
	if rt == nil {
		return nil, errors.New("sim.NewSoak: runtime must not be nil")
	}
	if len(matchups) == 0 {
		return nil, errors.New("soak needs at least one matchup")
	}
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be >= 1, got %d", rounds)
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must be >= 0, got %d", limit)
	}
	for _, m := range matchups {
		for _, id := range []string{m.Attacker, m.Target} {
			if _, ok := rt.Content.Templates[id]; !ok {
				return nil, fmt.Errorf("unknown npc template %q", id)
			}
		}
	}
	if seed == 0 {
		seed = rt.Config.Combat.Seed
	}
	return &Soak{
		rt:       rt,
		matchups: append([]Matchup(nil), matchups...),
		rounds:   rounds,
		seed:     seed,
		limit:    limit,
		sink:     sink,
		tallies:  make(map[Matchup]*Tally),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start fights duels until the limit is reached, Stop is called, ctx is
// cancelled, or a duel or the sink fails.
func (s *Soak) Start(ctx context.Context) error {
	for i := 0; s.limit == 0 || i < s.limit; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		default:
		}
		m := s.matchups[i%len(s.matchups)]
		var seed uint64
		if s.seed != 0 {
			seed = s.seed + uint64(i)
		}
		rep, err := s.rt.Duel(DuelOptions{
			Attacker: m.Attacker,
			Target:   m.Target,
			Rounds:   s.rounds,
			Seed:     seed,
		}, nil)
		if err != nil {
			return fmt.Errorf("duel %d (%s): %w", i+1, m, err)
		}
		s.mu.Lock()
		t, ok := s.tallies[m]
		if !ok {
			t = &Tally{}
			s.tallies[m] = t
		}
		t.add(rep)
		s.mu.Unlock()
		if s.sink != nil {
			if err := s.sink(m, rep); err != nil {
				return fmt.Errorf("duel %d (%s): %w", i+1, m, err)
			}
		}
	}
	s.rt.Logger.Info("soak limit reached", zap.Int("duels", s.limit))
	return nil
}

// Stop ends a running Start after its current duel. Safe to call repeatedly.
func (s *Soak) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Tallies returns a copy of the per-matchup tallies.
func (s *Soak) Tallies() map[Matchup]Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Matchup]Tally, len(s.tallies))
	for m, t := range s.tallies {
		out[m] = *t
	}
	return out
}

// Matchups returns the matchups in the order they are fought.
func (s *Soak) Matchups() []Matchup {
	return append([]Matchup(nil), s.matchups...)
}
