package combat

import (
	"fmt"

	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// RoundEvent records what happened when one combatant acted.
type RoundEvent struct {
	Round     int
	ActorID   string
	ActorName string
	// Result is nil when the actor could not attack.
	Result    *Result
	Narrative string
}

// ResolveRound lets each living combatant in order attack its opponent once.
// Paralysed combatants lose their turn. Effects on every combatant tick down
// at the end of the round.
//
// opponent returns the target of an actor, or nil when it has none.
//
// Precondition: src must be non-nil.
// Postcondition: Returns the events in the order they happened.
func (e *Engine) ResolveRound(round int, order []*entity.Combatant, opponent func(*entity.Combatant) *entity.Combatant, src dice.Source) []RoundEvent {
	var events []RoundEvent
	for _, actor := range order {
		if actor.IsDead() {
			continue
		}
		ev := RoundEvent{Round: round, ActorID: actor.ID, ActorName: actor.Name}
		target := opponent(actor)
		switch {
		case condition.ParalysisRounds(actor.Effects) != 0:
			ev.Narrative = fmt.Sprintf("%s is paralyzed.", actor.Name)
		case target == nil || target.IsDead():
			ev.Narrative = fmt.Sprintf("%s attacks but hits nothing.", actor.Name)
		default:
			r := e.ResolveAttack(Context{Attacker: actor, Target: target, Swing: randomSwing(src)}, src)
			ev.Result = &r
			ev.Narrative = narrate(actor, target, r)
		}
		events = append(events, ev)
	}
	for _, c := range order {
		if c.Effects != nil {
			c.Effects.Tick()
		}
	}
	return events
}

// randomSwing draws one of the six swing directions, left through down-right.
func randomSwing(src dice.Source) formula.Swing {
	return formula.Swing(src.Intn(int(formula.SwingDownRight)) + 1)
}

func narrate(actor, target *entity.Combatant, r Result) string {
	if !r.Hit {
		return fmt.Sprintf("%s misses %s.", actor.Name, target.Name)
	}
	msg := fmt.Sprintf("%s hits %s in the %s for %d.", actor.Name, target.Name, r.BodyPart, r.Damage)
	if r.TargetDead {
		msg += fmt.Sprintf(" %s falls.", target.Name)
	}
	return msg
}

// Duel runs up to rounds rounds between a and b, stopping as soon as one of
// them dies. onEvent, if non-nil, is called for every event as it happens.
//
// Precondition: a, b and src must be non-nil; rounds >= 1.
// Postcondition: Returns every event of the duel in order.
func (e *Engine) Duel(a, b *entity.Combatant, rounds int, src dice.Source, onEvent func(RoundEvent)) []RoundEvent {
	opponent := func(c *entity.Combatant) *entity.Combatant {
		if c == a {
			return b
		}
		return a
	}
	var all []RoundEvent
	for round := 1; round <= rounds; round++ {
		order := RollInitiative([]*entity.Combatant{a, b}, src)
		for _, ev := range e.ResolveRound(round, order, opponent, src) {
			if onEvent != nil {
				onEvent(ev)
			}
			all = append(all, ev)
		}
		if a.IsDead() || b.IsDead() {
			break
		}
	}
	return all
}
