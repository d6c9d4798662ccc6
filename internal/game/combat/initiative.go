package combat

import (
	"sort"

	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
)

// RollInitiative orders combatants for a round by d20 + speed/10, highest first.
// Ties keep the input order.
//
// Precondition: combatants must be non-nil; src must be non-nil.
// Postcondition: Returns a new slice holding the same combatants.
func RollInitiative(combatants []*entity.Combatant, src dice.Source) []*entity.Combatant {
	type rolled struct {
		c    *entity.Combatant
		init int
	}
	rs := make([]rolled, len(combatants))
	for i, c := range combatants {
		rs[i] = rolled{c: c, init: src.Intn(20) + 1 + c.Stats.Speed/10}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].init > rs[j].init })
	out := make([]*entity.Combatant, len(rs))
	for i, r := range rs {
		out[i] = r.c
	}
	return out
}
