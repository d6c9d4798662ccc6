package combat

import (
	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// SavingThrow returns the percentage of an incoming effect that lands on the
// target: 0 when fully resisted, 100 when it lands in full.
//
// Postcondition: Returns a value in [0, 100].
func (e *Engine) SavingThrow(src dice.Source, element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int {
	r := e.begin(src)
	return r.savingThrowResolved(element, flags, target, modifier)
}

func (r *resolution) savingThrowResolved(element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int {
	fn := formula.Resolve[formula.SavingThrowFunc](r.formulas, formula.SavingThrow, r.savingThrow)
	return formula.Clamp(fn(element, flags, target, modifier), 0, 100)
}

// savingThrow is the built-in saving_throw formula.
func (r *resolution) savingThrow(element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int {
	if target == nil {
		return 0
	}
	throw := SavingThrowValue(element, flags, target, modifier)
	if element != entity.ElementUnused {
		if chance := target.Resistances[element]; chance > 0 && r.roll.SuccessRoll(chance) {
			return 0
		}
	}
	if throw >= 100 {
		return 0
	}
	throw = max(minSavingThrow, min(throw, maxSavingThrow))
	roll := r.roll.D100()
	switch {
	case roll > throw:
		return 100
	case roll >= throw-20:
		return 100 - 5*(throw-roll)
	}
	return 0
}

// SavingThrowValue is the unclamped throw of target against element.
//
// ElementUnused only receives the base, the caller modifier and willpower.
func SavingThrowValue(element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int {
	base := 50 + modifier + target.Stats.Willpower/10
	if element == entity.ElementUnused {
		return base
	}
	if element == entity.ElementParalysis && target.Race == entity.RaceHighElf {
		base += 50
	}
	base += target.Career.ToleranceFor(entity.ToleranceFlag(element, flags)).Modifier()
	base += target.Biography.ResistMods[element]
	switch {
	case element == entity.ElementFrost && target.Race == entity.RaceNord:
		base += 30
	case element == entity.ElementMagic && target.Race == entity.RaceBreton:
		base += 30
	}
	return base
}
