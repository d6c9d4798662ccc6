// Package combat resolves attacks between two combatants: hit chance, damage,
// block and armour mitigation, equipment wear, saving throws and the
// secondary effects a hit can inflict. Every step resolves its formula
// through a formula.Registry first and falls back to the built-in rules.
package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/config"
	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// Options are the rule switches of an Engine.
type Options struct {
	// ImprovedAdrenalineRush raises the adrenaline modifier from 5 to 8.
	ImprovedAdrenalineRush bool
	// NoBreakEnchanted keeps enchanted player items equipped at zero condition.
	NoBreakEnchanted bool
	// ClassicDodge uses the attacker's dodging skill in the dodge modifier.
	ClassicDodge bool
}

// OptionsFromConfig maps the combat configuration onto engine options.
func OptionsFromConfig(c config.CombatConfig) Options {
	return Options{
		ImprovedAdrenalineRush: c.ImprovedAdrenalineRush,
		NoBreakEnchanted:       c.NoBreakEnchanted,
		ClassicDodge:           c.ClassicDodge,
	}
}

// Notifier receives player-facing combat messages such as "Critical strike!".
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Engine holds the collaborators shared by every attack resolution.
//
// Engine is safe for concurrent use as long as concurrent resolutions do not
// share a Combatant.
type Engine struct {
	formulas *formula.Registry
	effects  *condition.Registry
	notifier Notifier
	logger   *zap.Logger
	opts     Options
}

// NewEngine creates an Engine.
//
// Precondition: logger must be non-nil. formulas and effects may be nil, in
// which case only built-in formulas run and no effect bundles are applied.
// A nil notifier discards messages.
func NewEngine(formulas *formula.Registry, effects *condition.Registry, notifier Notifier, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		panic("combat.NewEngine: logger must not be nil")
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Engine{
		formulas: formulas,
		effects:  effects,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

// Formulas returns the override registry consulted by the engine.
func (e *Engine) Formulas() *formula.Registry { return e.formulas }
