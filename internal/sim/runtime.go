package sim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/config"
	"github.com/cory-johannsen/dfcombat/internal/game/combat"
	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/npc"
	"github.com/cory-johannsen/dfcombat/internal/game/ruleset"
	"github.com/cory-johannsen/dfcombat/internal/scripting"
)

// Runtime is a fully wired combat engine with its content and mods.
type Runtime struct {
	Config   config.Config
	Logger   *zap.Logger
	Content  *Content
	Formulas *formula.Registry
	Mods     *scripting.Manager
	Engine   *combat.Engine
	// Rules evaluates the progression formulas with the same overrides.
	Rules *ruleset.Calculator
}

// NewRuntime loads content and mods and builds the engine.
//
// Precondition: cfg must be valid; logger must be non-nil. A nil notifier
// discards combat messages.
// Postcondition: Returns a Runtime whose Close must be called, or an error.
func NewRuntime(cfg config.Config, logger *zap.Logger, notifier combat.Notifier) (*Runtime, error) {
	if logger == nil {
		return nil, errors.New("sim.NewRuntime: logger must not be nil")
	}
	content, err := LoadContent(cfg.Content)
	if err != nil {
		return nil, err
	}
	formulas := formula.NewRegistry(logger.Named("formula"))
	mods := scripting.NewManager(formulas, logger.Named("scripting"), cfg.Scripting.InstructionLimit)
	if cfg.Scripting.ModsDir != "" {
		if err := mods.LoadDir(cfg.Scripting.ModsDir); err != nil {
			mods.Close()
			return nil, fmt.Errorf("loading mods: %w", err)
		}
	}
	engine := combat.NewEngine(formulas, content.Effects, notifier, logger.Named("combat"), combat.OptionsFromConfig(cfg.Combat))
	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Content:  content,
		Formulas: formulas,
		Mods:     mods,
		Engine:   engine,
		Rules:    ruleset.NewCalculator(formulas),
	}, nil
}

// Close unloads every mod.
func (rt *Runtime) Close() { rt.Mods.Close() }

// Source returns the dice source for seed, falling back to the configured
// seed when seed is zero. A zero result selects the crypto source.
func (rt *Runtime) Source(seed uint64) dice.Source {
	if seed == 0 {
		seed = rt.Config.Combat.Seed
	}
	return dice.NewSource(seed)
}

// Roster returns an empty roster spawning from the runtime's content.
func (rt *Runtime) Roster() *npc.Manager {
	return npc.NewManager(rt.Content.Templates, rt.Content.Careers, rt.Content.Gear)
}

// DuelOptions selects the participants of a duel.
type DuelOptions struct {
	Attacker string
	Target   string
	// Weapon, when set, replaces the attacker's spawned weapon.
	Weapon string
	Rounds int
	Seed   uint64
	// AsPlayer spawns the attacker as the player.
	AsPlayer bool
}

// Report is the outcome of a duel or skirmish.
type Report struct {
	Combatants []*entity.Combatant
	Events     []combat.RoundEvent
	// Winner is the winning side, or empty when both sides still stand.
	Winner string
	Rounds int
}

// Results returns every attack result in the order it happened, with the
// round it happened in.
func (r Report) Results() ([]int, []combat.Result) {
	var rounds []int
	var results []combat.Result
	for _, ev := range r.Events {
		if ev.Result != nil {
			rounds = append(rounds, ev.Round)
			results = append(results, *ev.Result)
		}
	}
	return rounds, results
}

// Side names used by duels.
const (
	SideAttacker = "attacker"
	SideTarget   = "target"
)

// Duel spawns the two participants and fights up to opts.Rounds rounds.
//
// Precondition: opts.Rounds >= 1.
func (rt *Runtime) Duel(opts DuelOptions, onEvent func(combat.RoundEvent)) (Report, error) {
	if opts.Rounds < 1 {
		return Report{}, fmt.Errorf("rounds must be >= 1, got %d", opts.Rounds)
	}
	roster := rt.Roster()
	a, err := roster.Spawn(opts.Attacker, SideAttacker)
	if err != nil {
		return Report{}, err
	}
	t, err := roster.Spawn(opts.Target, SideTarget)
	if err != nil {
		return Report{}, err
	}
	if opts.Weapon != "" {
		if err := rt.Content.Arm(a, opts.Weapon); err != nil {
			return Report{}, err
		}
	}
	if opts.AsPlayer {
		a.Kind = entity.KindPlayer
	}

	events := rt.Engine.Duel(a, t, opts.Rounds, rt.Source(opts.Seed), onEvent)
	rep := Report{Combatants: []*entity.Combatant{a, t}, Events: events}
	if len(events) > 0 {
		rep.Rounds = events[len(events)-1].Round
	}
	switch {
	case t.IsDead() && !a.IsDead():
		rep.Winner = SideAttacker
	case a.IsDead() && !t.IsDead():
		rep.Winner = SideTarget
	}
	rt.Logger.Info("duel finished",
		zap.String("attacker", a.ID),
		zap.String("target", t.ID),
		zap.Int("rounds", rep.Rounds),
		zap.String("winner", rep.Winner),
	)
	return rep, nil
}

// Skirmish fights two sides of template IDs. Each combatant attacks the first
// living enemy, by ID, on the other side. Fighting stops when a side is wiped
// out or after rounds rounds.
//
// Precondition: red and blue must be non-empty; rounds >= 1.
func (rt *Runtime) Skirmish(red, blue []string, rounds int, seed uint64, onEvent func(combat.RoundEvent)) (Report, error) {
	if len(red) == 0 || len(blue) == 0 {
		return Report{}, errors.New("both sides need at least one combatant")
	}
	if rounds < 1 {
		return Report{}, fmt.Errorf("rounds must be >= 1, got %d", rounds)
	}
	roster := rt.Roster()
	for _, team := range []struct {
		side string
		ids  []string
	}{{"red", red}, {"blue", blue}} {
		for _, id := range team.ids {
			if _, err := roster.Spawn(id, team.side); err != nil {
				return Report{}, err
			}
		}
	}
	enemy := map[string]string{"red": "blue", "blue": "red"}
	opponent := func(c *entity.Combatant) *entity.Combatant {
		side, _ := roster.SideOf(c.ID)
		if foes := roster.Living(enemy[side]); len(foes) > 0 {
			return foes[0]
		}
		return nil
	}

	src := rt.Source(seed)
	rep := Report{Combatants: roster.All()}
	for round := 1; round <= rounds; round++ {
		order := combat.RollInitiative(rep.Combatants, src)
		for _, ev := range rt.Engine.ResolveRound(round, order, opponent, src) {
			if onEvent != nil {
				onEvent(ev)
			}
			rep.Events = append(rep.Events, ev)
		}
		rep.Rounds = round
		redUp, blueUp := len(roster.Living("red")) > 0, len(roster.Living("blue")) > 0
		if !redUp || !blueUp {
			switch {
			case redUp:
				rep.Winner = "red"
			case blueUp:
				rep.Winner = "blue"
			}
			break
		}
	}
	rt.Logger.Info("skirmish finished",
		zap.Int("combatants", len(rep.Combatants)),
		zap.Int("rounds", rep.Rounds),
		zap.String("winner", rep.Winner),
	)
	return rep, nil
}
