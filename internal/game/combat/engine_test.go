package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/dfcombat/internal/config"
	"github.com/cory-johannsen/dfcombat/internal/game/combat"
	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

func TestNewEngine_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { combat.NewEngine(nil, nil, nil, nil, combat.Options{}) })
}

func TestNewEngine_NilCollaborators(t *testing.T) {
	e := combat.NewEngine(nil, nil, nil, zaptest.NewLogger(t), combat.Options{})
	a, _ := swordsman()
	res := e.ResolveAttack(combat.Context{Attacker: a, Target: monster("m")}, dice.NewSequence(10, 0))
	assert.Equal(t, 10, res.Damage)
	assert.Nil(t, e.Formulas())
}

func TestOptionsFromConfig(t *testing.T) {
	opts := combat.OptionsFromConfig(config.CombatConfig{ImprovedAdrenalineRush: true, ClassicDodge: true, Seed: 9})
	assert.Equal(t, combat.Options{ImprovedAdrenalineRush: true, ClassicDodge: true}, opts)
}

func TestNotifierFunc(t *testing.T) {
	var got string
	combat.NotifierFunc(func(msg string) { got = msg }).Notify("hello")
	assert.Equal(t, "hello", got)
}

func TestEngine_FormulasUsedByEveryResolution(t *testing.T) {
	h := newHarness(t, combat.Options{})
	assert.Same(t, h.formulas, h.engine.Formulas())
	mustRegister(t, h.formulas, formula.DamageModifier, func(int) int { return 100 })

	p := fighter("p")
	p.Kind = entity.KindPlayer
	p.Skills[entity.SkillHandToHand] = 0
	// Unarmed 1..1 plus an overridden strength bonus of 100.
	res := h.engine.ResolveAttack(combat.Context{Attacker: p, Target: monster("m")}, dice.NewSequence(10, 0))
	assert.Equal(t, 101, res.Damage)
}
