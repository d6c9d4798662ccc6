package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/dfcombat/internal/game/combat"
	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// messages collects notifier output.
type messages []string

func (m *messages) Notify(msg string) { *m = append(*m, msg) }

type harness struct {
	engine   *combat.Engine
	formulas *formula.Registry
	msgs     *messages
	logs     *observer.ObservedLogs
}

func newHarness(t *testing.T, opts combat.Options) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	formulas := formula.NewRegistry(zaptest.NewLogger(t))
	msgs := &messages{}
	return &harness{
		engine:   combat.NewEngine(formulas, testEffects(), msgs, logger, opts),
		formulas: formulas,
		msgs:     msgs,
		logs:     logs,
	}
}

func testEffects() *condition.Registry {
	reg := condition.NewRegistry()
	for _, d := range []*condition.Def{
		{ID: "plague", Name: "Plague", Kind: condition.KindDisease, DurationType: condition.DurationPermanent},
		{ID: "stomach_rot", Name: "Stomach Rot", Kind: condition.KindDisease, DurationType: condition.DurationPermanent},
		{ID: "nux_vomica", Name: "Nux Vomica", Kind: condition.KindPoison, DurationType: condition.DurationRounds, Duration: 10},
		{ID: "paralysis", Name: "Paralysis", Kind: condition.KindParalysis, DurationType: condition.DurationRounds, Duration: 8},
		{ID: "lycanthropy_werewolf", Name: "Lycanthropy", Kind: condition.KindLycanthropy, DurationType: condition.DurationPermanent},
		{ID: "vampirism", Name: "Vampirism", Kind: condition.KindVampirism, DurationType: condition.DurationPermanent},
	} {
		reg.Register(d)
	}
	return reg
}

// fighter returns a class NPC with neutral stats and no gear.
func fighter(id string) *entity.Combatant {
	return &entity.Combatant{
		ID:    id,
		Name:  id,
		Kind:  entity.KindClass,
		Level: 10,
		Stats: entity.Stats{
			Strength: 50, Intelligence: 50, Willpower: 50, Agility: 50,
			Endurance: 50, Personality: 50, Speed: 50, Luck: 50,
		},
		Skills:        map[entity.Skill]int{},
		CurrentHealth: 100,
		MaxHealth:     100,
		ArmorValues:   map[inventory.BodyPart]int{},
	}
}

func weapon(skill inventory.WeaponSkill, material inventory.Material, lo, hi int) *inventory.Item {
	return &inventory.Item{
		ID:           "w-" + string(skill),
		Name:         string(material) + " " + string(skill),
		Kind:         inventory.KindWeapon,
		Skill:        skill,
		Material:     material,
		MinDamage:    lo,
		MaxDamage:    hi,
		Condition:    100,
		MaxCondition: 100,
	}
}

func mustRegister(t *testing.T, r *formula.Registry, name formula.Name, fn any) {
	t.Helper()
	require.True(t, r.Register(name, "test", 100, fn))
}
