package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/combat"
	"github.com/cory-johannsen/dfcombat/internal/game/dice"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

func TestSavingThrow_ProratedBand(t *testing.T) {
	h := newHarness(t, combat.Options{})
	d := fighter("d")
	// Willpower 50 adds 5, so a modifier of 40 makes a throw of 95.
	cases := []struct {
		roll int
		want int
	}{
		{90, 75},
		{95, 100},
		{96, 100},
		{76, 5},
		{75, 0},
		{74, 0},
		{1, 0},
	}
	for _, tc := range cases {
		got := h.engine.SavingThrow(dice.NewSequence(tc.roll-1), entity.ElementFire, entity.FlagFire, d, 40)
		assert.Equal(t, tc.want, got, "roll %d", tc.roll)
	}
}

func TestSavingThrow_ImmuneAtOrAbove100(t *testing.T) {
	h := newHarness(t, combat.Options{})
	seq := dice.NewSequence(99)
	assert.Equal(t, 0, h.engine.SavingThrow(seq, entity.ElementFire, entity.FlagFire, fighter("d"), 45))
	assert.Equal(t, 0, seq.Consumed())
}

func TestSavingThrow_ResistanceNegates(t *testing.T) {
	h := newHarness(t, combat.Options{})
	d := fighter("d")
	d.Resistances = map[entity.Element]int{entity.ElementFire: 30}

	seq := dice.NewSequence(10)
	assert.Equal(t, 0, h.engine.SavingThrow(seq, entity.ElementFire, entity.FlagFire, d, 0))
	assert.Equal(t, 1, seq.Consumed())

	// Resistance roll fails, then the throw of 55 is missed by a roll of 99.
	assert.Equal(t, 100, h.engine.SavingThrow(dice.NewSequence(30, 98), entity.ElementFire, entity.FlagFire, d, 0))
}

func TestSavingThrow_NilTarget(t *testing.T) {
	h := newHarness(t, combat.Options{})
	assert.Equal(t, 0, h.engine.SavingThrow(dice.NewSequence(99), entity.ElementFire, entity.FlagFire, nil, 0))
}

func TestSavingThrowValue_Terms(t *testing.T) {
	cases := []struct {
		name    string
		element entity.Element
		flags   entity.EffectFlags
		setup   func(d *entity.Combatant)
		want    int
	}{
		{"base", entity.ElementShock, entity.FlagShock, nil, 55},
		{"high elf paralysis", entity.ElementParalysis, entity.FlagParalysis,
			func(d *entity.Combatant) { d.Race = entity.RaceHighElf }, 105},
		{"nord frost", entity.ElementFrost, entity.FlagFrost,
			func(d *entity.Combatant) { d.Race = entity.RaceNord }, 85},
		{"nord fire", entity.ElementFire, entity.FlagFire,
			func(d *entity.Combatant) { d.Race = entity.RaceNord }, 55},
		{"breton magic", entity.ElementMagic, entity.FlagMagic,
			func(d *entity.Combatant) { d.Race = entity.RaceBreton }, 85},
		{"biography", entity.ElementShock, entity.FlagShock,
			func(d *entity.Combatant) {
				d.Biography.ResistMods = map[entity.Element]int{entity.ElementShock: -10}
			}, 45},
		{"combined tolerances cancel", entity.ElementDiseaseOrPoison, entity.FlagPoison,
			func(d *entity.Combatant) {
				d.Career = &entity.Career{Tolerances: map[entity.EffectFlags]entity.Tolerance{
					entity.FlagPoison: entity.Resistant | entity.LowTolerance,
				}}
			}, 55},
		{"immune and critically weak", entity.ElementFire, entity.FlagFire,
			func(d *entity.Combatant) {
				d.Career = &entity.Career{Tolerances: map[entity.EffectFlags]entity.Tolerance{
					entity.FlagFire: entity.Immune | entity.CriticalWeakness,
				}}
			}, 55},
		{"disease flag selects disease tolerance", entity.ElementDiseaseOrPoison, entity.FlagDisease,
			func(d *entity.Combatant) {
				d.Career = &entity.Career{Tolerances: map[entity.EffectFlags]entity.Tolerance{
					entity.FlagDisease: entity.CriticalWeakness,
					entity.FlagPoison:  entity.Immune,
				}}
			}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := fighter("d")
			if tc.setup != nil {
				tc.setup(d)
			}
			assert.Equal(t, tc.want, combat.SavingThrowValue(tc.element, tc.flags, d, 0))
		})
	}
}

// Known quirk: the unused element ignores tolerances, biography, racial
// bonuses and magical resistance, keeping only base, modifier and willpower.
func TestSavingThrow_UnusedElementQuirk(t *testing.T) {
	d := fighter("d")
	d.Race = entity.RaceHighElf
	d.Career = &entity.Career{Tolerances: map[entity.EffectFlags]entity.Tolerance{
		entity.FlagParalysis: entity.Immune,
		entity.FlagMagic:     entity.Immune,
	}}
	d.Biography.ResistMods = map[entity.Element]int{entity.ElementUnused: 20}
	d.Resistances = map[entity.Element]int{entity.ElementUnused: 100}

	assert.Equal(t, 65, combat.SavingThrowValue(entity.ElementUnused, entity.FlagParalysis|entity.FlagMagic, d, 10))

	h := newHarness(t, combat.Options{})
	seq := dice.NewSequence(98)
	assert.Equal(t, 100, h.engine.SavingThrow(seq, entity.ElementUnused, 0, d, 10))
	assert.Equal(t, 1, seq.Consumed(), "no resistance roll for the unused element")
}

func TestSavingThrow_OverrideClamped(t *testing.T) {
	h := newHarness(t, combat.Options{})
	mustRegister(t, h.formulas, formula.SavingThrow, func(entity.Element, entity.EffectFlags, *entity.Combatant, int) int { return 150 })
	assert.Equal(t, 100, h.engine.SavingThrow(dice.NewSequence(), entity.ElementFire, entity.FlagFire, fighter("d"), 0))
}

func TestPropertySavingThrowBounds(t *testing.T) {
	h := newHarness(t, combat.Options{})
	rapid.Check(t, func(rt *rapid.T) {
		d := fighter("d")
		d.Stats.Willpower = rapid.IntRange(0, 100).Draw(rt, "willpower")
		element := entity.Element(rapid.IntRange(0, int(entity.ElementUnused)).Draw(rt, "element"))
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")
		seed := rapid.Uint64Range(1, 1<<40).Draw(rt, "seed")

		p := h.engine.SavingThrow(dice.NewSeededSource(seed), element, 0, d, modifier)
		if p < 0 || p > 100 {
			rt.Fatalf("saving throw %d out of bounds", p)
		}
		if combat.SavingThrowValue(element, 0, d, modifier) >= 100 && p != 0 {
			rt.Fatalf("throw >= 100 must yield 0, got %d", p)
		}
	})
}
