package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
	"github.com/cory-johannsen/dfcombat/internal/game/ruleset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadCareers_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "knight.yaml"), `
id: knight
name: "Knight"
adrenaline_rush: true
tolerances:
  paralysis: [resistant]
  disease: [immune, low_tolerance]
expert_proficiencies: [long_blade, blunt]
attack_modifiers:
  undead: bonus
  daedra: phobia
advancement_multiplier_pct: 150
`)
	careers, err := ruleset.LoadCareers(dir)
	require.NoError(t, err)
	require.Contains(t, careers, "knight")
	k := careers["knight"]
	assert.True(t, k.AdrenalineRush)
	assert.Equal(t, entity.Resistant, k.ToleranceFor(entity.FlagParalysis))
	assert.Equal(t, entity.Immune|entity.LowTolerance, k.ToleranceFor(entity.FlagDisease))
	assert.Equal(t, 25, k.ToleranceFor(entity.FlagDisease).Modifier())
	assert.True(t, k.IsExpert(inventory.SkillLongBlade))
	assert.Equal(t, entity.AttackBonus, k.AttackModifierFor(entity.AffinityUndead))
	assert.Equal(t, entity.AttackPhobia, k.AttackModifierFor(entity.AffinityDaedra))
	assert.Equal(t, 150, k.AdvancementMultiplierPct)
}

func TestCareerDef_DefaultsAdvancement(t *testing.T) {
	c, err := (&ruleset.CareerDef{ID: "x", Name: "X"}).Career()
	require.NoError(t, err)
	assert.Equal(t, 100, c.AdvancementMultiplierPct)
}

func TestCareerDef_RejectsUnknownNames(t *testing.T) {
	d := &ruleset.CareerDef{
		ID:                  "bad",
		Name:                "Bad",
		Tolerances:          map[string][]string{"acid": {"immune"}, "fire": {"fireproof"}},
		ExpertProficiencies: []string{"flail"},
		AttackModifiers:     map[string]string{"goblin": "bonus", "undead": "hatred"},
	}
	_, err := d.Career()
	require.Error(t, err)
	for _, want := range []string{"acid", "fireproof", "flail", "goblin", "hatred"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadCareers_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "id: x\nname: X\n")
	writeFile(t, filepath.Join(dir, "b.yml"), "id: x\nname: Y\n")
	_, err := ruleset.LoadCareers(dir)
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadCareers_MissingDir(t *testing.T) {
	_, err := ruleset.LoadCareers("/nonexistent/careers")
	assert.Error(t, err)
}

func TestLoadCareers_SampleContent(t *testing.T) {
	careers, err := ruleset.LoadCareers("../../../content/careers")
	require.NoError(t, err)
	assert.Contains(t, careers, "knight")
	assert.Contains(t, careers, "nightblade")
}
