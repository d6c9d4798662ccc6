package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

func validWeapon() *inventory.WeaponTemplate {
	return &inventory.WeaponTemplate{
		ID:           "steel_longsword",
		Name:         "Steel Longsword",
		Skill:        inventory.SkillLongBlade,
		Material:     inventory.MaterialSteel,
		MinDamage:    2,
		MaxDamage:    16,
		MaxCondition: 1000,
	}
}

func TestWeaponTemplate_Validate_RejectsEmpty(t *testing.T) {
	w := &inventory.WeaponTemplate{}
	assert.Error(t, w.Validate())
}

func TestWeaponTemplate_Validate_AcceptsMinimal(t *testing.T) {
	assert.NoError(t, validWeapon().Validate())
}

func TestWeaponTemplate_Validate_DamageRange(t *testing.T) {
	w := validWeapon()
	w.MaxDamage = 1
	assert.ErrorContains(t, w.Validate(), "max_damage")
}

func TestWeaponTemplate_Validate_UnknownSkill(t *testing.T) {
	w := validWeapon()
	w.Skill = "flail"
	assert.ErrorContains(t, w.Validate(), "skill")
}

func TestWeaponTemplate_NewItem_FreshInstance(t *testing.T) {
	w := validWeapon()
	a := w.NewItem()
	b := w.NewItem()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, inventory.KindWeapon, a.Kind)
	assert.Equal(t, "steel_longsword", a.TemplateID)
	assert.Equal(t, 1000, a.Condition)
	assert.Equal(t, 1000, a.MaxCondition)
}

func TestWeaponTemplate_NewItem_Ammo(t *testing.T) {
	w := validWeapon()
	w.Skill = inventory.SkillArchery
	w.Ammo = true
	assert.Equal(t, inventory.KindAmmo, w.NewItem().Kind)
}

func TestLoadWeapons_LoadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `id: ebony_dagger
name: Ebony Dagger
skill: short_blade
material: ebony
min_damage: 1
max_damage: 6
poison: nux_vomica
max_condition: 500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ebony_dagger.yaml"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0644))

	weapons, err := inventory.LoadWeapons(dir)
	require.NoError(t, err)
	require.Len(t, weapons, 1)
	w := weapons[0]
	assert.Equal(t, "ebony_dagger", w.ID)
	assert.Equal(t, inventory.SkillShortBlade, w.Skill)
	assert.Equal(t, inventory.MaterialEbony, w.Material)
	assert.Equal(t, "nux_vomica", w.Poison)
}

func TestLoadWeapons_InvalidRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: bad\n"), 0644))
	_, err := inventory.LoadWeapons(dir)
	assert.ErrorContains(t, err, "bad.yaml")
}

func TestLoadWeapons_MissingDir(t *testing.T) {
	_, err := inventory.LoadWeapons("/nonexistent/weapons")
	assert.Error(t, err)
}

func TestWeaponSkill_Resilience(t *testing.T) {
	assert.Equal(t, 5, inventory.SkillShortBlade.Resilience())
	assert.Equal(t, 5, inventory.SkillLongBlade.Resilience())
	assert.Equal(t, 7, inventory.SkillAxe.Resilience())
	assert.Equal(t, 10, inventory.SkillBlunt.Resilience())
	assert.Equal(t, 10, inventory.SkillHandToHand.Resilience())
	assert.Equal(t, 10, inventory.SkillArchery.Resilience())
}

func TestProperty_WeaponTemplate_ValidRangesAccepted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := validWeapon()
		w.MinDamage = rapid.IntRange(0, 50).Draw(rt, "min")
		w.MaxDamage = rapid.IntRange(w.MinDamage, 100).Draw(rt, "max")
		if err := w.Validate(); err != nil {
			rt.Fatalf("valid range %d-%d rejected: %v", w.MinDamage, w.MaxDamage, err)
		}
	})
}
