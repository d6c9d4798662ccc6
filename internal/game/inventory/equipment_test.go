package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

func TestBodyPart_Valid(t *testing.T) {
	for _, p := range inventory.BodyParts {
		assert.True(t, p.Valid(), "part %q", p)
	}
	assert.Len(t, inventory.BodyParts, 7)
	assert.False(t, inventory.BodyPart("tail").Valid())
}

func TestWeaponSkill_Resilience_Equipment(t *testing.T) {
	assert.Equal(t, 5, inventory.SkillShortBlade.Resilience())
	assert.Equal(t, 5, inventory.SkillLongBlade.Resilience())
	assert.Equal(t, 7, inventory.SkillAxe.Resilience())
	assert.Equal(t, 10, inventory.SkillBlunt.Resilience())
	assert.Equal(t, 10, inventory.SkillArchery.Resilience())
	assert.False(t, inventory.WeaponSkill("polearm").Valid())
}

func TestMaterial_TiersAscend(t *testing.T) {
	order := []inventory.Material{
		inventory.MaterialIron, inventory.MaterialSteel, inventory.MaterialSilver,
		inventory.MaterialElven, inventory.MaterialDwarven, inventory.MaterialMithril,
		inventory.MaterialAdamantium, inventory.MaterialEbony, inventory.MaterialOrcish,
		inventory.MaterialDaedric,
	}
	for i, m := range order {
		assert.True(t, m.Valid())
		assert.Equal(t, i, m.Tier(), "material %q", m)
	}
	assert.Equal(t, -1, inventory.MaterialIron.DamageModifier())
	assert.Equal(t, 6, inventory.MaterialDaedric.DamageModifier())
	assert.Zero(t, inventory.Material("glass").Tier())
	assert.False(t, inventory.Material("glass").Valid())
}

func TestConstruction_Class_UnknownConstruction(t *testing.T) {
	assert.Equal(t, inventory.ArmorLight, inventory.ConstructionLeather.Class())
	assert.Equal(t, inventory.ArmorMedium, inventory.ConstructionChain.Class())
	assert.Equal(t, inventory.ArmorHeavy, inventory.ConstructionPlate.Class())
	assert.Equal(t, inventory.ArmorNone, inventory.Construction("bone").Class())
}

func TestShieldType_Protects(t *testing.T) {
	assert.True(t, inventory.ShieldBuckler.Protects(inventory.PartLeftArm))
	assert.False(t, inventory.ShieldBuckler.Protects(inventory.PartChest))
	assert.True(t, inventory.ShieldTower.Protects(inventory.PartHead))
	assert.False(t, inventory.ShieldKite.Protects(inventory.PartHead))
	assert.False(t, inventory.ShieldType("pavise").Valid())
}

func TestProperty_LargerShieldsCoverMore(t *testing.T) {
	sizes := []inventory.ShieldType{inventory.ShieldBuckler, inventory.ShieldRound, inventory.ShieldKite, inventory.ShieldTower}
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, len(sizes)-2).Draw(t, "smaller")
		part := rapid.SampledFrom(inventory.BodyParts).Draw(t, "part")
		if sizes[i].Protects(part) && !sizes[i+1].Protects(part) {
			t.Fatalf("%s covers %s but %s does not", sizes[i], part, sizes[i+1])
		}
	})
}
