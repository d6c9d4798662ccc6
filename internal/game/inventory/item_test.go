package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

func TestMaterial_Tables(t *testing.T) {
	cases := []struct {
		m      inventory.Material
		tier   int
		damage int
	}{
		{inventory.MaterialIron, 0, -1},
		{inventory.MaterialSteel, 1, 0},
		{inventory.MaterialSilver, 2, 0},
		{inventory.MaterialElven, 3, 1},
		{inventory.MaterialDwarven, 4, 2},
		{inventory.MaterialMithril, 5, 3},
		{inventory.MaterialAdamantium, 6, 3},
		{inventory.MaterialEbony, 7, 4},
		{inventory.MaterialOrcish, 8, 5},
		{inventory.MaterialDaedric, 9, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, tc.m.Tier(), "tier of %s", tc.m)
		assert.Equal(t, tc.damage, tc.m.DamageModifier(), "damage of %s", tc.m)
	}
	assert.False(t, inventory.Material("glass").Valid())
	assert.Equal(t, 0, inventory.Material("glass").Tier())
}

func TestConstruction_Class(t *testing.T) {
	assert.Equal(t, inventory.ArmorLight, inventory.ConstructionLeather.Class())
	assert.Equal(t, inventory.ArmorMedium, inventory.ConstructionChain.Class())
	assert.Equal(t, inventory.ArmorHeavy, inventory.ConstructionPlate.Class())
	assert.Equal(t, inventory.ArmorNone, inventory.Construction("").Class())
}

func TestItem_LowerCondition_ReportsBreak(t *testing.T) {
	it := &inventory.Item{Condition: 5, MaxCondition: 10}
	assert.False(t, it.LowerCondition(3))
	assert.Equal(t, 2, it.Condition)
	assert.True(t, it.LowerCondition(10))
	assert.Equal(t, 0, it.Condition)
	assert.False(t, it.LowerCondition(1), "already broken items do not break again")
}

func TestItem_LowerCondition_IgnoresNonPositive(t *testing.T) {
	it := &inventory.Item{Condition: 5}
	assert.False(t, it.LowerCondition(-3))
	assert.False(t, it.LowerCondition(0))
	assert.Equal(t, 5, it.Condition)
}

func TestItem_NilSafe(t *testing.T) {
	var it *inventory.Item
	assert.False(t, it.IsWeapon())
	assert.False(t, it.Covers(inventory.PartHead))
	assert.Equal(t, 0.0, it.AverageDamage())
	assert.Equal(t, inventory.ArmorNone, it.ArmorClass())
	assert.False(t, it.LowerCondition(1))
}

func TestItem_Covers(t *testing.T) {
	armor := &inventory.Item{Kind: inventory.KindArmor, Parts: []inventory.BodyPart{inventory.PartLegs}}
	assert.True(t, armor.Covers(inventory.PartLegs))
	assert.False(t, armor.Covers(inventory.PartHead))

	shield := &inventory.Item{Kind: inventory.KindShield, Shield: inventory.ShieldRound}
	assert.True(t, shield.Covers(inventory.PartChest))
	assert.False(t, shield.Covers(inventory.PartLegs))
}

func TestProperty_LowerCondition_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := &inventory.Item{Condition: rapid.IntRange(0, 1000).Draw(rt, "cond")}
		n := rapid.IntRange(0, 10).Draw(rt, "hits")
		for i := 0; i < n; i++ {
			it.LowerCondition(rapid.IntRange(-50, 500).Draw(rt, "amount"))
			if it.Condition < 0 {
				rt.Fatalf("condition went negative: %d", it.Condition)
			}
		}
	})
}
