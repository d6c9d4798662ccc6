package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
	"github.com/cory-johannsen/dfcombat/internal/game/npc"
)

func TestSpawn_Monster(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(ratYAML))
	require.NoError(t, err)

	a, err := tmpl.Spawn(nil, nil)
	require.NoError(t, err)
	b, err := tmpl.Spawn(nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 8, a.CurrentHealth)
	assert.Equal(t, "rat", a.Archetype)
	assert.Equal(t, "rat", a.InfectionTable)
	assert.Equal(t, inventory.MaterialIron, a.NaturalMaterial)
	for _, p := range inventory.BodyParts {
		assert.Equal(t, 6, a.ArmorValues[p], "part %s", p)
	}
	assert.NotNil(t, a.Effects)

	a.Skills[entity.SkillDodging] = 99
	assert.Equal(t, 25, b.Skills[entity.SkillDodging], "spawned skills must not alias the template")
}

func TestSpawn_ClassWithCareerAndGear(t *testing.T) {
	gear := inventory.NewRegistry()
	require.NoError(t, gear.RegisterWeapon(&inventory.WeaponTemplate{
		ID: "longsword", Name: "Longsword", Skill: inventory.SkillLongBlade,
		Material: inventory.MaterialSteel, MinDamage: 2, MaxDamage: 16, MaxCondition: 100,
	}))
	require.NoError(t, gear.RegisterArmor(&inventory.ArmorTemplate{
		ID: "plate_cuirass", Name: "Plate Cuirass", Kind: inventory.KindArmor,
		Construction: inventory.ConstructionPlate, Material: inventory.MaterialIron,
		Parts: []inventory.BodyPart{inventory.PartChest}, ArmorValue: 5, MaxCondition: 100,
	}))
	knight := &entity.Career{ID: "knight", AdrenalineRush: true}
	tmpl := &npc.Template{
		ID: "knight", Name: "Knight", Kind: entity.KindClass, Level: 5, MaxHealth: 40,
		Career: "knight", ArmorValue: 2, Gear: []string{"longsword", "plate_cuirass"},
	}

	c, err := tmpl.Spawn(map[string]*entity.Career{"knight": knight}, gear)
	require.NoError(t, err)
	assert.Same(t, knight, c.Career)
	require.NotNil(t, c.Weapon)
	assert.Equal(t, inventory.SkillLongBlade, c.Weapon.Skill)
	assert.Equal(t, 2, c.ArmorValues[inventory.PartChest], "natural rating only")
	assert.Equal(t, 7, c.ArmorValue(inventory.PartChest))
	assert.Equal(t, 2, c.ArmorValue(inventory.PartHead))
	assert.Equal(t, inventory.ArmorHeavy, c.HeaviestArmor())
}

func TestSpawn_UnknownReferences(t *testing.T) {
	tmpl := &npc.Template{ID: "x", Name: "X", Kind: entity.KindClass, Level: 1, MaxHealth: 1, Career: "bard"}
	_, err := tmpl.Spawn(nil, nil)
	assert.ErrorContains(t, err, "bard")

	tmpl = &npc.Template{ID: "x", Name: "X", Kind: entity.KindMonster, Level: 1, MaxHealth: 1, Gear: []string{"club"}}
	_, err = tmpl.Spawn(nil, nil)
	assert.ErrorContains(t, err, "club")
	_, err = tmpl.Spawn(nil, inventory.NewRegistry())
	assert.ErrorContains(t, err, "club")
}
