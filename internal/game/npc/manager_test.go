package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/npc"
)

func testManager() *npc.Manager {
	return npc.NewManager(map[string]*npc.Template{
		"rat":    {ID: "rat", Name: "Rat", Kind: entity.KindMonster, Level: 1, MaxHealth: 8},
		"spider": {ID: "spider", Name: "Giant Spider", Kind: entity.KindMonster, Level: 4, MaxHealth: 24},
	}, nil, nil)
}

func TestManager_SpawnAndGet(t *testing.T) {
	m := testManager()
	c, err := m.Spawn("rat", "blue")
	require.NoError(t, err)
	assert.Equal(t, "rat-blue-1", c.ID)
	assert.Equal(t, 8, c.CurrentHealth)

	got, ok := m.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)
	side, ok := m.SideOf(c.ID)
	require.True(t, ok)
	assert.Equal(t, "blue", side)
}

func TestManager_SpawnErrors(t *testing.T) {
	m := testManager()
	_, err := m.Spawn("rat", "")
	assert.Error(t, err)
	_, err = m.Spawn("dragon", "red")
	assert.ErrorContains(t, err, "dragon")
}

func TestManager_OnSideSortedAndLiving(t *testing.T) {
	m := testManager()
	a, _ := m.Spawn("spider", "red")
	b, _ := m.Spawn("rat", "red")
	_, _ = m.Spawn("rat", "blue")

	red := m.OnSide("red")
	require.Len(t, red, 2)
	assert.Less(t, red[0].ID, red[1].ID)

	b.ApplyDamage(100)
	living := m.Living("red")
	require.Len(t, living, 1)
	assert.Same(t, a, living[0])
	assert.Empty(t, m.OnSide("green"))
	assert.Len(t, m.All(), 3)
}

func TestManager_Remove(t *testing.T) {
	m := testManager()
	c, _ := m.Spawn("rat", "red")
	require.NoError(t, m.Remove(c.ID))
	_, ok := m.Get(c.ID)
	assert.False(t, ok)
	assert.Empty(t, m.OnSide("red"))
	assert.Error(t, m.Remove(c.ID))
}

func TestManager_FindOnSide(t *testing.T) {
	m := testManager()
	spider, _ := m.Spawn("spider", "red")
	assert.Same(t, spider, m.FindOnSide("red", "giant"))
	assert.Nil(t, m.FindOnSide("red", "rat"))
	assert.Nil(t, m.FindOnSide("blue", "giant"))
}

func TestManager_TemplateIDs(t *testing.T) {
	m := testManager()
	assert.Equal(t, []string{"rat", "spider"}, m.TemplateIDs())
	_, ok := m.Template("rat")
	assert.True(t, ok)
}

func TestProperty_SpawnIDsUnique(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := testManager()
		n := rapid.IntRange(1, 30).Draw(rt, "n")
		seen := make(map[string]bool)
		for i := 0; i < n; i++ {
			side := rapid.SampledFrom([]string{"red", "blue"}).Draw(rt, "side")
			c, err := m.Spawn("rat", side)
			if err != nil {
				rt.Fatalf("spawn: %v", err)
			}
			if seen[c.ID] {
				rt.Fatalf("duplicate id %q", c.ID)
			}
			seen[c.ID] = true
		}
		if len(m.All()) != n {
			rt.Fatalf("tracked %d, want %d", len(m.All()), n)
		}
	})
}
