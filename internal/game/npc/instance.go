package npc

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Spawn creates a live combatant from the template.
//
// careers resolves the template's career ID; gear resolves its equipment IDs.
// Either may be nil when the template references none.
//
// Precondition: t must be valid.
// Postcondition: CurrentHealth == MaxHealth; every body part carries the natural
// ArmorValue and gear armour adds its rating while worn;
// returns an error when a referenced career or item is unknown.
func (t *Template) Spawn(careers map[string]*entity.Career, gear *inventory.Registry) (*entity.Combatant, error) {
	c := &entity.Combatant{
		ID:              uuid.NewString(),
		Name:            t.Name,
		Kind:            t.Kind,
		Level:           t.Level,
		Stats:           t.Stats,
		Skills:          maps.Clone(t.Skills),
		CurrentHealth:   t.MaxHealth,
		MaxHealth:       t.MaxHealth,
		ArmorValues:     make(map[inventory.BodyPart]int, len(inventory.BodyParts)),
		Race:            t.Race,
		Affinity:        t.Affinity,
		Archetype:       t.ID,
		UndeadClass:     t.UndeadClass,
		MinMetalToHit:   t.MinMetalToHit,
		NaturalMaterial: t.NaturalMaterial,
		SubAttacks:      append([]entity.Attack(nil), t.Attacks...),
		InfectionTable:  t.InfectionTable,
		Effects:         condition.NewActiveSet(),
	}
	if c.Skills == nil {
		c.Skills = make(map[entity.Skill]int)
	}
	if c.NaturalMaterial == "" {
		c.NaturalMaterial = inventory.MaterialIron
	}
	for _, p := range inventory.BodyParts {
		c.ArmorValues[p] = t.ArmorValue
	}

	if t.Career != "" {
		career, ok := careers[t.Career]
		if !ok {
			return nil, fmt.Errorf("spawning %q: unknown career %q", t.ID, t.Career)
		}
		c.Career = career
	}

	for _, id := range t.Gear {
		item, err := newGear(gear, id)
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", t.ID, err)
		}
		c.Equip(item)
	}
	return c, nil
}

func newGear(gear *inventory.Registry, id string) (*inventory.Item, error) {
	if gear == nil {
		return nil, fmt.Errorf("gear %q requested but no item registry supplied", id)
	}
	if w := gear.Weapon(id); w != nil {
		return w.NewItem(), nil
	}
	if a := gear.Armor(id); a != nil {
		return a.NewItem(), nil
	}
	return nil, fmt.Errorf("unknown gear %q", id)
}
