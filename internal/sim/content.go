// Package sim wires configuration, content tables, Lua mods and the combat
// engine into runnable duels and skirmishes.
package sim

import (
	"fmt"

	"github.com/cory-johannsen/dfcombat/internal/config"
	"github.com/cory-johannsen/dfcombat/internal/game/condition"
	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
	"github.com/cory-johannsen/dfcombat/internal/game/npc"
	"github.com/cory-johannsen/dfcombat/internal/game/ruleset"
)

// Content holds every loaded content table.
type Content struct {
	Gear      *inventory.Registry
	Careers   map[string]*entity.Career
	Templates map[string]*npc.Template
	Effects   *condition.Registry
}

// LoadContent reads the content tables named by cfg.
//
// Postcondition: Returns fully loaded Content or the first load error.
func LoadContent(cfg config.ContentConfig) (*Content, error) {
	gear, err := inventory.LoadRegistry(cfg.WeaponsDir, cfg.ArmorDir)
	if err != nil {
		return nil, fmt.Errorf("loading gear: %w", err)
	}
	careers, err := ruleset.LoadCareers(cfg.CareersDir)
	if err != nil {
		return nil, fmt.Errorf("loading careers: %w", err)
	}
	templates, err := npc.LoadTemplates(cfg.NPCsDir)
	if err != nil {
		return nil, fmt.Errorf("loading npcs: %w", err)
	}
	effects, err := condition.LoadDirectory(cfg.EffectsDir)
	if err != nil {
		return nil, fmt.Errorf("loading effects: %w", err)
	}
	return &Content{Gear: gear, Careers: careers, Templates: templates, Effects: effects}, nil
}

// Arm replaces c's weapon with a fresh item of the weapon template weaponID.
func (ct *Content) Arm(c *entity.Combatant, weaponID string) error {
	w := ct.Gear.Weapon(weaponID)
	if w == nil {
		return fmt.Errorf("unknown weapon %q", weaponID)
	}
	item := w.NewItem()
	if item.Kind != inventory.KindWeapon {
		return fmt.Errorf("%q is ammunition, not a weapon", weaponID)
	}
	if item.TwoHanded && c.Shield != nil {
		c.Unequip(c.Shield)
	}
	c.Equip(item)
	return nil
}
