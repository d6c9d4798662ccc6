// Package npc provides enemy archetype definitions and spawns them as combatants.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Kind        entity.Kind          `yaml:"kind"` // monster | class
	Level       int                  `yaml:"level"`
	MaxHealth   int                  `yaml:"max_health"`
	Stats       entity.Stats         `yaml:"stats"`
	Skills      map[entity.Skill]int `yaml:"skills"`
	Affinity    entity.Affinity      `yaml:"affinity"`
	UndeadClass entity.UndeadClass   `yaml:"undead_class"`
	// MinMetalToHit is the lowest weapon material that can harm the creature.
	MinMetalToHit   inventory.Material `yaml:"min_metal_to_hit"`
	NaturalMaterial inventory.Material `yaml:"natural_material"`
	Attacks         []entity.Attack    `yaml:"attacks"`
	InfectionTable  string             `yaml:"infection_table"`
	// ArmorValue is applied to every body part.
	ArmorValue int         `yaml:"armor_value"`
	Career     string      `yaml:"career"`
	Race       entity.Race `yaml:"race"`
	// Gear lists weapon and armour template IDs equipped at spawn.
	Gear []string `yaml:"gear"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff the template can be spawned; returns an error
// on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.Kind != entity.KindMonster && t.Kind != entity.KindClass {
		return fmt.Errorf("npc template %q: kind must be monster or class, got %q", t.ID, t.Kind)
	}
	if t.Level < 1 {
		return fmt.Errorf("npc template %q: level must be >= 1", t.ID)
	}
	if t.MaxHealth < 1 {
		return fmt.Errorf("npc template %q: max_health must be >= 1", t.ID)
	}
	if len(t.Attacks) > entity.MaxSubAttacks {
		return fmt.Errorf("npc template %q: at most %d attacks allowed, got %d", t.ID, entity.MaxSubAttacks, len(t.Attacks))
	}
	for i, a := range t.Attacks {
		if a.MinDamage < 0 || a.MaxDamage < a.MinDamage {
			return fmt.Errorf("npc template %q: attack %d has invalid range %d-%d", t.ID, i, a.MinDamage, a.MaxDamage)
		}
	}
	if t.MinMetalToHit != "" && !t.MinMetalToHit.Valid() {
		return fmt.Errorf("npc template %q: min_metal_to_hit %q is not a material", t.ID, t.MinMetalToHit)
	}
	if t.NaturalMaterial != "" && !t.NaturalMaterial.Valid() {
		return fmt.Errorf("npc template %q: natural_material %q is not a material", t.ID, t.NaturalMaterial)
	}
	if t.ArmorValue < 0 {
		return fmt.Errorf("npc template %q: armor_value must be >= 0", t.ID)
	}
	if t.Kind == entity.KindClass && t.Career == "" {
		return fmt.Errorf("npc template %q: class npcs require a career", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses a single archetype from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates
// keyed by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse, validate
// or duplicate-ID failure; on error, the partial result is discarded.
func LoadTemplates(dir string) (map[string]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	templates := make(map[string]*Template)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := templates[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate npc id %q", path, tmpl.ID)
		}
		templates[tmpl.ID] = tmpl
	}
	return templates, nil
}
