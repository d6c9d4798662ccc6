// Package inventory provides item instances, material and equipment tables,
// and the YAML loaders for weapon and armour templates.
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// WeaponTemplate defines the static properties of a weapon or ammunition loaded from YAML.
type WeaponTemplate struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Skill        WeaponSkill `yaml:"skill"`
	Material     Material    `yaml:"material"`
	MinDamage    int         `yaml:"min_damage"`
	MaxDamage    int         `yaml:"max_damage"`
	TwoHanded    bool        `yaml:"two_handed"`
	Ammo         bool        `yaml:"ammo"`
	Enchanted    bool        `yaml:"enchanted"`
	Poison       string      `yaml:"poison"`
	MaxCondition int         `yaml:"max_condition"`
}

// Validate checks that the WeaponTemplate satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponTemplate) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validWeaponSkills[w.Skill] {
		errs = append(errs, fmt.Errorf("skill %q is not a weapon skill", w.Skill))
	}
	if !w.Material.Valid() {
		errs = append(errs, fmt.Errorf("material %q is not a known material", w.Material))
	}
	if w.MinDamage < 0 {
		errs = append(errs, errors.New("min_damage must be >= 0"))
	}
	if w.MaxDamage < w.MinDamage {
		errs = append(errs, errors.New("max_damage must be >= min_damage"))
	}
	if w.MaxCondition < 1 {
		errs = append(errs, errors.New("max_condition must be >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// NewItem creates a fresh, undamaged item instance from the template.
//
// Postcondition: the item has a unique ID and Condition == MaxCondition.
func (w *WeaponTemplate) NewItem() *Item {
	kind := KindWeapon
	if w.Ammo {
		kind = KindAmmo
	}
	return &Item{
		ID:           uuid.NewString(),
		TemplateID:   w.ID,
		Name:         w.Name,
		Kind:         kind,
		Material:     w.Material,
		Skill:        w.Skill,
		MinDamage:    w.MinDamage,
		MaxDamage:    w.MaxDamage,
		TwoHanded:    w.TwoHanded,
		Poison:       w.Poison,
		Enchanted:    w.Enchanted,
		Condition:    w.MaxCondition,
		MaxCondition: w.MaxCondition,
	}
}

// LoadWeapons reads all YAML files from dir, parses each as a WeaponTemplate,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid templates or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponTemplate, error) {
	return loadDir[WeaponTemplate](dir, "LoadWeapons")
}
