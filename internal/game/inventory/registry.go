package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded weapon and armour templates indexed by ID.
type Registry struct {
	weapons map[string]*WeaponTemplate
	armors  map[string]*ArmorTemplate
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponTemplate),
		armors:  make(map[string]*ArmorTemplate),
	}
}

// LoadRegistry loads the weapon and armour directories into a new Registry.
//
// Postcondition: returns a populated Registry or the first load/duplicate error.
func LoadRegistry(weaponsDir, armorDir string) (*Registry, error) {
	weapons, err := LoadWeapons(weaponsDir)
	if err != nil {
		return nil, err
	}
	armors, err := LoadArmors(armorDir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, w := range weapons {
		if err := r.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	for _, a := range armors {
		if err := r.RegisterArmor(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterWeapon adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponTemplate) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterArmor adds a to the registry.
//
// Precondition:  a must not be nil.
// Postcondition: Armor(a.ID) returns a; returns error if a.ID already registered.
func (r *Registry) RegisterArmor(a *ArmorTemplate) error {
	if _, exists := r.armors[a.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterArmor: armor ID %q already registered", a.ID)
	}
	r.armors[a.ID] = a
	return nil
}

// Weapon returns the WeaponTemplate for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponTemplate {
	return r.weapons[id]
}

// Armor returns the ArmorTemplate for the given id, or nil if not found.
func (r *Registry) Armor(id string) *ArmorTemplate {
	return r.armors[id]
}

// WeaponIDs returns all registered weapon IDs in sorted order.
func (r *Registry) WeaponIDs() []string {
	out := make([]string, 0, len(r.weapons))
	for id := range r.weapons {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
