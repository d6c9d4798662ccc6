package npc

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// Manager spawns combatants from templates and tracks them by ID and by side.
// All methods are safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	templates  map[string]*Template
	careers    map[string]*entity.Career
	gear       *inventory.Registry
	combatants map[string]*entity.Combatant // combatant ID → combatant
	sideOf     map[string]string            // combatant ID → side
	sides      map[string]map[string]bool   // side → set of combatant IDs
	counter    atomic.Uint64
}

// NewManager creates an empty Manager that spawns from templates.
//
// Precondition: careers and gear may be nil when no template references them.
func NewManager(templates map[string]*Template, careers map[string]*entity.Career, gear *inventory.Registry) *Manager {
	if templates == nil {
		templates = make(map[string]*Template)
	}
	return &Manager{
		templates:  templates,
		careers:    careers,
		gear:       gear,
		combatants: make(map[string]*entity.Combatant),
		sideOf:     make(map[string]string),
		sides:      make(map[string]map[string]bool),
	}
}

// Template returns the template with the given ID.
func (m *Manager) Template(id string) (*Template, bool) {
	t, ok := m.templates[id]
	return t, ok
}

// TemplateIDs returns every template ID, sorted.
func (m *Manager) TemplateIDs() []string {
	out := make([]string, 0, len(m.templates))
	for id := range m.templates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Spawn creates a combatant from the template templateID and places it on side.
//
// Precondition: side must be non-empty.
// Postcondition: Returns a combatant whose ID is "<template>-<side>-<n>",
// registered on side.
func (m *Manager) Spawn(templateID, side string) (*entity.Combatant, error) {
	if side == "" {
		return nil, fmt.Errorf("npc.Manager.Spawn: side must not be empty")
	}
	tmpl, ok := m.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("npc.Manager.Spawn: unknown template %q", templateID)
	}
	c, err := tmpl.Spawn(m.careers, m.gear)
	if err != nil {
		return nil, err
	}
	n := m.counter.Add(1)
	c.ID = fmt.Sprintf("%s-%s-%d", tmpl.ID, side, n)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.combatants[c.ID] = c
	m.sideOf[c.ID] = side
	if m.sides[side] == nil {
		m.sides[side] = make(map[string]bool)
	}
	m.sides[side][c.ID] = true
	return c, nil
}

// Remove deletes a combatant by ID.
//
// Postcondition: Returns an error if the combatant is not found.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	side, ok := m.sideOf[id]
	if !ok {
		return fmt.Errorf("combatant %q not found", id)
	}
	if set, ok := m.sides[side]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(m.sides, side)
		}
	}
	delete(m.sideOf, id)
	delete(m.combatants, id)
	return nil
}

// Get returns the combatant with the given ID.
func (m *Manager) Get(id string) (*entity.Combatant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.combatants[id]
	return c, ok
}

// SideOf returns the side of the combatant id.
func (m *Manager) SideOf(id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sideOf[id]
	return s, ok
}

// OnSide returns the combatants on side sorted by ID.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (m *Manager) OnSide(side string) []*entity.Combatant {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.sides[side]
	out := make([]*entity.Combatant, 0, len(ids))
	for id := range ids {
		out = append(out, m.combatants[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Living returns the combatants on side that are still alive, sorted by ID.
func (m *Manager) Living(side string) []*entity.Combatant {
	var out []*entity.Combatant
	for _, c := range m.OnSide(side) {
		if !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// All returns every tracked combatant sorted by ID.
func (m *Manager) All() []*entity.Combatant {
	m.mu.RLock()
	out := make([]*entity.Combatant, 0, len(m.combatants))
	for _, c := range m.combatants {
		out = append(out, c)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindOnSide returns the first combatant on side, by ID, whose Name has
// target as a case-insensitive prefix. Returns nil if no match is found.
func (m *Manager) FindOnSide(side, target string) *entity.Combatant {
	lower := strings.ToLower(target)
	for _, c := range m.OnSide(side) {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			return c
		}
	}
	return nil
}
