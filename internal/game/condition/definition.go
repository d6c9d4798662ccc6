// Package condition defines the secondary effects a hit can inflict
// (poisons, diseases, paralysis and infections) and tracks the effects
// active on each combatant.
package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies an effect bundle.
type Kind string

const (
	KindDisease     Kind = "disease"
	KindPoison      Kind = "poison"
	KindParalysis   Kind = "paralysis"
	KindLycanthropy Kind = "lycanthropy"
	KindVampirism   Kind = "vampirism"
)

var validKinds = map[Kind]bool{
	KindDisease:     true,
	KindPoison:      true,
	KindParalysis:   true,
	KindLycanthropy: true,
	KindVampirism:   true,
}

// Duration types.
const (
	DurationRounds    = "rounds"
	DurationPermanent = "permanent"
)

// Def is the static definition of an effect bundle, loaded from YAML.
type Def struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Kind         Kind   `yaml:"kind"`
	DurationType string `yaml:"duration_type"` // "rounds" | "permanent"
	Duration     int    `yaml:"duration"`      // rounds; ignored when permanent
	MaxStacks    int    `yaml:"max_stacks"`    // 0 = unstackable
}

// Validate checks that the Def satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind %q must be one of disease, poison, paralysis, lycanthropy, vampirism", d.Kind))
	}
	switch d.DurationType {
	case DurationRounds:
		if d.Duration < 1 {
			errs = append(errs, errors.New("duration must be >= 1 for rounds effects"))
		}
	case DurationPermanent:
	default:
		errs = append(errs, fmt.Errorf("duration_type %q must be rounds or permanent", d.DurationType))
	}
	if d.MaxStacks < 0 {
		errs = append(errs, errors.New("max_stacks must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("effect %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// BaseDuration returns the duration to apply for a fresh application, or -1
// for permanent effects.
func (d *Def) BaseDuration() int {
	if d.DurationType == DurationPermanent {
		return -1
	}
	return d.Duration
}

// Registry holds all known effect Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Def) {
	r.defs[def.ID] = def
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Def, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.defs[id]
	return d, ok
}

// All returns all registered Defs sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def,
// and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading effect dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
