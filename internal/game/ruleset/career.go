package ruleset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// CareerDef is the YAML form of a career.
//
// Precondition: ID and Name must be non-empty after loading.
type CareerDef struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	AdrenalineRush bool   `yaml:"adrenaline_rush"`
	// Tolerances maps an effect flag name to its tolerance flags, e.g. fire: [resistant].
	Tolerances          map[string][]string `yaml:"tolerances"`
	ExpertProficiencies []string            `yaml:"expert_proficiencies"`
	// AttackModifiers maps a creature affinity to "bonus" or "phobia".
	AttackModifiers          map[string]string `yaml:"attack_modifiers"`
	AdvancementMultiplierPct int               `yaml:"advancement_multiplier_pct"`
}

// Career converts the definition into the entity form.
//
// Postcondition: returns an error naming every unknown flag, skill or affinity.
func (d *CareerDef) Career() (*entity.Career, error) {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	c := &entity.Career{
		ID:                       d.ID,
		Name:                     d.Name,
		AdrenalineRush:           d.AdrenalineRush,
		Tolerances:               make(map[entity.EffectFlags]entity.Tolerance, len(d.Tolerances)),
		AttackModifiers:          make(map[entity.Affinity]entity.AttackModifier, len(d.AttackModifiers)),
		AdvancementMultiplierPct: d.AdvancementMultiplierPct,
	}
	if c.AdvancementMultiplierPct == 0 {
		c.AdvancementMultiplierPct = 100
	}
	for flagName, tolNames := range d.Tolerances {
		flag, ok := entity.ParseEffectFlag(flagName)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown effect flag %q", flagName))
			continue
		}
		for _, tn := range tolNames {
			tol, ok := entity.ParseTolerance(tn)
			if !ok {
				errs = append(errs, fmt.Errorf("unknown tolerance %q for %s", tn, flagName))
				continue
			}
			c.Tolerances[flag] |= tol
		}
	}
	for _, s := range d.ExpertProficiencies {
		ws := inventory.WeaponSkill(s)
		if !ws.Valid() {
			errs = append(errs, fmt.Errorf("unknown weapon skill %q", s))
			continue
		}
		c.ExpertProficiencies = append(c.ExpertProficiencies, ws)
	}
	for aff, mod := range d.AttackModifiers {
		a := entity.Affinity(aff)
		switch a {
		case entity.AffinityUndead, entity.AffinityDaedra, entity.AffinityHumanoid, entity.AffinityAnimal:
		default:
			errs = append(errs, fmt.Errorf("unknown affinity %q", aff))
			continue
		}
		switch mod {
		case "bonus":
			c.AttackModifiers[a] = entity.AttackBonus
		case "phobia":
			c.AttackModifiers[a] = entity.AttackPhobia
		default:
			errs = append(errs, fmt.Errorf("attack modifier for %s must be bonus or phobia, got %q", aff, mod))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("career %q: %v", d.ID, errs)
	}
	return c, nil
}

// LoadCareers reads all .yaml files in dir and returns the careers keyed by ID.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all careers (may be empty) or a non-nil error.
func LoadCareers(dir string) (map[string]*entity.Career, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	careers := make(map[string]*entity.Career, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d CareerDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing career file %s: %w", path, err)
		}
		c, err := d.Career()
		if err != nil {
			return nil, fmt.Errorf("loading career file %s: %w", path, err)
		}
		if _, dup := careers[c.ID]; dup {
			return nil, fmt.Errorf("loading career file %s: duplicate career id %q", path, c.ID)
		}
		careers[c.ID] = c
	}
	return careers, nil
}
