package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ArmorTemplate defines body armour, a shield, or clothing loaded from YAML.
type ArmorTemplate struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Kind         Kind         `yaml:"kind"` // armor, shield or clothing
	Construction Construction `yaml:"construction"`
	Material     Material     `yaml:"material"`
	Shield       ShieldType   `yaml:"shield"`
	Parts        []BodyPart   `yaml:"parts"`
	ArmorValue   int          `yaml:"armor_value"`
	Enchanted    bool         `yaml:"enchanted"`
	MaxCondition int          `yaml:"max_condition"`
}

// Validate reports an error if the ArmorTemplate is missing required fields or contains illegal values.
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the template is well-formed.
func (a *ArmorTemplate) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch a.Kind {
	case KindArmor:
		if a.Construction.Class() == ArmorNone {
			errs = append(errs, fmt.Errorf("construction %q must be leather, chain or plate", a.Construction))
		}
		if len(a.Parts) == 0 {
			errs = append(errs, errors.New("armor must cover at least one body part"))
		}
	case KindShield:
		if !a.Shield.Valid() {
			errs = append(errs, fmt.Errorf("shield %q is not a valid shield type", a.Shield))
		}
	case KindClothing:
		if len(a.Parts) == 0 {
			errs = append(errs, errors.New("clothing must cover at least one body part"))
		}
	default:
		errs = append(errs, fmt.Errorf("kind %q must be armor, shield or clothing", a.Kind))
	}
	for _, p := range a.Parts {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("part %q is not a valid body part", p))
		}
	}
	if a.Material != "" && !a.Material.Valid() {
		errs = append(errs, fmt.Errorf("material %q is not a known material", a.Material))
	}
	if a.ArmorValue < 0 {
		errs = append(errs, errors.New("armor_value must be >= 0"))
	}
	if a.MaxCondition < 1 {
		errs = append(errs, errors.New("max_condition must be >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %v", errs)
	}
	return nil
}

// NewItem creates a fresh, undamaged item instance from the template.
//
// Postcondition: the item has a unique ID and Condition == MaxCondition.
func (a *ArmorTemplate) NewItem() *Item {
	material := a.Material
	if material == "" {
		material = MaterialLeather
	}
	return &Item{
		ID:           uuid.NewString(),
		TemplateID:   a.ID,
		Name:         a.Name,
		Kind:         a.Kind,
		Material:     material,
		Construction: a.Construction,
		Shield:       a.Shield,
		Parts:        append([]BodyPart(nil), a.Parts...),
		ArmorValue:   a.ArmorValue,
		Enchanted:    a.Enchanted,
		Condition:    a.MaxCondition,
		MaxCondition: a.MaxCondition,
	}
}

// LoadArmors reads all YAML files in dir and returns the parsed templates.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all returned templates pass Validate.
func LoadArmors(dir string) ([]*ArmorTemplate, error) {
	return loadDir[ArmorTemplate](dir, "LoadArmors")
}
