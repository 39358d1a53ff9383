package inventory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Effect is a permanent player stat change applied when an item is produced
// by alchemy.
type Effect struct {
	// MaxHealth, when positive, becomes the new max health and the player is
	// fully healed.
	MaxHealth int `yaml:"max_health"`
}

// IsZero reports whether e changes nothing.
func (e Effect) IsZero() bool { return e.MaxHealth == 0 }

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Icon        string  `yaml:"icon"`
	Description string  `yaml:"description"`
	OnProduce   *Effect `yaml:"on_produce"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.OnProduce != nil && d.OnProduce.MaxHealth < 0 {
		errs = append(errs, errors.New("on_produce.max_health must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

type yamlItemsFile struct {
	Items []*ItemDef `yaml:"items"`
}

// LoadItemsFromBytes parses and validates an items YAML document.
//
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItemsFromBytes(data []byte) ([]*ItemDef, error) {
	var file yamlItemsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("LoadItems: cannot parse items: %w", err)
	}
	for _, d := range file.Items {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: %w", err)
		}
	}
	return file.Items, nil
}

// LoadItemsFromFile reads and parses an items YAML file.
//
// Precondition: path is a readable file.
// Postcondition: returns all valid ItemDefs or an error.
func LoadItemsFromFile(path string) ([]*ItemDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
	}
	return LoadItemsFromBytes(data)
}
