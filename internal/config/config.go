// Package config loads decode recipes: TOML files describing how to turn an
// input file into a payload and which fields to decode from it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/blockberries/replaybits/pkg/fields"
)

// ErrInvalidRecipe indicates a recipe failed validation.
var ErrInvalidRecipe = errors.New("config: invalid recipe")

// Recipe describes one payload layout.
type Recipe struct {
	Name    string              `toml:"name"`
	Snappy  bool                `toml:"snappy"`
	Field   int                 `toml:"field"`
	Workers int                 `toml:"workers"`
	Fields  []fields.Descriptor `toml:"fields"`
}

// DefaultRecipe returns a recipe with defaults applied and no fields.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:    "payload",
		Workers: 4,
	}
}

// LoadRecipe reads and validates the recipe at path. Keys absent from the
// file keep their DefaultRecipe values.
func LoadRecipe(path string) (Recipe, error) {
	cfg := DefaultRecipe()

	var raw Recipe
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Recipe{}, fmt.Errorf("load recipe: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Recipe{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidRecipe, strings.Join(keys, ", "))
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}
	if meta.IsDefined("snappy") {
		cfg.Snappy = raw.Snappy
	}
	if meta.IsDefined("field") {
		cfg.Field = raw.Field
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	cfg.Fields = raw.Fields

	if err := Validate(cfg); err != nil {
		return Recipe{}, err
	}
	return cfg, nil
}

// Validate checks r for structural problems. Encoder-specific parameters are
// checked when the recipe's fields are resolved against a registry.
func Validate(r Recipe) error {
	if r.Field < 0 {
		return fmt.Errorf("%w: field must be >= 0, got %d", ErrInvalidRecipe, r.Field)
	}
	if r.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidRecipe, r.Workers)
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidRecipe)
	}
	for i, f := range r.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: fields[%d] has no name", ErrInvalidRecipe, i)
		}
		if strings.TrimSpace(f.Encoder) == "" {
			return fmt.Errorf("%w: field %s has no encoder", ErrInvalidRecipe, f.Name)
		}
	}
	return nil
}

// Decoder resolves the recipe's fields against reg (nil for the default
// registry).
func (r Recipe) Decoder(reg *fields.Registry) (*fields.Decoder, error) {
	return fields.NewDecoder(reg, r.Fields)
}
