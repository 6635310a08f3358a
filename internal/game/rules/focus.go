package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Focus defines a character focus: a narrow talent picked at creation.
type Focus struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Combat           bool     `yaml:"combat"`
	PsychicOnly      bool     `yaml:"psychic_only"`
	IncompatibleWith []string `yaml:"incompatible_with"`
	AllowedClasses   []string `yaml:"allowed_classes"` // nil = any class
}

// CompatibleWith reports whether this focus may be held alongside other.
// A focus is never compatible with itself.
func (f *Focus) CompatibleWith(other *Focus) bool {
	if f.Name == other.Name {
		return false
	}
	for _, n := range f.IncompatibleWith {
		if n == other.Name {
			return false
		}
	}
	for _, n := range other.IncompatibleWith {
		if n == f.Name {
			return false
		}
	}
	return true
}

// AllowsClass reports whether className may take this focus.
func (f *Focus) AllowsClass(className string) bool {
	if f.AllowedClasses == nil {
		return true
	}
	for _, n := range f.AllowedClasses {
		if n == className {
			return true
		}
	}
	return false
}

type fociFile struct {
	Foci []*Focus `yaml:"foci"`
}

// LoadFoci reads the foci table from a single YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: Returns at least one named focus or a non-nil error.
func LoadFoci(path string) ([]*Focus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f fociFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing foci file %s: %w", path, err)
	}
	if len(f.Foci) == 0 {
		return nil, fmt.Errorf("%w: foci file %s lists no foci", ErrDataIntegrity, path)
	}
	for _, focus := range f.Foci {
		if focus.Name == "" {
			return nil, fmt.Errorf("%w: foci file %s contains an unnamed focus", ErrDataIntegrity, path)
		}
	}
	return f.Foci, nil
}
