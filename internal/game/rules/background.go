package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Placeholder quick-skill names. A background listing one of these defers
// the concrete skill choice to the resolver at generation time.
const (
	// AnyCombat resolves uniformly at random to Shoot, Stab, or Punch.
	AnyCombat = "AnyCombat"
	// AnySkill resolves uniformly at random to any non-discipline skill.
	AnySkill = "AnySkill"
)

// Background defines a character background: one free skill always
// granted, and three quick-skill options of which one is chosen at
// creation.
type Background struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	FreeSkill   string   `yaml:"free_skill"`
	QuickSkills []string `yaml:"quick_skills"`
}

// Validate checks the structural invariants of a loaded background.
//
// Postcondition: returns nil iff the background is well-formed;
// violations wrap ErrDataIntegrity.
func (b *Background) Validate() error {
	switch {
	case b.Name == "":
		return fmt.Errorf("%w: background name must not be empty", ErrDataIntegrity)
	case b.FreeSkill == "":
		return fmt.Errorf("%w: background %q free_skill must not be empty", ErrDataIntegrity, b.Name)
	case len(b.QuickSkills) != 3:
		return fmt.Errorf("%w: background %q must list exactly 3 quick skills, got %d",
			ErrDataIntegrity, b.Name, len(b.QuickSkills))
	}
	return nil
}

type backgroundFile struct {
	Backgrounds []*Background `yaml:"backgrounds"`
}

// LoadBackgrounds reads the backgrounds table from a single YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: Returns at least one validated background or a non-nil error.
func LoadBackgrounds(path string) ([]*Background, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f backgroundFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing backgrounds file %s: %w", path, err)
	}
	if len(f.Backgrounds) == 0 {
		return nil, fmt.Errorf("%w: backgrounds file %s lists no backgrounds", ErrDataIntegrity, path)
	}
	for _, b := range f.Backgrounds {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("backgrounds file %s: %w", path, err)
		}
	}
	return f.Backgrounds, nil
}
