package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Skill defines a general skill. Discipline skills are defined by the
// disciplines table, not here.
type Skill struct {
	Name   string `yaml:"name"`
	Combat bool   `yaml:"combat"`
}

type skillFile struct {
	Skills []*Skill `yaml:"skills"`
}

// LoadSkills reads the general skill list from a single YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: Returns at least one named skill or a non-nil error.
func LoadSkills(path string) ([]*Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f skillFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing skills file %s: %w", path, err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("%w: skills file %s lists no skills", ErrDataIntegrity, path)
	}
	for _, s := range f.Skills {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: skills file %s contains an unnamed skill", ErrDataIntegrity, path)
		}
	}
	return f.Skills, nil
}
