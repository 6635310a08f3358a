package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Technique defines a single psychic technique within a discipline.
// Level 0 is reserved for the discipline core technique.
type Technique struct {
	Name        string `yaml:"name"`
	Level       int    `yaml:"level"` // 0-4
	EffortCost  int    `yaml:"effort_cost"`
	Description string `yaml:"description"`
}

// Discipline defines a psychic specialty. The discipline name doubles as
// a skill name in the character's skill set.
type Discipline struct {
	Name          string       `yaml:"name"`
	Description   string       `yaml:"description"`
	CoreTechnique Technique    `yaml:"core_technique"`
	Techniques    []*Technique `yaml:"techniques"`
}

// TechniquesAtLevel returns the techniques gated at exactly level.
//
// Precondition: level in [1, 4].
func (d *Discipline) TechniquesAtLevel(level int) []*Technique {
	var out []*Technique
	for _, t := range d.Techniques {
		if t.Level == level {
			out = append(out, t)
		}
	}
	return out
}

// TechniquesUpTo returns all non-core techniques gated at or below level.
func (d *Discipline) TechniquesUpTo(level int) []*Technique {
	var out []*Technique
	for _, t := range d.Techniques {
		if t.Level <= level {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the structural invariants of a loaded discipline.
//
// Postcondition: returns nil iff the discipline is well-formed;
// violations wrap ErrDataIntegrity.
func (d *Discipline) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: discipline name must not be empty", ErrDataIntegrity)
	}
	if d.CoreTechnique.Name == "" {
		return fmt.Errorf("%w: discipline %q has no core technique", ErrDataIntegrity, d.Name)
	}
	if d.CoreTechnique.Level != 0 {
		return fmt.Errorf("%w: discipline %q core technique must be level 0", ErrDataIntegrity, d.Name)
	}
	for _, t := range d.Techniques {
		if t.Name == "" {
			return fmt.Errorf("%w: discipline %q contains an unnamed technique", ErrDataIntegrity, d.Name)
		}
		if t.Level < 1 || t.Level > 4 {
			return fmt.Errorf("%w: discipline %q technique %q level %d out of [1, 4]",
				ErrDataIntegrity, d.Name, t.Name, t.Level)
		}
	}
	return nil
}

type disciplineFile struct {
	Disciplines []*Discipline `yaml:"disciplines"`
}

// LoadDisciplines reads the psychic disciplines table from a single YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: Returns at least one validated discipline or a non-nil error.
func LoadDisciplines(path string) ([]*Discipline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f disciplineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing disciplines file %s: %w", path, err)
	}
	if len(f.Disciplines) == 0 {
		return nil, fmt.Errorf("%w: disciplines file %s lists no disciplines", ErrDataIntegrity, path)
	}
	for _, d := range f.Disciplines {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("disciplines file %s: %w", path, err)
		}
	}
	return f.Disciplines, nil
}
