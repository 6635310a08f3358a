package rules

import "fmt"

// NameTable holds the first/last name pools used when no character name
// is supplied.
type NameTable struct {
	First []string `yaml:"first"`
	Last  []string `yaml:"last"`
}

// Validate checks that both pools are non-empty.
//
// Postcondition: returns nil iff random names can be produced.
func (n *NameTable) Validate() error {
	if len(n.First) == 0 || len(n.Last) == 0 {
		return fmt.Errorf("%w: name table must list first and last names", ErrDataIntegrity)
	}
	return nil
}

// LoadNames reads the name table from a single YAML file.
func LoadNames(path string) (*NameTable, error) {
	var n NameTable
	if err := readYAML(path, &n); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("names file %s: %w", path, err)
	}
	return &n, nil
}
