package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tradition progression styles.
const (
	// TraditionFixed follows the fixed known/slot progression table;
	// known spells never exceed the table's known counts.
	TraditionFixed = "fixed"
	// TraditionOpen is the open-library style: the spell library grows
	// with random draws well past the prepared-per-day counts.
	TraditionOpen = "open"
)

// Spell defines a single spell in a tradition's list.
type Spell struct {
	Name   string `yaml:"name"`
	Level  int    `yaml:"level"` // 1-5
	Effect string `yaml:"effect"`
}

// Tradition defines a spellcasting tradition and its spell list.
type Tradition struct {
	Name   string   `yaml:"tradition"`
	Style  string   `yaml:"style"`
	Spells []*Spell `yaml:"spells"`
}

// SpellsAtLevel returns the tradition's spells of the given spell level.
//
// Precondition: level in [1, 5].
func (t *Tradition) SpellsAtLevel(level int) []*Spell {
	var out []*Spell
	for _, s := range t.Spells {
		if s.Level == level {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the structural invariants of a loaded tradition.
//
// Postcondition: returns nil iff the tradition is well-formed;
// violations wrap ErrDataIntegrity.
func (t *Tradition) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: tradition name must not be empty", ErrDataIntegrity)
	}
	if t.Style != TraditionFixed && t.Style != TraditionOpen {
		return fmt.Errorf("%w: tradition %q style %q is not one of fixed, open",
			ErrDataIntegrity, t.Name, t.Style)
	}
	for _, s := range t.Spells {
		if s.Name == "" {
			return fmt.Errorf("%w: tradition %q contains an unnamed spell", ErrDataIntegrity, t.Name)
		}
		if s.Level < 1 || s.Level > 5 {
			return fmt.Errorf("%w: tradition %q spell %q level %d out of [1, 5]",
				ErrDataIntegrity, t.Name, s.Name, s.Level)
		}
	}
	return nil
}

// LoadTraditions reads one tradition per .yaml file in dir.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated traditions or a non-nil error.
func LoadTraditions(dir string) ([]*Tradition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	traditions := make([]*Tradition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var t Tradition
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing tradition file %s: %w", path, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tradition file %s: %w", path, err)
		}
		traditions = append(traditions, &t)
	}
	return traditions, nil
}
