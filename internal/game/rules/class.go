package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
)

// PowerKind tags the power capability of a class. Dispatch in the power
// grant engine happens once on this tag, never on class-name strings.
type PowerKind string

const (
	// PowerNone marks a mundane class with no power grants.
	PowerNone PowerKind = "normal"
	// PowerSpellcasting marks a class with a spell tradition reference.
	PowerSpellcasting PowerKind = "magic"
	// PowerPsychic marks a class granting psychic disciplines.
	PowerPsychic PowerKind = "psionic"
	// PowerTrack marks a class with a bespoke special-ability track.
	PowerTrack PowerKind = "special"
)

// BonusFocusKind constrains the extra focus a class grants beyond the base count.
const (
	BonusFocusCombat    = "combat"
	BonusFocusNonCombat = "noncombat"
)

// SavingThrows holds the three class save target numbers.
type SavingThrows struct {
	Physical int `yaml:"physical"`
	Evasion  int `yaml:"evasion"`
	Mental   int `yaml:"mental"`
}

// Class defines a playable character class for synthesis.
//
// Precondition: Name, HitDice, SkillPointsBase, FociCount, and BaseCredits
// must be non-zero after loading; Power-dependent references (Tradition,
// Track) must be present for their kinds.
type Class struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description"`
	HitDice         string       `yaml:"hit_dice"`
	SkillPointsBase int          `yaml:"skill_points_base"`
	FociCount       int          `yaml:"foci_count"`
	BonusFocus      string       `yaml:"bonus_focus"` // "combat", "noncombat", or ""
	AttackBonus     int          `yaml:"attack_bonus"`
	BaseCredits     int          `yaml:"base_credits"`
	CombatPriority  bool         `yaml:"combat_priority"`
	Power           PowerKind    `yaml:"power"`
	Tradition       string       `yaml:"tradition"`
	Track           string       `yaml:"track"`
	PrioritySkills  []string     `yaml:"priority_skills"`
	SavingThrows    SavingThrows `yaml:"saving_throws"`
}

// Capability describes the single power grant a class confers.
type Capability struct {
	Kind      PowerKind
	Tradition string // set when Kind == PowerSpellcasting
	Track     string // set when Kind == PowerTrack
}

// Capability returns the class power descriptor.
func (c *Class) Capability() Capability {
	return Capability{Kind: c.Power, Tradition: c.Tradition, Track: c.Track}
}

// HitDiceExpr parses the class hit-die expression.
//
// Precondition: the class passed Validate, so the expression is parseable.
func (c *Class) HitDiceExpr() dice.Expression {
	return dice.MustParse(c.HitDice)
}

// Validate checks the structural invariants of a loaded class.
//
// Postcondition: returns nil iff the class is well-formed; violations
// wrap ErrDataIntegrity.
func (c *Class) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: class name must not be empty", ErrDataIntegrity)
	case c.SkillPointsBase < 1:
		return fmt.Errorf("%w: class %q skill_points_base must be >= 1", ErrDataIntegrity, c.Name)
	case c.FociCount < 0:
		return fmt.Errorf("%w: class %q foci_count must be >= 0", ErrDataIntegrity, c.Name)
	case c.BaseCredits < 1000 || c.BaseCredits > 2000:
		return fmt.Errorf("%w: class %q base_credits must be in [1000, 2000]", ErrDataIntegrity, c.Name)
	}
	if _, err := dice.Parse(c.HitDice); err != nil {
		return fmt.Errorf("%w: class %q hit_dice: %v", ErrDataIntegrity, c.Name, err)
	}
	switch c.Power {
	case PowerNone, PowerPsychic:
	case PowerSpellcasting:
		if c.Tradition == "" {
			return fmt.Errorf("%w: class %q requires a tradition reference", ErrDataIntegrity, c.Name)
		}
	case PowerTrack:
		if c.Track == "" {
			return fmt.Errorf("%w: class %q requires a track reference", ErrDataIntegrity, c.Name)
		}
	default:
		return fmt.Errorf("%w: class %q power %q is not one of normal, magic, psionic, special",
			ErrDataIntegrity, c.Name, c.Power)
	}
	if c.BonusFocus != "" && c.BonusFocus != BonusFocusCombat && c.BonusFocus != BonusFocusNonCombat {
		return fmt.Errorf("%w: class %q bonus_focus %q is not one of combat, noncombat",
			ErrDataIntegrity, c.Name, c.BonusFocus)
	}
	return nil
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated classes or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("class file %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}

// yamlFiles lists the .yaml and .yml files directly under dir in
// lexical order.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
