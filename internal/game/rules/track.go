package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Track grant modes.
const (
	// TrackAutomatic grants every listed ability whose level has been reached.
	TrackAutomatic = "automatic"
	// TrackEvenSelection grants one random pick from the selectable pool
	// per even level reached (2, 4, 6, 8, 10).
	TrackEvenSelection = "even-selection"
)

// TrackAbility defines one ability on a special-class track.
type TrackAbility struct {
	Name        string `yaml:"name"`
	Level       int    `yaml:"level"` // minimum level; 1 for creation grants
	Description string `yaml:"description"`
	HPBonus     int    `yaml:"hp_bonus"` // flat HP added once when granted
}

// EffortRule sizes a track's effort pool: grants received so far plus the
// better of two attribute modifiers, floored at 1. Tracks without an
// effort pool leave Attributes empty.
type EffortRule struct {
	Attributes []string `yaml:"attributes"` // exactly two attribute names
}

// SacredWeapon defines a Sunblade-style bonded weapon option.
type SacredWeapon struct {
	Type      string `yaml:"type"`
	Damage    string `yaml:"damage"`
	Shock     string `yaml:"shock"`
	Attribute string `yaml:"attribute"`
	Range     string `yaml:"range"`
}

// Track defines a special-class ability track keyed by level.
type Track struct {
	Name            string          `yaml:"name"`
	Mode            string          `yaml:"mode"`
	Level1Abilities []*TrackAbility `yaml:"level_1_abilities"`
	LevelAbilities  []*TrackAbility `yaml:"level_abilities"`      // TrackAutomatic
	Selectable      []*TrackAbility `yaml:"selectable_abilities"` // TrackEvenSelection
	HPBonusOddLevel int             `yaml:"hp_bonus_odd_levels"`  // +N HP per odd level reached
	Effort          *EffortRule     `yaml:"effort"`
	SacredWeapons   []*SacredWeapon `yaml:"sacred_weapons"`
}

// Validate checks the structural invariants of a loaded track.
//
// Postcondition: returns nil iff the track is well-formed; violations
// wrap ErrDataIntegrity.
func (t *Track) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: track name must not be empty", ErrDataIntegrity)
	}
	switch t.Mode {
	case TrackAutomatic:
		if len(t.LevelAbilities) == 0 && len(t.Level1Abilities) == 0 {
			return fmt.Errorf("%w: automatic track %q lists no abilities", ErrDataIntegrity, t.Name)
		}
	case TrackEvenSelection:
		if len(t.Selectable) == 0 {
			return fmt.Errorf("%w: selection track %q has an empty selectable pool", ErrDataIntegrity, t.Name)
		}
	default:
		return fmt.Errorf("%w: track %q mode %q is not one of automatic, even-selection",
			ErrDataIntegrity, t.Name, t.Mode)
	}
	abilities := append([]*TrackAbility{}, t.Level1Abilities...)
	abilities = append(abilities, t.LevelAbilities...)
	abilities = append(abilities, t.Selectable...)
	for _, a := range abilities {
		if a.Name == "" {
			return fmt.Errorf("%w: track %q contains an unnamed ability", ErrDataIntegrity, t.Name)
		}
	}
	if t.Effort != nil {
		if len(t.Effort.Attributes) != 2 {
			return fmt.Errorf("%w: track %q effort rule must name exactly two attributes",
				ErrDataIntegrity, t.Name)
		}
		for _, a := range t.Effort.Attributes {
			if !attributeNames[a] {
				return fmt.Errorf("%w: track %q effort rule names unknown attribute %q",
					ErrDataIntegrity, t.Name, a)
			}
		}
	}
	return nil
}

// attributeNames mirrors the canonical attribute codes. Kept local so
// the rules package stays free of engine imports.
var attributeNames = map[string]bool{
	"STR": true, "DEX": true, "CON": true, "INT": true, "WIS": true, "CHA": true,
}

// LoadTracks reads one track per .yaml file in dir.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated tracks or a non-nil error.
func LoadTracks(dir string) ([]*Track, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	tracks := make([]*Track, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var t Track
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing track file %s: %w", path, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("track file %s: %w", path, err)
		}
		tracks = append(tracks, &t)
	}
	return tracks, nil
}
