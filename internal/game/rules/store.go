package rules

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Store is the read-only, name-keyed index over all rule tables. It is
// loaded once at process start and never mutated afterwards, so it is
// safe to share across concurrent generation calls without locking.
type Store struct {
	classes     map[string]*Class
	classOrder  []string
	backgrounds map[string]*Background
	bgOrder     []string
	skills      []*Skill
	foci        []*Focus
	disciplines map[string]*Discipline
	discOrder   []string
	traditions  map[string]*Tradition
	tracks      map[string]*Track
	armor       []*Item
	ranged      []*Item
	melee       []*Item
	gear        []*Item
	names       *NameTable
}

// StoreTables bundles the raw tables a Store indexes. Tests build this
// directly; production code goes through LoadStore.
type StoreTables struct {
	Classes     []*Class
	Backgrounds []*Background
	Skills      []*Skill
	Foci        []*Focus
	Disciplines []*Discipline
	Traditions  []*Tradition
	Tracks      []*Track
	Armor       []*Item
	Ranged      []*Item
	Melee       []*Item
	Gear        []*Item
	Names       *NameTable
}

// NewStore indexes the given tables by lower-cased name.
//
// Postcondition: every class tradition/track reference resolves, or a
// non-nil error wrapping ErrDataIntegrity is returned.
func NewStore(t StoreTables) (*Store, error) {
	s := &Store{
		classes:     make(map[string]*Class, len(t.Classes)),
		backgrounds: make(map[string]*Background, len(t.Backgrounds)),
		disciplines: make(map[string]*Discipline, len(t.Disciplines)),
		traditions:  make(map[string]*Tradition, len(t.Traditions)),
		tracks:      make(map[string]*Track, len(t.Tracks)),
		skills:      t.Skills,
		foci:        t.Foci,
		armor:       t.Armor,
		ranged:      t.Ranged,
		melee:       t.Melee,
		gear:        t.Gear,
		names:       t.Names,
	}
	for _, c := range t.Classes {
		s.classes[keyOf(c.Name)] = c
		s.classOrder = append(s.classOrder, c.Name)
	}
	for _, b := range t.Backgrounds {
		s.backgrounds[keyOf(b.Name)] = b
		s.bgOrder = append(s.bgOrder, b.Name)
	}
	for _, d := range t.Disciplines {
		s.disciplines[keyOf(d.Name)] = d
		s.discOrder = append(s.discOrder, d.Name)
	}
	for _, tr := range t.Traditions {
		s.traditions[keyOf(tr.Name)] = tr
	}
	for _, tk := range t.Tracks {
		s.tracks[keyOf(tk.Name)] = tk
	}

	// Cross-reference check: class capability targets must exist.
	for _, c := range t.Classes {
		cap := c.Capability()
		switch cap.Kind {
		case PowerSpellcasting:
			if _, ok := s.traditions[keyOf(cap.Tradition)]; !ok {
				return nil, fmt.Errorf("%w: class %q references unknown tradition %q",
					ErrDataIntegrity, c.Name, cap.Tradition)
			}
		case PowerTrack:
			if _, ok := s.tracks[keyOf(cap.Track)]; !ok {
				return nil, fmt.Errorf("%w: class %q references unknown track %q",
					ErrDataIntegrity, c.Name, cap.Track)
			}
		}
	}
	return s, nil
}

// LoadStore reads every rule table under contentDir and indexes it.
// Expected layout:
//
//	contentDir/classes/*.yaml
//	contentDir/backgrounds.yaml
//	contentDir/skills.yaml
//	contentDir/foci.yaml
//	contentDir/disciplines.yaml
//	contentDir/spells/*.yaml
//	contentDir/tracks/*.yaml
//	contentDir/equipment/{armor,weapons,gear}.yaml
//	contentDir/names.yaml
//
// Precondition: contentDir must be a readable directory.
// Postcondition: Returns a fully indexed Store or a non-nil error; a
// malformed table surfaces as ErrDataIntegrity.
func LoadStore(contentDir string) (*Store, error) {
	var (
		t   StoreTables
		err error
	)
	if t.Classes, err = LoadClasses(filepath.Join(contentDir, "classes")); err != nil {
		return nil, err
	}
	if t.Backgrounds, err = LoadBackgrounds(filepath.Join(contentDir, "backgrounds.yaml")); err != nil {
		return nil, err
	}
	if t.Skills, err = LoadSkills(filepath.Join(contentDir, "skills.yaml")); err != nil {
		return nil, err
	}
	if t.Foci, err = LoadFoci(filepath.Join(contentDir, "foci.yaml")); err != nil {
		return nil, err
	}
	if t.Disciplines, err = LoadDisciplines(filepath.Join(contentDir, "disciplines.yaml")); err != nil {
		return nil, err
	}
	if t.Traditions, err = LoadTraditions(filepath.Join(contentDir, "spells")); err != nil {
		return nil, err
	}
	if t.Tracks, err = LoadTracks(filepath.Join(contentDir, "tracks")); err != nil {
		return nil, err
	}
	if t.Armor, err = LoadArmor(filepath.Join(contentDir, "equipment", "armor.yaml")); err != nil {
		return nil, err
	}
	if t.Ranged, t.Melee, err = LoadWeapons(filepath.Join(contentDir, "equipment", "weapons.yaml")); err != nil {
		return nil, err
	}
	if t.Gear, err = LoadGear(filepath.Join(contentDir, "equipment", "gear.yaml")); err != nil {
		return nil, err
	}
	if t.Names, err = LoadNames(filepath.Join(contentDir, "names.yaml")); err != nil {
		return nil, err
	}
	return NewStore(t)
}

// Class returns the class definition for name.
//
// Postcondition: a miss returns an error wrapping ErrUnknownClassOrTradition.
func (s *Store) Class(name string) (*Class, error) {
	if c, ok := s.classes[keyOf(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: class %q", ErrUnknownClassOrTradition, name)
}

// Background returns the background definition for name.
//
// Postcondition: a miss returns an error wrapping ErrUnknownClassOrTradition.
func (s *Store) Background(name string) (*Background, error) {
	if b, ok := s.backgrounds[keyOf(name)]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: background %q", ErrUnknownClassOrTradition, name)
}

// Tradition returns the spell tradition for name.
//
// Postcondition: a miss returns an error wrapping ErrUnknownClassOrTradition.
func (s *Store) Tradition(name string) (*Tradition, error) {
	if t, ok := s.traditions[keyOf(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: tradition %q", ErrUnknownClassOrTradition, name)
}

// Track returns the special-ability track for name.
//
// Postcondition: a miss returns an error wrapping ErrUnknownClassOrTradition.
func (s *Store) Track(name string) (*Track, error) {
	if t, ok := s.tracks[keyOf(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: track %q", ErrUnknownClassOrTradition, name)
}

// Discipline returns the psychic discipline for name.
//
// Postcondition: a miss returns an error wrapping ErrUnknownClassOrTradition.
func (s *Store) Discipline(name string) (*Discipline, error) {
	if d, ok := s.disciplines[keyOf(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: discipline %q", ErrUnknownClassOrTradition, name)
}

// ClassNames returns all class names in load order.
func (s *Store) ClassNames() []string { return append([]string(nil), s.classOrder...) }

// BackgroundNames returns all background names in load order.
func (s *Store) BackgroundNames() []string { return append([]string(nil), s.bgOrder...) }

// DisciplineNames returns all discipline names in load order.
func (s *Store) DisciplineNames() []string { return append([]string(nil), s.discOrder...) }

// Skills returns the general skill table in load order.
func (s *Store) Skills() []*Skill { return s.skills }

// SkillNames returns the names of all general skills in table order.
func (s *Store) SkillNames() []string {
	out := make([]string, len(s.skills))
	for i, sk := range s.skills {
		out[i] = sk.Name
	}
	return out
}

// CombatSkillNames returns the general skills flagged as combat skills.
func (s *Store) CombatSkillNames() []string {
	var out []string
	for _, sk := range s.skills {
		if sk.Combat {
			out = append(out, sk.Name)
		}
	}
	return out
}

// Foci returns the foci table in load order.
func (s *Store) Foci() []*Focus { return s.foci }

// Armor returns the armor table in load order.
func (s *Store) Armor() []*Item { return s.armor }

// RangedWeapons returns the ranged weapon table in load order.
func (s *Store) RangedWeapons() []*Item { return s.ranged }

// MeleeWeapons returns the melee weapon table in load order.
func (s *Store) MeleeWeapons() []*Item { return s.melee }

// Gear returns the general gear table in load order.
func (s *Store) Gear() []*Item { return s.gear }

// Names returns the random-name table, or nil if none was loaded.
func (s *Store) Names() *NameTable { return s.names }

func keyOf(name string) string { return strings.ToLower(name) }
