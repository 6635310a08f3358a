// Package power grants class powers: spellbooks, psychic disciplines
// and techniques, and special-ability tracks.
package power

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/attr"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/skill"
)

// CastMagicSkill is granted at level 0 to every spellcasting class.
const CastMagicSkill = "Cast Magic"

// Override values force a power grant onto a mundane class. Empty means
// no override; classes with native powers ignore it.
const (
	OverrideNone    = ""
	OverrideMagic   = "magic"
	OverridePsionic = "psionic"
)

// Engine resolves the power grants a class confers. It never dispatches
// on class names, only on the class capability descriptor.
type Engine struct {
	store  *rules.Store
	roller *dice.Roller
	logger *zap.Logger
}

// NewEngine creates a power Engine over the given rule tables.
//
// Precondition: store, roller, and logger must be non-nil.
func NewEngine(store *rules.Store, roller *dice.Roller, logger *zap.Logger) *Engine {
	return &Engine{store: store, roller: roller, logger: logger}
}

// Picks records the pre-allocation grants so Build can finish the
// profile once skill points have been spent.
type Picks struct {
	Disciplines []string
	// FullPsychic distinguishes a native psychic from a mundane class
	// with a power override, which gets a single discipline at rank 0.
	FullPsychic bool
}

// Profile is the resolved power block of a character sheet.
type Profile struct {
	Kind      rules.PowerKind `json:"kind"`
	Tradition string          `json:"tradition,omitempty"`

	SpellsKnown    []string    `json:"spells_known,omitempty"`
	SpellSlots     map[int]int `json:"spell_slots,omitempty"`
	SpellsPrepared map[int]int `json:"spells_prepared,omitempty"`

	Disciplines []string `json:"disciplines,omitempty"`
	Techniques  []string `json:"techniques,omitempty"`
	Effort      int      `json:"effort,omitempty"`

	Track          string              `json:"track,omitempty"`
	TrackAbilities []string            `json:"track_abilities,omitempty"`
	SacredWeapon   *rules.SacredWeapon `json:"sacred_weapon,omitempty"`
	TrackHPBonus   int                 `json:"-"`
}

// Prepare applies the grants that must land before skill allocation:
// the Cast Magic skill for spellcasters and the psychic discipline
// picks, which go into set rank-free so the allocator treats them as
// already trained.
//
// Precondition: set must be non-nil.
// Postcondition: the returned Picks feed Build after allocation.
func (e *Engine) Prepare(class *rules.Class, override string, set *skill.Set) (Picks, error) {
	cap := class.Capability()
	switch cap.Kind {
	case rules.PowerSpellcasting:
		set.Grant(CastMagicSkill)
		return Picks{}, nil
	case rules.PowerPsychic:
		picks, err := e.pickDisciplines(set, true)
		return picks, err
	case rules.PowerTrack:
		return Picks{}, nil
	case rules.PowerNone:
		switch override {
		case OverrideNone:
			return Picks{}, nil
		case OverrideMagic, OverridePsionic:
			// A forced power on a mundane class grants one discipline
			// at rank 0, the partial-talent treatment.
			picks, err := e.pickDisciplines(set, false)
			return picks, err
		}
		return Picks{}, fmt.Errorf("%w: power override %q is not one of magic, psionic",
			rules.ErrInvalidConfiguration, override)
	}
	return Picks{}, fmt.Errorf("%w: class %q power kind %q",
		rules.ErrDataIntegrity, class.Name, cap.Kind)
}

// Build resolves the full power profile after skill allocation, when
// discipline ranks are final.
//
// Precondition: picks must come from Prepare with the same class;
// level in [1, 10].
func (e *Engine) Build(class *rules.Class, attrs attr.Block, set *skill.Set, level int, picks Picks) (*Profile, error) {
	cap := class.Capability()
	switch {
	case cap.Kind == rules.PowerSpellcasting:
		tradition, err := e.store.Tradition(cap.Tradition)
		if err != nil {
			return nil, err
		}
		return e.buildSpellbook(tradition, level)
	case cap.Kind == rules.PowerPsychic || len(picks.Disciplines) > 0:
		return e.buildPsychic(attrs, set, picks)
	case cap.Kind == rules.PowerTrack:
		track, err := e.store.Track(cap.Track)
		if err != nil {
			return nil, err
		}
		return e.buildTrack(track, attrs, level), nil
	}
	return &Profile{Kind: rules.PowerNone}, nil
}
