package character

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/attr"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/background"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/equipment"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/power"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/skill"
)

// unarmoredAC is the armor class with no armor worn.
const unarmoredAC = 10

// Synthesizer assembles character sheets from the rule tables. One
// Synthesizer serves any number of Synthesize calls; all randomness
// flows through the injected roller.
type Synthesizer struct {
	store     *rules.Store
	roller    *dice.Roller
	logger    *zap.Logger
	resolver  *background.Resolver
	allocator *skill.Allocator
	powers    *power.Engine
	selector  *equipment.Selector
}

// NewSynthesizer creates a Synthesizer over the given rule tables.
//
// Precondition: store, roller, and logger must be non-nil.
func NewSynthesizer(store *rules.Store, roller *dice.Roller, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		store:     store,
		roller:    roller,
		logger:    logger,
		resolver:  background.NewResolver(store, roller),
		allocator: skill.NewAllocator(store),
		powers:    power.NewEngine(store, roller, logger),
		selector:  equipment.NewSelector(store, logger),
	}
}

// Synthesize builds one complete character from req.
//
// Postcondition: on success every sheet section is populated and the
// sheet honors the skill caps, power tables, and equipment budget; a
// bad request returns an error wrapping ErrInvalidConfiguration and an
// unknown class or background one wrapping ErrUnknownClassOrTradition.
func (s *Synthesizer) Synthesize(req Request) (*Character, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	class, err := s.resolveClass(req)
	if err != nil {
		return nil, err
	}
	bg, err := s.resolveBackground(req)
	if err != nil {
		return nil, err
	}

	attrs, err := attr.Generate(req.Method, s.roller)
	if err != nil {
		return nil, err
	}

	set := skill.NewSet()
	for _, name := range s.resolver.Grants(bg, req.UseQuickSkills) {
		set.Grant(name)
	}

	picks, err := s.powers.Prepare(class, overrideFor(req.Power), set)
	if err != nil {
		return nil, err
	}

	budget := skill.Budget(req.Level, class.SkillPointsBase, attrs.Mod(attr.Intelligence))
	unspent := s.allocator.Spend(set, budget, class, req.Level)

	profile, err := s.powers.Build(class, attrs, set, req.Level, picks)
	if err != nil {
		return nil, err
	}

	foci := s.pickFoci(class, profile)
	loadout := s.selector.Select(class, req.Level, req.MaxTech)

	c := &Character{
		Name:               req.Name,
		Class:              class.Name,
		Background:         bg.Name,
		Level:              req.Level,
		Attributes:         attrs,
		Skills:             set.Levels(),
		UnspentSkillPoints: unspent,
		Foci:               foci,
		Power:              profile,
		Equipment:          loadout,
		AttackBonus:        class.AttackBonus * req.Level,
		ArmorClass:         armorClass(loadout, attrs),
		SavingThrows:       class.SavingThrows,
	}
	c.HitPoints = s.rollHitPoints(class, req.Level, profile)

	s.logger.Info("character synthesized",
		zap.String("name", c.Name),
		zap.String("class", c.Class),
		zap.String("background", c.Background),
		zap.Int("level", c.Level),
		zap.Int("hp", c.HitPoints),
	)
	return c, nil
}

// normalize applies defaults and validates the request shape.
func (s *Synthesizer) normalize(req Request) (Request, error) {
	if req.Level == 0 {
		req.Level = 1
	}
	if req.Method == "" {
		req.Method = attr.MethodRoll
	}
	switch {
	case req.Level < 1 || req.Level > 10:
		return req, fmt.Errorf("%w: level %d out of [1, 10]", rules.ErrInvalidConfiguration, req.Level)
	case req.Method != attr.MethodRoll && req.Method != attr.MethodArray:
		return req, fmt.Errorf("%w: method %q is not one of roll, array", rules.ErrInvalidConfiguration, req.Method)
	case req.MaxTech < 0 || req.MaxTech > 5:
		return req, fmt.Errorf("%w: tech level %d out of [0, 5]", rules.ErrInvalidConfiguration, req.MaxTech)
	}
	switch req.Power {
	case "", PowerNormal, power.OverrideMagic, power.OverridePsionic:
	default:
		return req, fmt.Errorf("%w: power %q is not one of normal, magic, psionic", rules.ErrInvalidConfiguration, req.Power)
	}
	if req.Name == "" {
		req.Name = s.randomName()
	}
	return req, nil
}

// randomName draws from the name tables, falling back to a fixed name
// when the store carries no usable table.
func (s *Synthesizer) randomName() string {
	names := s.store.Names()
	if names == nil || len(names.First) == 0 || len(names.Last) == 0 {
		return "Nameless Spacer"
	}
	first := dice.Pick(s.roller.Source(), names.First)
	last := dice.Pick(s.roller.Source(), names.Last)
	return first + " " + last
}

// resolveClass looks up the requested class or draws one at random,
// restricted by the power constraint.
func (s *Synthesizer) resolveClass(req Request) (*rules.Class, error) {
	if req.Class != "" {
		return s.store.Class(req.Class)
	}

	var pool []string
	for _, name := range s.store.ClassNames() {
		c, _ := s.store.Class(name)
		if classMatchesPower(c, req.Power) {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no class matches power %q", rules.ErrInvalidConfiguration, req.Power)
	}
	return s.store.Class(dice.Pick(s.roller.Source(), pool))
}

// classMatchesPower applies the random-pick power constraint: normal
// means mundane, magic means spellcasting or a special track, psionic
// means psychic. No constraint admits every class.
func classMatchesPower(c *rules.Class, pw string) bool {
	switch pw {
	case "":
		return true
	case PowerNormal:
		return c.Power == rules.PowerNone
	case power.OverrideMagic:
		return c.Power == rules.PowerSpellcasting || c.Power == rules.PowerTrack
	case power.OverridePsionic:
		return c.Power == rules.PowerPsychic
	}
	return false
}

func (s *Synthesizer) resolveBackground(req Request) (*rules.Background, error) {
	if req.Background != "" {
		return s.store.Background(req.Background)
	}
	names := s.store.BackgroundNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no backgrounds loaded", rules.ErrDataIntegrity)
	}
	return s.store.Background(dice.Pick(s.roller.Source(), names))
}

// overrideFor maps the request power to the engine override. PowerNormal
// constrains the class pick only, so it carries no override.
func overrideFor(pw string) string {
	if pw == power.OverrideMagic || pw == power.OverridePsionic {
		return pw
	}
	return power.OverrideNone
}

// pickFoci draws the class focus count plus the class bonus focus,
// honoring incompatibilities, class gates, and the psychic-only flag.
func (s *Synthesizer) pickFoci(class *rules.Class, profile *power.Profile) []string {
	psychic := profile.Kind == rules.PowerPsychic || len(profile.Disciplines) > 0

	eligible := func(f *rules.Focus, chosen []*rules.Focus) bool {
		if !f.AllowsClass(class.Name) {
			return false
		}
		if f.PsychicOnly && !psychic {
			return false
		}
		for _, c := range chosen {
			if !f.CompatibleWith(c) {
				return false
			}
		}
		return true
	}

	var chosen []*rules.Focus
	draw := func(filter func(*rules.Focus) bool) {
		var pool []*rules.Focus
		for _, f := range s.store.Foci() {
			if eligible(f, chosen) && (filter == nil || filter(f)) {
				pool = append(pool, f)
			}
		}
		if len(pool) > 0 {
			chosen = append(chosen, dice.Pick(s.roller.Source(), pool))
		}
	}

	for i := 0; i < class.FociCount; i++ {
		draw(nil)
	}
	switch class.BonusFocus {
	case rules.BonusFocusCombat:
		draw(func(f *rules.Focus) bool { return f.Combat })
	case rules.BonusFocusNonCombat:
		draw(func(f *rules.Focus) bool { return !f.Combat && !f.PsychicOnly })
	}

	names := make([]string, len(chosen))
	for i, f := range chosen {
		names[i] = f.Name
	}
	return names
}

// rollHitPoints rolls the class hit dice scaled to level, adds track
// bonuses, and floors the result at 1.
func (s *Synthesizer) rollHitPoints(class *rules.Class, level int, profile *power.Profile) int {
	hp := s.roller.Roll(class.HitDiceExpr().Scale(level)).Total()
	hp += profile.TrackHPBonus
	if hp < 1 {
		hp = 1
	}
	return hp
}

// armorClass is the worn armor's AC, or the unarmored base, plus the
// dexterity modifier.
func armorClass(loadout *equipment.Loadout, attrs attr.Block) int {
	ac := unarmoredAC
	if loadout.Armor != nil {
		ac = loadout.Armor.AC
	}
	return ac + attrs.Mod(attr.Dexterity)
}
