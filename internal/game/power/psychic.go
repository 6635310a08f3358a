package power

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/attr"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/skill"
)

// pickDisciplines draws the creation discipline picks and trains their
// skills in set. A full psychic gets two picks: drawing the same
// discipline twice stacks it to rank 1, otherwise two disciplines start
// at rank 0. A partial talent gets one pick at rank 0.
func (e *Engine) pickDisciplines(set *skill.Set, full bool) (Picks, error) {
	names := e.store.DisciplineNames()
	if len(names) == 0 {
		return Picks{}, fmt.Errorf("%w: no psychic disciplines loaded", rules.ErrDataIntegrity)
	}

	first := dice.Pick(e.roller.Source(), names)
	set.Grant(first)
	picks := Picks{Disciplines: []string{first}, FullPsychic: full}
	if !full {
		return picks, nil
	}

	second := dice.Pick(e.roller.Source(), names)
	if second == first {
		set.SetLevel(first, 1)
	} else {
		set.Grant(second)
		picks.Disciplines = append(picks.Disciplines, second)
	}
	return picks, nil
}

// buildPsychic resolves techniques and the effort pool once discipline
// ranks are final.
func (e *Engine) buildPsychic(attrs attr.Block, set *skill.Set, picks Picks) (*Profile, error) {
	kind := rules.PowerPsychic
	if !picks.FullPsychic {
		// Mundane class with a power override keeps its own kind.
		kind = rules.PowerNone
	}
	p := &Profile{Kind: kind, Disciplines: picks.Disciplines}

	for _, name := range picks.Disciplines {
		d, err := e.store.Discipline(name)
		if err != nil {
			return nil, err
		}
		p.Techniques = append(p.Techniques, e.pickTechniques(d, set.Level(name))...)
	}

	p.Effort = effortPool(1+set.Highest(picks.Disciplines), attrs, attr.Wisdom, attr.Constitution)

	e.logger.Debug("psychic profile built",
		zap.Strings("disciplines", p.Disciplines),
		zap.Int("techniques", len(p.Techniques)),
		zap.Int("effort", p.Effort),
	)
	return p, nil
}

// pickTechniques grants the discipline core technique plus one drawn
// technique per skill rank. Each rank draws from its own level pool
// without replacement, falling back to lower-level unchosen techniques
// when a pool runs dry.
func (e *Engine) pickTechniques(d *rules.Discipline, rank int) []string {
	chosen := []string{d.CoreTechnique.Name}
	taken := map[string]bool{d.CoreTechnique.Name: true}

	for lvl := 1; lvl <= rank; lvl++ {
		pick := e.drawTechnique(d, lvl, taken)
		if pick == "" {
			continue
		}
		taken[pick] = true
		chosen = append(chosen, pick)
	}
	return chosen
}

func (e *Engine) drawTechnique(d *rules.Discipline, level int, taken map[string]bool) string {
	pool := untaken(d.TechniquesAtLevel(level), taken)
	if len(pool) == 0 {
		pool = untaken(d.TechniquesUpTo(level-1), taken)
	}
	if len(pool) == 0 {
		return ""
	}
	return dice.Pick(e.roller.Source(), pool)
}

func untaken(techniques []*rules.Technique, taken map[string]bool) []string {
	var pool []string
	for _, t := range techniques {
		if !taken[t.Name] {
			pool = append(pool, t.Name)
		}
	}
	return pool
}

// effortPool sizes an effort pool: base plus the better of the two
// attribute modifiers, floored at 1.
func effortPool(base int, attrs attr.Block, first, second string) int {
	m1, m2 := attrs.Mod(first), attrs.Mod(second)
	if m2 > m1 {
		m1 = m2
	}
	if pool := base + m1; pool > 1 {
		return pool
	}
	return 1
}
