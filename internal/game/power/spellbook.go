package power

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Progression tables indexed [characterLevel][spellLevel]. Index 0 is
// unused on both axes so the entries read like the rulebook.

// magisterKnown is the fixed-tradition spells-known table shared by all
// fixed-style traditions.
var magisterKnown = [11][6]int{
	1:  {1: 2},
	2:  {1: 2},
	3:  {1: 3, 2: 2},
	4:  {1: 3, 2: 2},
	5:  {1: 4, 2: 2, 3: 2},
	6:  {1: 4, 2: 3, 3: 2},
	7:  {1: 5, 2: 3, 3: 2, 4: 2},
	8:  {1: 5, 2: 4, 3: 3, 4: 2},
	9:  {1: 5, 2: 4, 3: 3, 4: 3, 5: 2},
	10: {1: 5, 2: 4, 3: 3, 4: 3, 5: 2},
}

// magisterSlots is the fixed-tradition daily slot table.
var magisterSlots = [11][6]int{
	1:  {1: 3},
	2:  {1: 4},
	3:  {1: 5, 2: 2},
	4:  {1: 6, 2: 3},
	5:  {1: 6, 2: 3, 3: 2},
	6:  {1: 6, 2: 4, 3: 3},
	7:  {1: 6, 2: 4, 3: 3, 4: 2},
	8:  {1: 6, 2: 5, 3: 4, 4: 3},
	9:  {1: 6, 2: 5, 3: 4, 4: 3, 5: 2},
	10: {1: 6, 2: 6, 3: 5, 4: 4, 5: 3},
}

// arcanistPrepared is the open-library prepared-per-day table.
var arcanistPrepared = [11][6]int{
	1:  {1: 1},
	2:  {1: 2},
	3:  {1: 2, 2: 1},
	4:  {1: 3, 2: 2},
	5:  {1: 3, 2: 2, 3: 1},
	6:  {1: 4, 2: 3, 3: 2},
	7:  {1: 4, 2: 3, 3: 2, 4: 1},
	8:  {1: 4, 2: 4, 3: 3, 4: 2},
	9:  {1: 5, 2: 4, 3: 3, 4: 2, 5: 1},
	10: {1: 5, 2: 4, 3: 3, 4: 3, 5: 2},
}

// buildSpellbook fills a spellcasting profile from the tradition's
// style and spell list.
//
// Precondition: level in [1, 10].
func (e *Engine) buildSpellbook(tradition *rules.Tradition, level int) (*Profile, error) {
	if level < 1 || level > 10 {
		return nil, fmt.Errorf("%w: character level %d out of [1, 10]",
			rules.ErrInvalidConfiguration, level)
	}

	p := &Profile{Kind: rules.PowerSpellcasting, Tradition: tradition.Name}
	switch tradition.Style {
	case rules.TraditionFixed:
		e.fillFixed(p, tradition, level)
	case rules.TraditionOpen:
		e.fillOpen(p, tradition, level)
	}

	e.logger.Debug("spellbook built",
		zap.String("tradition", tradition.Name),
		zap.String("style", tradition.Style),
		zap.Int("spells_known", len(p.SpellsKnown)),
	)
	return p, nil
}

// fillFixed draws the tabled number of known spells per spell level
// without replacement. Short spell lists truncate the draw silently.
func (e *Engine) fillFixed(p *Profile, tradition *rules.Tradition, level int) {
	p.SpellSlots = make(map[int]int)
	for sl := 1; sl <= 5; sl++ {
		if slots := magisterSlots[level][sl]; slots > 0 {
			p.SpellSlots[sl] = slots
		}
		want := magisterKnown[level][sl]
		if want == 0 {
			continue
		}
		for _, s := range dice.Sample(e.roller.Source(), tradition.SpellsAtLevel(sl), want) {
			p.SpellsKnown = append(p.SpellsKnown, s.Name)
		}
	}
}

// fillOpen grows a spell library level by level. Each character level
// re-draws a target library size per accessible spell level, clamped to
// never drop below the prepared count or the previous target.
func (e *Engine) fillOpen(p *Profile, tradition *rules.Tradition, level int) {
	target := [6]int{}
	for charL := 1; charL <= level; charL++ {
		low, high := 2, 4
		if charL >= 6 {
			low, high = 5, 8
		}
		for sl := 1; sl <= 5; sl++ {
			prepared := arcanistPrepared[charL][sl]
			if prepared == 0 {
				continue
			}
			draw := low + e.roller.Source().Intn(high-low+1)
			if draw < prepared {
				draw = prepared
			}
			if draw < target[sl] {
				draw = target[sl]
			}
			target[sl] = draw
		}
	}

	p.SpellsPrepared = make(map[int]int)
	for sl := 1; sl <= 5; sl++ {
		if prepared := arcanistPrepared[level][sl]; prepared > 0 {
			p.SpellsPrepared[sl] = prepared
		}
		if target[sl] == 0 {
			continue
		}
		for _, s := range dice.Sample(e.roller.Source(), tradition.SpellsAtLevel(sl), target[sl]) {
			p.SpellsKnown = append(p.SpellsKnown, s.Name)
		}
	}
}
