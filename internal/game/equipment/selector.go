package equipment

import (
	"sort"

	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Gear categories bought first by classes without a combat leaning.
var utilityCategories = map[string]bool{
	"tools":   true,
	"utility": true,
}

// Selector buys starting equipment against a credit budget. Selection
// is fully deterministic: cheapest item first within each category,
// names breaking cost ties.
type Selector struct {
	store  *rules.Store
	logger *zap.Logger
}

// NewSelector creates a Selector over the given rule tables.
//
// Precondition: store and logger must be non-nil.
func NewSelector(store *rules.Store, logger *zap.Logger) *Selector {
	return &Selector{store: store, logger: logger}
}

// Select buys a loadout for the class at the given level. The budget is
// the class base credits plus 500 per level; the pool is restricted to
// items at or below maxTech. Combat-leaning classes buy armor, then up
// to two weapons with ranged before melee, then gear; other classes
// secure utility gear before arms. Unspent credits are kept, and an
// empty category is not an error.
//
// Postcondition: Spent() <= Budget; at most 1 armor, 2 weapons, 5 gear;
// every item's TechLevel <= maxTech; Encumbrance sums the Enc of every
// purchased item.
func (s *Selector) Select(class *rules.Class, level, maxTech int) *Loadout {
	budget := class.BaseCredits + level*creditsPerLevel
	l := &Loadout{Budget: budget, CreditsLeft: budget}

	if class.CombatPriority {
		s.buyArmor(l, maxTech)
		s.buyWeapons(l, maxTech)
		s.buyGear(l, maxTech, nil)
	} else {
		s.buyGear(l, maxTech, utilityCategories)
		s.buyArmor(l, maxTech)
		s.buyWeapons(l, maxTech)
		s.buyGear(l, maxTech, nil)
	}

	s.logger.Debug("loadout selected",
		zap.String("class", class.Name),
		zap.Int("budget", budget),
		zap.Int("spent", l.Spent()),
		zap.Int("items", len(l.Items())),
		zap.Int("enc", l.Encumbrance),
	)
	return l
}

func (s *Selector) buyArmor(l *Loadout, maxTech int) {
	if l.Armor != nil {
		return
	}
	for _, item := range cheapestFirst(s.store.Armor(), maxTech) {
		if item.Cost <= l.CreditsLeft {
			l.Armor = item
			l.CreditsLeft -= item.Cost
			l.Encumbrance += item.Enc
			return
		}
	}
}

// buyWeapons takes the cheapest affordable ranged weapon, then the
// cheapest affordable melee weapon, up to the weapon cap.
func (s *Selector) buyWeapons(l *Loadout, maxTech int) {
	for _, pool := range [][]*rules.Item{s.store.RangedWeapons(), s.store.MeleeWeapons()} {
		if len(l.Weapons) >= maxWeapons {
			return
		}
		for _, item := range cheapestFirst(pool, maxTech) {
			if item.Cost <= l.CreditsLeft {
				l.Weapons = append(l.Weapons, item)
				l.CreditsLeft -= item.Cost
				l.Encumbrance += item.Enc
				break
			}
		}
	}
}

// buyGear fills remaining gear slots cheapest-first. A non-nil category
// filter restricts the pool; duplicates are never bought.
func (s *Selector) buyGear(l *Loadout, maxTech int, categories map[string]bool) {
	owned := make(map[string]bool, len(l.Gear))
	for _, g := range l.Gear {
		owned[g.Name] = true
	}
	for _, item := range cheapestFirst(s.store.Gear(), maxTech) {
		if len(l.Gear) >= maxGear {
			return
		}
		if owned[item.Name] || item.Cost > l.CreditsLeft {
			continue
		}
		if categories != nil && !categories[item.Category] {
			continue
		}
		owned[item.Name] = true
		l.Gear = append(l.Gear, item)
		l.CreditsLeft -= item.Cost
		l.Encumbrance += item.Enc
	}
}

// cheapestFirst returns the tech-gated pool sorted by cost, then name.
func cheapestFirst(pool []*rules.Item, maxTech int) []*rules.Item {
	gated := make([]*rules.Item, 0, len(pool))
	for _, item := range pool {
		if item.TechLevel <= maxTech {
			gated = append(gated, item)
		}
	}
	sort.Slice(gated, func(i, j int) bool {
		if gated[i].Cost != gated[j].Cost {
			return gated[i].Cost < gated[j].Cost
		}
		return gated[i].Name < gated[j].Name
	})
	return gated
}
