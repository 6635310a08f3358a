// Package equipment buys a starting loadout from the equipment tables.
package equipment

import "github.com/NaughtyFishies/swn-character-generator/internal/game/rules"

// Category caps for a starting loadout.
const (
	maxArmor   = 1
	maxWeapons = 2
	maxGear    = 5
)

// creditsPerLevel is added to the class base budget per character level.
const creditsPerLevel = 500

// Loadout is the purchased starting equipment.
type Loadout struct {
	Armor   *rules.Item   `json:"armor,omitempty"`
	Weapons []*rules.Item `json:"weapons,omitempty"`
	Gear    []*rules.Item `json:"gear,omitempty"`

	Budget      int `json:"budget"`
	CreditsLeft int `json:"credits_left"`
	Encumbrance int `json:"encumbrance"`
}

// Spent returns the credits consumed by the loadout.
func (l *Loadout) Spent() int {
	return l.Budget - l.CreditsLeft
}

// Items returns every purchased item in buy order.
func (l *Loadout) Items() []*rules.Item {
	var items []*rules.Item
	if l.Armor != nil {
		items = append(items, l.Armor)
	}
	items = append(items, l.Weapons...)
	items = append(items, l.Gear...)
	return items
}
