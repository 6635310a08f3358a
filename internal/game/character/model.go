// Package character assembles complete character sheets.
package character

import (
	"github.com/NaughtyFishies/swn-character-generator/internal/game/attr"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/equipment"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/power"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Character is a fully assembled character sheet.
type Character struct {
	Name       string `json:"name"`
	Class      string `json:"class"`
	Background string `json:"background"`
	Level      int    `json:"level"`

	Attributes attr.Block     `json:"attributes"`
	Skills     map[string]int `json:"skills"`
	// UnspentSkillPoints is the leftover once allocation hit every cap.
	UnspentSkillPoints int `json:"unspent_skill_points,omitempty"`

	Foci  []string       `json:"foci,omitempty"`
	Power *power.Profile `json:"power,omitempty"`

	Equipment *equipment.Loadout `json:"equipment"`

	HitPoints    int                `json:"hit_points"`
	AttackBonus  int                `json:"attack_bonus"`
	ArmorClass   int                `json:"armor_class"`
	SavingThrows rules.SavingThrows `json:"saving_throws"`
}

// Request describes one character to synthesize. Zero-value string
// fields mean "pick randomly"; Level defaults to 1 when zero.
type Request struct {
	Name       string
	Class      string
	Background string
	Level      int

	// Method selects attribute generation, attr.MethodRoll or
	// attr.MethodArray.
	Method string

	// Power constrains a random class pick and, for mundane classes,
	// forces a partial power grant: PowerNormal, power.OverrideMagic,
	// or power.OverridePsionic.
	Power string

	// MaxTech gates the equipment pool, 0 through 5.
	MaxTech int

	// UseQuickSkills draws the background quick skill randomly instead
	// of taking the first listed one.
	UseQuickSkills bool
}

// PowerNormal restricts a random class pick to mundane classes without
// forcing any grant.
const PowerNormal = "normal"
