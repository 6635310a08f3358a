// Package attr models the six-attribute block and its generation methods.
package attr

import "fmt"

// Attribute names in canonical sheet order.
const (
	Strength     = "STR"
	Dexterity    = "DEX"
	Constitution = "CON"
	Intelligence = "INT"
	Wisdom       = "WIS"
	Charisma     = "CHA"
)

// Order lists the attributes in canonical sheet order. Generation and
// display both iterate this slice so scores always line up.
var Order = []string{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// Block holds one score per attribute.
type Block struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Modifier converts a raw score to its modifier: (score-10)/2 rounded
// toward negative infinity, so 7 gives -2 and 14 gives +2.
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		d--
	}
	return d / 2
}

// Score returns the score for the named attribute.
//
// Precondition: name must be one of the six canonical attribute names.
func (b Block) Score(name string) int {
	switch name {
	case Strength:
		return b.Strength
	case Dexterity:
		return b.Dexterity
	case Constitution:
		return b.Constitution
	case Intelligence:
		return b.Intelligence
	case Wisdom:
		return b.Wisdom
	case Charisma:
		return b.Charisma
	}
	panic(fmt.Sprintf("attr: unknown attribute %q", name))
}

// Mod returns the modifier for the named attribute.
func (b Block) Mod(name string) int {
	return Modifier(b.Score(name))
}

// Known reports whether name is a canonical attribute name.
func Known(name string) bool {
	for _, a := range Order {
		if a == name {
			return true
		}
	}
	return false
}

func fromScores(scores [6]int) Block {
	return Block{
		Strength:     scores[0],
		Dexterity:    scores[1],
		Constitution: scores[2],
		Intelligence: scores[3],
		Wisdom:       scores[4],
		Charisma:     scores[5],
	}
}
