package attr

import (
	"fmt"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Generation methods.
const (
	// MethodRoll rolls 3d6 per attribute in order, then raises the lowest
	// score to 14 when it falls below 14.
	MethodRoll = "roll"
	// MethodArray deals the standard array 14, 12, 11, 10, 9, 7 in a
	// random order.
	MethodArray = "array"
)

// standardArray is the fixed score set dealt by MethodArray.
var standardArray = [6]int{14, 12, 11, 10, 9, 7}

// rollBoost is the floor the lowest rolled score is raised to.
const rollBoost = 14

// Generate produces an attribute block using the given method.
//
// Precondition: method is MethodRoll or MethodArray.
// Postcondition: with MethodRoll, at least one score is >= 14; with
// MethodArray, the scores are a permutation of the standard array.
func Generate(method string, roller *dice.Roller) (Block, error) {
	switch method {
	case MethodRoll:
		return rollBlock(roller), nil
	case MethodArray:
		return arrayBlock(roller), nil
	}
	return Block{}, fmt.Errorf("%w: attribute method %q is not one of roll, array",
		rules.ErrInvalidConfiguration, method)
}

var threeD6 = dice.MustParse("3d6")

func rollBlock(roller *dice.Roller) Block {
	var scores [6]int
	lowest := 0
	for i := range scores {
		scores[i] = roller.Roll(threeD6).Total()
		if scores[i] < scores[lowest] {
			lowest = i
		}
	}
	// Ties keep the earliest attribute in sheet order.
	if scores[lowest] < rollBoost {
		scores[lowest] = rollBoost
	}
	return fromScores(scores)
}

func arrayBlock(roller *dice.Roller) Block {
	scores := standardArray
	dice.Shuffle(roller.Source(), scores[:])
	return fromScores(scores)
}
