package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and
// result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: items must be non-empty; src must be non-nil.
func Pick[T any](src Source, items []T) T {
	if len(items) == 0 {
		panic("dice: Pick precondition violated: items must be non-empty")
	}
	return items[src.Intn(len(items))]
}

// Shuffle permutes items in place via Fisher-Yates, each permutation
// equally likely.
//
// Precondition: src must be non-nil.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Sample returns up to n elements of items chosen without replacement.
// When n >= len(items) a shuffled copy of the whole slice is returned.
//
// Precondition: n >= 0; src must be non-nil.
// Postcondition: the returned slice has min(n, len(items)) elements and
// no element of items appears twice.
func Sample[T any](src Source, items []T, n int) []T {
	if n < 0 {
		panic("dice: Sample precondition violated: n must be >= 0")
	}
	pool := make([]T, len(items))
	copy(pool, items)
	Shuffle(src, pool)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
