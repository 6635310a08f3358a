package skill

import (
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Allocator spends skill points deterministically. Points are dealt
// round-robin across a priority ordering, one step per visit, so ranks
// stay flat instead of dumping every point into the first skill.
type Allocator struct {
	store *rules.Store
}

// NewAllocator creates an Allocator over the given rule tables.
//
// Precondition: store must be non-nil.
func NewAllocator(store *rules.Store) *Allocator {
	return &Allocator{store: store}
}

// Spend raises skills in set until points run out or every candidate is
// at the level cap, and returns the unspent remainder. Each step of one
// rank costs one point. The candidate ordering is, in priority order:
// the class priority skills, skills already trained, then combat or
// non-combat skills per the class leaning, then the rest of the table.
//
// Postcondition: no skill exceeds CapForLevel(level); the returned
// remainder is >= 0 and nonzero only when every candidate is capped.
func (a *Allocator) Spend(set *Set, points int, class *rules.Class, level int) int {
	if points <= 0 {
		return 0
	}
	order := a.candidateOrder(set, class)
	cap := CapForLevel(level)

	for points > 0 {
		raised := false
		for _, name := range order {
			if points == 0 {
				break
			}
			if set.Level(name) >= cap {
				continue
			}
			set.Raise(name)
			points--
			raised = true
		}
		if !raised {
			break
		}
	}
	return points
}

// candidateOrder builds the deduplicated allocation ordering.
func (a *Allocator) candidateOrder(set *Set, class *rules.Class) []string {
	var order []string
	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}
	}

	add(class.PrioritySkills...)
	add(set.Names()...)

	var leaning, rest []string
	for _, sk := range a.store.Skills() {
		if sk.Combat == class.CombatPriority {
			leaning = append(leaning, sk.Name)
		} else {
			rest = append(rest, sk.Name)
		}
	}
	add(leaning...)
	add(rest...)
	return order
}
