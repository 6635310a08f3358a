package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

func TestSetLevels(t *testing.T) {
	s := NewSet()
	assert.Equal(t, Untrained, s.Level("Shoot"))
	assert.False(t, s.Trained("Shoot"))

	s.Grant("Shoot")
	assert.Equal(t, 0, s.Level("Shoot"))

	s.Grant("Shoot")
	assert.Equal(t, 0, s.Level("Shoot"), "repeated grants do not stack")

	s.Raise("Shoot")
	assert.Equal(t, 1, s.Level("Shoot"))

	s.Raise("Notice")
	assert.Equal(t, 0, s.Level("Notice"), "raising an untrained skill trains it at 0")

	assert.Equal(t, []string{"Notice", "Shoot"}, s.Names())
}

func TestSetHighest(t *testing.T) {
	s := NewSet()
	s.SetLevel("Telepathy", 1)
	s.SetLevel("Biopsionics", 0)

	assert.Equal(t, 1, s.Highest([]string{"Telepathy", "Biopsionics", "Teleportation"}))
	assert.Equal(t, Untrained, s.Highest([]string{"Teleportation"}))
}

func TestBudget(t *testing.T) {
	// Creation allotment, floored at 1.
	assert.Equal(t, 3, Budget(1, 3, 0))
	assert.Equal(t, 5, Budget(1, 3, 2))
	assert.Equal(t, 1, Budget(1, 2, -2), "allotment never drops below 1")

	// Level-ups add L+2 points each.
	assert.Equal(t, 3+3, Budget(2, 3, 0))
	assert.Equal(t, 3+3+4, Budget(3, 3, 0))
	assert.Equal(t, 3+3+4+5+6, Budget(5, 3, 0))
}

func TestBudgetGrowsMonotonically(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.IntRange(1, 5).Draw(t, "base")
		intMod := rapid.IntRange(-2, 4).Draw(t, "intMod")
		level := rapid.IntRange(1, 9).Draw(t, "level")

		assert.Less(t, Budget(level, base, intMod), Budget(level+1, base, intMod))
	})
}

func TestCapForLevel(t *testing.T) {
	caps := map[int]int{1: 1, 2: 1, 3: 2, 5: 2, 6: 3, 8: 3, 9: 4, 10: 4}
	for level, want := range caps {
		assert.Equalf(t, want, CapForLevel(level), "level %d", level)
	}
}

func allocatorStore() *rules.Store {
	store, err := rules.NewStore(rules.StoreTables{
		Skills: []*rules.Skill{
			{Name: "Shoot", Combat: true},
			{Name: "Stab", Combat: true},
			{Name: "Punch", Combat: true},
			{Name: "Exert"},
			{Name: "Notice"},
			{Name: "Sneak"},
			{Name: "Fix"},
			{Name: "Heal"},
		},
	})
	if err != nil {
		panic(err)
	}
	return store
}

func TestSpendPrioritizesClassSkills(t *testing.T) {
	class := &rules.Class{Name: "Warrior", CombatPriority: true, PrioritySkills: []string{"Shoot", "Stab"}}
	set := NewSet()

	left := NewAllocator(allocatorStore()).Spend(set, 2, class, 1)

	assert.Zero(t, left)
	assert.Equal(t, 0, set.Level("Shoot"))
	assert.Equal(t, 0, set.Level("Stab"))
	assert.False(t, set.Trained("Punch"))
}

func TestSpendRoundRobinsBeforeStacking(t *testing.T) {
	class := &rules.Class{Name: "Warrior", CombatPriority: true, PrioritySkills: []string{"Shoot", "Stab"}}
	set := NewSet()

	// At level 3 the cap is 2, so 4 points should give Shoot and Stab a
	// level each rather than capping Shoot alone first.
	left := NewAllocator(allocatorStore()).Spend(set, 4, class, 3)

	assert.Zero(t, left)
	assert.Equal(t, 1, set.Level("Shoot"))
	assert.Equal(t, 1, set.Level("Stab"))
}

func TestSpendVisitsGrantedSkillsBeforeTheTable(t *testing.T) {
	class := &rules.Class{Name: "Expert", CombatPriority: false, PrioritySkills: []string{"Fix"}}
	set := NewSet()
	set.Grant("Notice")

	NewAllocator(allocatorStore()).Spend(set, 2, class, 1)

	assert.Equal(t, 0, set.Level("Fix"))
	assert.Equal(t, 1, set.Level("Notice"), "granted skill is second in line")
}

func TestSpendNeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := rapid.IntRange(0, 40).Draw(t, "points")
		level := rapid.IntRange(1, 10).Draw(t, "level")
		combat := rapid.Bool().Draw(t, "combat")

		class := &rules.Class{Name: "Any", CombatPriority: combat, PrioritySkills: []string{"Shoot"}}
		set := NewSet()

		left := NewAllocator(allocatorStore()).Spend(set, points, class, level)

		cap := CapForLevel(level)
		spent := 0
		for _, lvl := range set.Levels() {
			assert.LessOrEqual(t, lvl, cap)
			spent += lvl + 1
		}
		assert.Equal(t, points, spent+left, "every point is either spent or returned")
		if left > 0 {
			// Leftovers only happen once the whole table is capped.
			for _, lvl := range set.Levels() {
				assert.Equal(t, cap, lvl)
			}
		}
	})
}

func TestSpendNonCombatLeaning(t *testing.T) {
	class := &rules.Class{Name: "Expert", CombatPriority: false}
	set := NewSet()

	NewAllocator(allocatorStore()).Spend(set, 5, class, 1)

	for _, name := range []string{"Exert", "Notice", "Sneak", "Fix", "Heal"} {
		assert.Truef(t, set.Trained(name), "non-combat skill %s should be trained first", name)
	}
	assert.False(t, set.Trained("Shoot"))
}
