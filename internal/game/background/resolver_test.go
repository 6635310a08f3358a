package background

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

func testStore() *rules.Store {
	store, err := rules.NewStore(rules.StoreTables{
		Skills: []*rules.Skill{
			{Name: "Shoot", Combat: true},
			{Name: "Stab", Combat: true},
			{Name: "Punch", Combat: true},
			{Name: "Exert"},
			{Name: "Notice"},
			{Name: "Sneak"},
		},
	})
	if err != nil {
		panic(err)
	}
	return store
}

func testResolver(seed int64) *Resolver {
	roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
	return NewResolver(testStore(), roller)
}

func TestGrantsWithoutQuickSkillsIsDeterministic(t *testing.T) {
	bg := &rules.Background{
		Name:        "Soldier",
		FreeSkill:   "Shoot",
		QuickSkills: []string{"Exert", "Notice", "Sneak"},
	}

	for seed := int64(0); seed < 5; seed++ {
		grants := testResolver(seed).Grants(bg, false)
		assert.Equal(t, []string{"Shoot", "Exert"}, grants)
	}
}

func TestGrantsWithQuickSkillsDrawsFromList(t *testing.T) {
	bg := &rules.Background{
		Name:        "Soldier",
		FreeSkill:   "Shoot",
		QuickSkills: []string{"Exert", "Notice", "Sneak"},
	}

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		grants := testResolver(seed).Grants(bg, true)
		require.Len(t, grants, 2)
		assert.Equal(t, "Shoot", grants[0])
		assert.Contains(t, bg.QuickSkills, grants[1])
	})
}

func TestGrantsExpandsPlaceholders(t *testing.T) {
	combat := map[string]bool{"Shoot": true, "Stab": true, "Punch": true}

	t.Run("AnyCombat yields a combat skill", func(t *testing.T) {
		bg := &rules.Background{
			Name:        "Mercenary",
			FreeSkill:   rules.AnyCombat,
			QuickSkills: []string{"Exert", "Notice", "Sneak"},
		}
		rapid.Check(t, func(t *rapid.T) {
			seed := rapid.Int64().Draw(t, "seed")
			grants := testResolver(seed).Grants(bg, false)
			assert.True(t, combat[grants[0]], "got %q", grants[0])
		})
	})

	t.Run("AnySkill yields any table skill", func(t *testing.T) {
		bg := &rules.Background{
			Name:        "Wanderer",
			FreeSkill:   "Survive",
			QuickSkills: []string{rules.AnySkill, "Notice", "Sneak"},
		}
		rapid.Check(t, func(t *rapid.T) {
			seed := rapid.Int64().Draw(t, "seed")
			r := testResolver(seed)
			grants := r.Grants(bg, false)
			require.Len(t, grants, 2)
			assert.NotEqual(t, rules.AnySkill, grants[1])
		})
	})
}

func TestGrantsCollapsesDuplicates(t *testing.T) {
	bg := &rules.Background{
		Name:        "Gunhand",
		FreeSkill:   "Shoot",
		QuickSkills: []string{"Shoot", "Notice", "Sneak"},
	}

	grants := testResolver(7).Grants(bg, false)
	assert.Equal(t, []string{"Shoot"}, grants)
}
