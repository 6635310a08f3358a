// Package background resolves background skill grants into concrete
// baseline skills.
package background

import (
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// Resolver turns a background definition into the character's baseline
// skill grants, expanding AnyCombat and AnySkill placeholders against
// the loaded skill table.
type Resolver struct {
	store  *rules.Store
	roller *dice.Roller
}

// NewResolver creates a Resolver over the given rule tables.
//
// Precondition: store and roller must be non-nil.
func NewResolver(store *rules.Store, roller *dice.Roller) *Resolver {
	return &Resolver{store: store, roller: roller}
}

// Grants returns the baseline skills a background confers, in grant
// order: the free skill first, then one quick skill. When useQuickSkills
// is false the first listed quick skill is taken, so the result is
// deterministic apart from placeholder expansion. Duplicate grants are
// collapsed.
//
// Postcondition: every returned name is a concrete skill, never a
// placeholder, and the slice has one or two entries.
func (r *Resolver) Grants(bg *rules.Background, useQuickSkills bool) []string {
	quick := bg.QuickSkills[0]
	if useQuickSkills {
		quick = dice.Pick(r.roller.Source(), bg.QuickSkills)
	}

	free := r.expand(bg.FreeSkill)
	quick = r.expand(quick)
	if quick == free {
		return []string{free}
	}
	return []string{free, quick}
}

// expand replaces a placeholder with a concrete skill drawn from the
// skill table. Concrete names pass through unchanged.
func (r *Resolver) expand(name string) string {
	switch name {
	case rules.AnyCombat:
		return dice.Pick(r.roller.Source(), r.store.CombatSkillNames())
	case rules.AnySkill:
		return dice.Pick(r.roller.Source(), r.store.SkillNames())
	}
	return name
}
