// Package skill tracks trained skill ranks and spends skill points.
package skill

import "sort"

// Untrained is the level reported for skills with no rank at all.
// Trained skills start at level 0.
const Untrained = -1

// Set maps skill names to trained levels. The zero value is not usable;
// construct with NewSet.
type Set struct {
	levels map[string]int
}

// NewSet returns an empty skill set.
func NewSet() *Set {
	return &Set{levels: make(map[string]int)}
}

// Level returns the trained level of name, or Untrained.
func (s *Set) Level(name string) int {
	if lvl, ok := s.levels[name]; ok {
		return lvl
	}
	return Untrained
}

// Trained reports whether name has any rank.
func (s *Set) Trained(name string) bool {
	_, ok := s.levels[name]
	return ok
}

// Grant sets name to level 0 if it is untrained. Granting an already
// trained skill is a no-op, so repeated baseline grants never stack.
func (s *Set) Grant(name string) {
	if !s.Trained(name) {
		s.levels[name] = 0
	}
}

// Raise increases name by one step: untrained skills become level 0,
// trained skills gain a level.
func (s *Set) Raise(name string) {
	if lvl, ok := s.levels[name]; ok {
		s.levels[name] = lvl + 1
		return
	}
	s.levels[name] = 0
}

// SetLevel forces name to the given level.
//
// Precondition: level >= 0.
func (s *Set) SetLevel(name string, level int) {
	s.levels[name] = level
}

// Names returns the trained skill names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.levels))
	for name := range s.levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Levels returns a copy of the name-to-level map.
func (s *Set) Levels() map[string]int {
	out := make(map[string]int, len(s.levels))
	for name, lvl := range s.levels {
		out[name] = lvl
	}
	return out
}

// Highest returns the maximum level among the named skills, or
// Untrained when none of them is trained.
func (s *Set) Highest(names []string) int {
	highest := Untrained
	for _, name := range names {
		if lvl := s.Level(name); lvl > highest {
			highest = lvl
		}
	}
	return highest
}
