// Package rules provides the read-only rule-table store for character
// synthesis: classes, backgrounds, skills, foci, psychic disciplines,
// spell traditions, special-ability tracks, and equipment, loaded once
// from YAML content files and indexed by name.
package rules

import "errors"

// ErrInvalidConfiguration reports a bad generation input (unknown
// attribute method, out-of-range level or tech level). Generation fails
// fast; no partial character is returned.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrUnknownClassOrTradition reports a class, background, tradition,
// discipline, or track name absent from the store.
var ErrUnknownClassOrTradition = errors.New("unknown class or tradition")

// ErrDataIntegrity reports a malformed rule table: a structural field is
// missing or out of range. Raised at load time, never silently defaulted.
var ErrDataIntegrity = errors.New("rule table integrity violation")
