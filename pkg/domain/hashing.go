package domain

import (
	"sort"
	"strings"
)

// StateHasher is the equivalence abstraction used to deduplicate states.
// Two states are the same state iff their keys are equal.
type StateHasher interface {
	Key(s *State) string
}

// HasherFunc adapts a function to StateHasher.
type HasherFunc func(s *State) string

// Key implements StateHasher.
func (f HasherFunc) Key(s *State) string { return f(s) }

// ExactHasher treats object names as significant.
// Object order inside the state does not matter.
type ExactHasher struct{}

// Key implements StateHasher.
func (ExactHasher) Key(s *State) string {
	parts := make([]string, 0, len(s.Objects))
	for _, o := range s.Objects {
		parts = append(parts, o.Name+":"+o.Class+"{"+formatValues(o.Values, nil)+"}")
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// IdentifierIndependentHasher ignores object names: two states that differ only
// by a renaming of same-class objects are equivalent.
type IdentifierIndependentHasher struct{}

// Key implements StateHasher.
func (IdentifierIndependentHasher) Key(s *State) string {
	parts := make([]string, 0, len(s.Objects))
	for _, o := range s.Objects {
		parts = append(parts, o.Class+"{"+formatValues(o.Values, nil)+"}")
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// MaskHasher only considers the listed class attributes; everything else,
// including object names and unlisted classes, is ignored.
type MaskHasher struct {
	mask map[string]map[string]bool
}

// NewMaskHasher builds a MaskHasher from "class.attribute" entries.
// An entry without a dot keeps every attribute of that class.
func NewMaskHasher(entries ...string) *MaskHasher {
	h := &MaskHasher{mask: make(map[string]map[string]bool)}
	for _, e := range entries {
		class, attr, found := strings.Cut(e, ".")
		if h.mask[class] == nil {
			h.mask[class] = make(map[string]bool)
		}
		if !found {
			attr = "*"
		}
		h.mask[class][attr] = true
	}
	return h
}

// Key implements StateHasher.
func (h *MaskHasher) Key(s *State) string {
	parts := make([]string, 0, len(s.Objects))
	for _, o := range s.Objects {
		attrs, ok := h.mask[o.Class]
		if !ok {
			continue
		}
		keep := func(name string) bool { return attrs["*"] || attrs[name] }
		parts = append(parts, o.Class+"{"+formatValues(o.Values, keep)+"}")
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// HasherName returns a stable label for the built-in hashers.
func HasherName(h StateHasher) string {
	switch h.(type) {
	case ExactHasher, *ExactHasher:
		return "exact"
	case IdentifierIndependentHasher, *IdentifierIndependentHasher:
		return "identifier-independent"
	case *MaskHasher:
		return "mask"
	default:
		return "custom"
	}
}

// HasherByName resolves a built-in hasher label. Mask entries are only used by "mask".
func HasherByName(name string, mask ...string) (StateHasher, bool) {
	switch name {
	case "exact":
		return ExactHasher{}, true
	case "", "identifier-independent":
		return IdentifierIndependentHasher{}, true
	case "mask":
		return NewMaskHasher(mask...), true
	default:
		return nil, false
	}
}
