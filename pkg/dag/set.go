package dag

import (
	"maps"
	"slices"
)

// Set is an unordered set of package names, used for the transitive
// closure of a root package.
type Set map[string]struct{}

// NewSet returns a set containing ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of elements.
func (s Set) Len() int { return len(s) }

// Sorted returns the elements in lexicographic order.
func (s Set) Sorted() []string { return slices.Sorted(maps.Keys(s)) }
