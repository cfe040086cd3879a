package dag

import (
	"maps"
	"slices"
)

// Adjacency maps a prerequisite star ID to the IDs of stars that require it.
// Every value is non-empty.
type Adjacency map[string][]string

// FromPrerequisites inverts a dependent → prerequisites mapping into an
// [Adjacency]. Dependents are visited in sorted order, so the dependent lists
// are deterministic for a given input.
func FromPrerequisites(prereqs map[string][]string) Adjacency {
	g := make(Adjacency)
	for _, dependent := range slices.Sorted(maps.Keys(prereqs)) {
		for _, prereq := range prereqs[dependent] {
			g[prereq] = append(g[prereq], dependent)
		}
	}
	return g
}

// Dependents returns the direct dependents of id, or nil if id has none.
func (g Adjacency) Dependents(id string) []string { return g[id] }

// Has reports whether id is a prerequisite of at least one star.
func (g Adjacency) Has(id string) bool {
	_, ok := g[id]
	return ok
}

// IsDependent reports whether id requires some other star.
func (g Adjacency) IsDependent(id string) bool {
	for _, deps := range g {
		if slices.Contains(deps, id) {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of prerequisite edges.
func (g Adjacency) EdgeCount() int {
	n := 0
	for _, deps := range g {
		n += len(deps)
	}
	return n
}

// Set is an unordered collection of star IDs.
// The zero value is not usable; create sets with [NewSet] or a map literal.
type Set map[string]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts ids into the set.
func (s Set) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return make(Set)
	}
	return maps.Clone(s)
}

// Union returns a new set holding the members of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
