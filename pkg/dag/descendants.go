package dag

// DescendantFinder computes transitive dependents over a fixed graph.
//
// Results are cached per star ID for the lifetime of the finder. A finder is
// bound to the graph and alternates it was created with and is not safe for
// concurrent use.
type DescendantFinder struct {
	graph      Adjacency
	alternates map[string]string
	memo       map[string]Set
}

// NewDescendantFinder creates a finder over g. alternates maps a base star ID
// to its 100 coin alternate; it may be nil.
func NewDescendantFinder(g Adjacency, alternates map[string]string) *DescendantFinder {
	return &DescendantFinder{
		graph:      g,
		alternates: alternates,
		memo:       make(map[string]Set),
	}
}

// Of returns every star reachable from id through dependent edges, plus the
// alternate of each reached star. id itself is not included unless it is
// reachable from itself. A star with no dependents has an empty result.
//
// The returned set is shared with the cache and must not be modified.
func (f *DescendantFinder) Of(id string) Set {
	if s, ok := f.memo[id]; ok {
		return s
	}

	found := make(Set)
	stack := []string{id}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range f.graph[curr] {
			if found.Has(d) {
				continue
			}
			found.Add(d)
			if alt, ok := f.alternates[d]; ok {
				found.Add(alt)
			}
			stack = append(stack, d)
		}
	}

	f.memo[id] = found
	return found
}

// Cached returns the number of memoized entries.
func (f *DescendantFinder) Cached() int { return len(f.memo) }
