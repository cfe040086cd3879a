package optimize

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/starroute/pkg/dag"
)

// Partition splits the special stars into stars fixed in the route and stars
// kept out of it. Excluded also holds the non-special descendants of every
// excluded star.
type Partition struct {
	Included dag.Set
	Excluded dag.Set
}

// CandidateKind tells which members of a base/alternate pair can still be
// included.
type CandidateKind int

const (
	// Neither member is eligible.
	Neither CandidateKind = iota
	// BaseOnly means only the base star is eligible.
	BaseOnly
	// AlternateOnly means only the 100 coin alternate is eligible.
	AlternateOnly
	// Both members are eligible and exclude each other.
	Both
)

// Candidates is the inclusion choice available for one special star.
type Candidates struct {
	Kind      CandidateKind
	Base      string
	Alternate string // empty if the base has no alternate
}

// Branch is one way of including a member of a pair: Include joins the
// route and Exclude, if set, is ruled out.
type Branch struct {
	Include string
	Exclude string
}

// candidatesFor classifies id and its alternate against the eligible stars
// and the stars already excluded on the current path.
func candidatesFor(id string, alternates map[string]string, eligible, excluded dag.Set) Candidates {
	c := Candidates{Base: id, Alternate: alternates[id]}

	baseOK := eligible.Has(id) && !excluded.Has(id)
	altOK := c.Alternate != "" && eligible.Has(c.Alternate) && !excluded.Has(c.Alternate)

	switch {
	case baseOK && altOK:
		c.Kind = Both
	case baseOK:
		c.Kind = BaseOnly
	case altOK:
		c.Kind = AlternateOnly
	default:
		c.Kind = Neither
	}
	return c
}

// Branches lists every include branch for c.
func (c Candidates) Branches() []Branch {
	switch c.Kind {
	case Both:
		return []Branch{
			{Include: c.Base, Exclude: c.Alternate},
			{Include: c.Alternate, Exclude: c.Base},
		}
	case BaseOnly:
		return []Branch{{Include: c.Base}}
	case AlternateOnly:
		return []Branch{{Include: c.Alternate}}
	default:
		return nil
	}
}

// specialOrder returns the stars to decide: prerequisites in topological
// order followed by the remaining base stars that have an alternate. The
// root is left out because its decision seeds the search.
func specialOrder(g dag.Adjacency, alternates map[string]string, root string) []string {
	order := dag.TopologicalOrder(g)
	for _, base := range slices.Sorted(maps.Keys(alternates)) {
		if !g.Has(base) {
			order = append(order, base)
		}
	}
	return slices.DeleteFunc(order, func(id string) bool { return id == root })
}

// frame is one pending step of the enumeration. Each frame owns its sets.
type frame struct {
	index    int
	included dag.Set
	excluded dag.Set
}

// EachPartition calls fn for every valid partition of the special stars.
//
// Stars are decided in [specialOrder]. For each star the generator tries the
// include branches from [Candidates.Branches] and then the exclude branch,
// which also rules out the star's alternate, all of its descendants, and
// their alternates. The search runs on an explicit stack; no two frames share
// a set.
//
// It returns [ErrRootHasAncestors] if root requires another star. If fn
// returns an error, enumeration stops and the error is returned.
func EachPartition(g dag.Adjacency, alternates map[string]string, eligible dag.Set, root string, fn func(Partition) error) error {
	if g.IsDependent(root) {
		return fmt.Errorf("%w: %s", ErrRootHasAncestors, root)
	}

	order := specialOrder(g, alternates, root)
	finder := dag.NewDescendantFinder(g, alternates)

	var stack []frame
	push := func(index int, included, excluded dag.Set, b Branch) {
		included.Add(b.Include)
		if b.Exclude != "" {
			excluded.Add(b.Exclude)
		}
		stack = append(stack, frame{index: index, included: included, excluded: excluded})
	}

	seeds := candidatesFor(root, alternates, eligible, nil).Branches()
	for i := len(seeds) - 1; i >= 0; i-- {
		push(0, make(dag.Set), make(dag.Set), seeds[i])
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.index == len(order) {
			if err := fn(Partition{Included: f.included, Excluded: f.excluded}); err != nil {
				return err
			}
			continue
		}

		id := order[f.index]
		next := f.index + 1

		// Pushed first so the include branches are explored before it.
		excluded := f.excluded.Union(finder.Of(id))
		excluded.Add(id)
		if alt, ok := alternates[id]; ok {
			excluded.Add(alt)
		}
		stack = append(stack, frame{index: next, included: f.included.Clone(), excluded: excluded})

		branches := candidatesFor(id, alternates, eligible, f.excluded).Branches()
		for i := len(branches) - 1; i >= 0; i-- {
			push(next, f.included.Clone(), f.excluded.Clone(), branches[i])
		}
	}
	return nil
}

// Partitions collects every partition produced by [EachPartition].
func Partitions(g dag.Adjacency, alternates map[string]string, eligible dag.Set, root string) ([]Partition, error) {
	var out []Partition
	err := EachPartition(g, alternates, eligible, root, func(p Partition) error {
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
