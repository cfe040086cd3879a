package optimize

import (
	"cmp"
	"errors"
	"slices"

	"github.com/matzehuels/starroute/pkg/dag"
)

var (
	// ErrInsufficientItems is returned by [Augmenter.Fill] when the sorted
	// star list runs out before the target unit count is reached. The
	// optimizer treats it as a rejected partition.
	ErrInsufficientItems = errors.New("insufficient remaining stars")

	// ErrNoValidRoute is returned by [Optimize] when no partition produced a
	// complete route.
	ErrNoValidRoute = errors.New("no valid route possible")

	// ErrRootHasAncestors is returned when the root star requires another
	// star. Every partition starts with the root decided, so the root must
	// not depend on anything.
	ErrRootHasAncestors = errors.New("root star has prerequisites")

	// ErrInvalidProblem is returned by [Optimize] for a non-positive target
	// or a negative quota.
	ErrInvalidProblem = errors.New("invalid problem")
)

// Cost is the time, in seconds, one star takes.
type Cost struct {
	Seconds float64 `json:"seconds"`
	ID      string  `json:"id"`
}

// sortCosts orders costs by ascending time, breaking ties by ID.
func sortCosts(costs []Cost) {
	slices.SortFunc(costs, func(a, b Cost) int {
		if c := cmp.Compare(a.Seconds, b.Seconds); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Problem holds everything needed for one optimization request.
// Stars without an entry in Costs are ineligible.
type Problem struct {
	Costs      []Cost            // recorded time per eligible star; 100 coin stars carry their full time
	Target     int               // units the route must contain
	Quota      int               // maximum units from Restricted locations
	Restricted []string          // locations counted against Quota
	Root       string            // star every route must contain (or its alternate)
	Graph      dag.Adjacency     // prerequisite → dependents
	Alternates map[string]string // base star → 100 coin alternate
	Locations  map[string]string // star → location
	Thresholds map[string]int    // star → units required before it can be added
}

// doubled returns the set of 100 coin star IDs.
func (p Problem) doubled() dag.Set {
	s := make(dag.Set, len(p.Alternates))
	for _, alt := range p.Alternates {
		s.Add(alt)
	}
	return s
}

// Selected is one star of a route.
type Selected struct {
	ID       string  `json:"id"`
	Weight   int     `json:"weight"`    // units the star contributes
	UnitTime float64 `json:"unit_time"` // seconds charged per unit
}

// Result is the best route found for a [Problem].
type Result struct {
	Stars      []Selected `json:"stars"` // sorted by ID
	Time       float64    `json:"time"`  // Σ Weight × UnitTime
	Units      int        `json:"units"`
	Partitions int        `json:"partitions"` // partitions examined
	Feasible   int        `json:"feasible"`   // partitions that completed a route
}

// IDs returns the star IDs of the route in ascending order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Stars))
	for i, s := range r.Stars {
		ids[i] = s.ID
	}
	return ids
}
