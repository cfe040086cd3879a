// Package optimize finds minimum-time star routes.
//
// # Overview
//
// A route is a set of stars whose unit count equals a target (70 for the
// classic category). Ordinary stars count once; a 100 coin star that replaces
// a base star counts twice and is charged half its recorded time per unit.
// The optimizer minimizes the total time subject to:
//
//   - Prerequisites: a star can only be taken if every star it requires (or
//     that star's 100 coin alternate) is taken too.
//   - Exclusivity: a base star and its 100 coin alternate are never both
//     taken.
//   - Quota: at most Quota units come from the restricted locations.
//   - Thresholds: an ordinary star is only added once the route already
//     holds its required number of units.
//
// # Algorithm
//
// Special stars are those with dependents and those with an eligible 100
// coin alternate. [EachPartition] enumerates every consistent way to split
// them into included and excluded sets; the root star (or its alternate) is
// always included. For each partition an [Augmenter] fills the route twice by
// ascending unit time: first from unrestricted locations only, leaving room
// for exactly Quota restricted units, then from anywhere up to the target.
// The cheapest completed route wins.
//
// # Usage
//
//	res, err := optimize.Optimize(ctx, optimize.Problem{
//	    Costs:      costs,
//	    Target:     70,
//	    Quota:      70,
//	    Restricted: []string{"upstairs", "tippy"},
//	    Root:       "DDD1",
//	    Graph:      dag.FromPrerequisites(prereqs),
//	    Alternates: alternates,
//	    Locations:  locations,
//	    Thresholds: thresholds,
//	}, optimize.Options{})
//	if errors.Is(err, optimize.ErrNoValidRoute) {
//	    // not enough eligible stars
//	}
//
// # Concurrency
//
// [Optimize] keeps no state between calls and may run concurrently on
// independent problems. Descendant lookups are memoized per call.
package optimize
