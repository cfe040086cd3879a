// Package dag provides the prerequisite graph primitives used by the route
// optimizer.
//
// # Overview
//
// Prerequisites are recorded the way users write them: each star lists the
// stars it requires. The optimizer needs the opposite direction, so
// [FromPrerequisites] inverts the mapping into an [Adjacency] that maps each
// prerequisite to the stars depending on it. A prerequisite without any
// dependents is never a key.
//
// # Ordering
//
// [TopologicalOrder] uses Kahn's algorithm to list every key of an
// [Adjacency] with ancestors ahead of their descendants. The partition
// generator relies on that order: a star's inclusion is decided before any of
// its descendants is visited.
//
// # Descendants
//
// A [DescendantFinder] returns the transitive dependents of a star together
// with the 100 coin alternate of each dependent. Results are memoized inside
// the finder, so a finder must not outlive the graph it was built from.
// Create one per optimization request:
//
//	finder := dag.NewDescendantFinder(g, alternates)
//	excluded := finder.Of("DDD1")
//
// # Validation
//
// The optimizer assumes an acyclic graph and does not check it. Callers that
// load prerequisites from user input run [DetectCycle] first.
//
// # Rendering
//
// [ToDOT] and [RenderSVG] turn an [Adjacency] into a Graphviz drawing for the
// "graph" command.
package dag
