package dag

import (
	"maps"
	"slices"
)

// TopologicalOrder returns every key of g ordered so that each prerequisite
// comes before all of its descendants.
//
// The ordering follows Kahn's algorithm. In-degrees are counted for every
// dependent; keys with zero in-degree seed the queue; popping a key
// decrements its dependents, and a dependent that reaches zero is queued only
// if it is itself a key. Stars that are dependents but never prerequisites are
// therefore absent from the result.
//
// Ties between incomparable keys are broken by ID so the result is stable.
// g must be acyclic; keys on a cycle never reach zero in-degree and are left
// out.
func TopologicalOrder(g Adjacency) []string {
	inDegree := make(map[string]int, len(g))
	for _, deps := range g {
		for _, d := range deps {
			inDegree[d]++
		}
	}

	keys := slices.Sorted(maps.Keys(g))
	queue := make([]string, 0, len(keys))
	for _, k := range keys {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}

	order := make([]string, 0, len(keys))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, d := range g[curr] {
			inDegree[d]--
			if inDegree[d] == 0 && g.Has(d) {
				queue = append(queue, d)
			}
		}
	}
	return order
}
