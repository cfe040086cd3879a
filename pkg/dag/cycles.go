package dag

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrGraphHasCycle is returned by [DetectCycle] when a star transitively
// requires itself.
var ErrGraphHasCycle = errors.New("prerequisites contain a cycle")

// DetectCycle reports the first prerequisite cycle found in prereqs, which
// maps each star to the stars it requires. It returns the cycle path (first
// and last element equal) wrapped in ErrGraphHasCycle, or nil, nil if the
// graph is acyclic.
//
// Cycles are detected using depth-first search with white/gray/black
// coloring. Stars are visited in sorted order so the reported cycle is
// deterministic.
func DetectCycle(prereqs map[string][]string) ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var path, cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, p := range prereqs[id] {
			switch color[p] {
			case white:
				if dfs(p) {
					return true
				}
			case gray:
				start := slices.Index(path, p)
				cycle = append(slices.Clone(path[start:]), p)
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, id := range slices.Sorted(maps.Keys(prereqs)) {
		if color[id] == white && dfs(id) {
			return cycle, fmt.Errorf("%w: %s", ErrGraphHasCycle, strings.Join(cycle, " -> "))
		}
	}
	return nil, nil
}
