package dag

import (
	"slices"
	"testing"
)

func TestTopologicalOrder(t *testing.T) {
	tests := []struct {
		name    string
		prereqs map[string][]string
		want    int
	}{
		{"empty", nil, 0},
		{"chain", map[string][]string{"B": {"A"}, "C": {"B"}, "D": {"C"}}, 3},
		{"diamond", map[string][]string{"B": {"A"}, "C": {"A"}, "D": {"B", "C"}, "E": {"D"}}, 4},
		{"forest", map[string][]string{"B": {"A"}, "Y": {"X"}, "Z": {"Y"}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromPrerequisites(tt.prereqs)
			order := TopologicalOrder(g)

			if len(order) != tt.want {
				t.Fatalf("len(order) = %d, want %d (%v)", len(order), tt.want, order)
			}
			for k := range g {
				if !slices.Contains(order, k) {
					t.Errorf("key %s missing from order %v", k, order)
				}
			}
			for dependent, prereqs := range tt.prereqs {
				di := slices.Index(order, dependent)
				if di < 0 {
					continue
				}
				for _, p := range prereqs {
					if pi := slices.Index(order, p); pi > di {
						t.Errorf("%s ordered after dependent %s: %v", p, dependent, order)
					}
				}
			}
		})
	}
}

func TestTopologicalOrderOmitsLeaves(t *testing.T) {
	g := FromPrerequisites(map[string][]string{"B": {"A"}})
	if got := TopologicalOrder(g); !slices.Equal(got, []string{"A"}) {
		t.Errorf("TopologicalOrder() = %v, want [A]", got)
	}
}

func TestTopologicalOrderDeterministic(t *testing.T) {
	g := FromPrerequisites(map[string][]string{"C": {"A"}, "D": {"B"}, "E": {"C", "D"}, "F": {"E"}})
	first := TopologicalOrder(g)
	for range 10 {
		if got := TopologicalOrder(g); !slices.Equal(got, first) {
			t.Fatalf("TopologicalOrder() = %v, want %v", got, first)
		}
	}
}
