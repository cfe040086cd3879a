package optimize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/starroute/pkg/dag"
)

func anywhere(string) bool { return true }

func TestAugmenterFillThresholds(t *testing.T) {
	sorted := []Cost{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}}
	thresholds := map[string]int{"a": 2}
	aug := NewAugmenter(sorted, nil, nil, thresholds)

	got, err := aug.Fill(Fill{Included: dag.NewSet()}, 3, anywhere, nil)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b", "c", "a"}, got.Order); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
	if got.Units != 3 || got.Time != 6 {
		t.Errorf("Fill() = %d units / %v s, want 3 / 6", got.Units, got.Time)
	}
}

func TestAugmenterFillStartState(t *testing.T) {
	sorted := []Cost{{1, "a"}, {2, "b"}, {3, "c"}}
	aug := NewAugmenter(sorted, nil, nil, nil)
	start := Fill{Time: 10, Units: 1, Included: dag.NewSet("a")}

	got, err := aug.Fill(start, 3, anywhere, nil)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got.Included.Sorted()); diff != "" {
		t.Errorf("Included mismatch (-want +got):\n%s", diff)
	}
	if got.Time != 15 {
		t.Errorf("Time = %v, want 15", got.Time)
	}
	if len(start.Included) != 1 {
		t.Errorf("start was modified: %v", start.Included.Sorted())
	}
}

func TestAugmenterFillFilters(t *testing.T) {
	sorted := []Cost{{1, "up1"}, {2, "x"}, {3, "low1"}, {4, "low2"}, {5, "low3"}}
	locations := map[string]string{"up1": "upstairs", "x": "lobby", "low1": "lobby", "low2": "lobby", "low3": "lobby"}
	aug := NewAugmenter(sorted, nil, locations, nil)
	lobbyOnly := func(loc string) bool { return loc == "lobby" }

	got, err := aug.Fill(Fill{Included: dag.NewSet()}, 2, lobbyOnly, dag.NewSet("x"))
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if diff := cmp.Diff([]string{"low1", "low2"}, got.Order); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestAugmenterFillInsufficient(t *testing.T) {
	sorted := []Cost{{1, "a"}, {2, "b"}, {3, "c"}}
	thresholds := map[string]int{"c": 5}
	aug := NewAugmenter(sorted, nil, nil, thresholds)
	start := Fill{Included: dag.NewSet()}

	got, err := aug.Fill(start, 3, anywhere, nil)
	if !errors.Is(err, ErrInsufficientItems) {
		t.Fatalf("Fill() error = %v, want ErrInsufficientItems", err)
	}
	if got.Units != 0 || got.Included != nil {
		t.Errorf("Fill() returned partial state %+v", got)
	}
	if len(start.Included) != 0 {
		t.Errorf("start was modified: %v", start.Included.Sorted())
	}
}

func TestAugmenterFillDoubled(t *testing.T) {
	sorted := []Cost{{1, "a_100"}, {2, "b"}, {3, "c"}}
	aug := NewAugmenter(sorted, dag.NewSet("a_100"), nil, nil)

	t.Run("counts two units", func(t *testing.T) {
		got, err := aug.Fill(Fill{Included: dag.NewSet()}, 3, anywhere, nil)
		if err != nil {
			t.Fatalf("Fill() error = %v", err)
		}
		if diff := cmp.Diff([]string{"a_100", "b"}, got.Order); diff != "" {
			t.Errorf("Order mismatch (-want +got):\n%s", diff)
		}
		if got.Time != 4 {
			t.Errorf("Time = %v, want 4", got.Time)
		}
	})

	t.Run("never overshoots", func(t *testing.T) {
		got, err := aug.Fill(Fill{Included: dag.NewSet()}, 1, anywhere, nil)
		if err != nil {
			t.Fatalf("Fill() error = %v", err)
		}
		if got.Units != 1 || !got.Included.Has("b") {
			t.Errorf("Fill() = %v (%d units), want [b]", got.Order, got.Units)
		}
	})
}

func TestAugmenterFillProperties(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		p := randomProblem(seed)
		for i := range p.Costs {
			p.Thresholds[p.Costs[i].ID] = int(seed+uint64(i)) % 4
		}
		sortCosts(p.Costs)
		aug := NewAugmenter(p.Costs, p.doubled(), p.Locations, p.Thresholds)
		lowOnly := func(loc string) bool { return loc == "low" }

		got, err := aug.Fill(Fill{Included: dag.NewSet()}, p.Target, lowOnly, nil)
		if errors.Is(err, ErrInsufficientItems) {
			continue
		}
		if err != nil {
			t.Fatalf("seed %d: Fill() error = %v", seed, err)
		}

		units := 0
		for _, id := range got.Order {
			if p.Locations[id] != "low" {
				t.Errorf("seed %d: %s from %s added", seed, id, p.Locations[id])
			}
			if th := p.Thresholds[id]; th > units {
				t.Errorf("seed %d: %s added at %d units, threshold %d", seed, id, units, th)
			}
			units += aug.Weight(id)
		}
		if units != p.Target || got.Units != p.Target {
			t.Errorf("seed %d: units = %d/%d, want %d", seed, units, got.Units, p.Target)
		}
	}
}
