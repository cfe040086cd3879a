package optimize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starroute/pkg/dag"
)

// Options configures an optimization run.
type Options struct {
	// Logger receives debug progress. Defaults to log.Default().
	Logger *log.Logger
}

// Optimize returns the minimum-time route for p.
//
// 100 coin stars have their time halved up front so that each of their two
// units is charged half. Costs are sorted once and shared by every partition.
// For every partition from [EachPartition]:
//
//  1. Skip it if its included stars already exceed Target units or use more
//     than Quota restricted units.
//  2. Fill from unrestricted locations up to Target − Quota + the restricted
//     units already included.
//  3. Fill from any location up to Target.
//
// Partitions that run out of stars are discarded. If none completes,
// Optimize returns [ErrNoValidRoute]. ctx is checked between partitions.
// When several routes tie, the first one found is kept.
func Optimize(ctx context.Context, p Problem, opts Options) (*Result, error) {
	if p.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive, got %d", ErrInvalidProblem, p.Target)
	}
	if p.Quota < 0 {
		return nil, fmt.Errorf("%w: quota must not be negative, got %d", ErrInvalidProblem, p.Quota)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()

	doubled := p.doubled()
	sorted := make([]Cost, len(p.Costs))
	copy(sorted, p.Costs)
	for i := range sorted {
		if doubled.Has(sorted[i].ID) {
			sorted[i].Seconds /= 2
		}
	}
	sortCosts(sorted)

	unitTimes := make(map[string]float64, len(sorted))
	eligible := make(dag.Set, len(sorted))
	for _, c := range sorted {
		unitTimes[c.ID] = c.Seconds
		eligible.Add(c.ID)
	}

	restricted := dag.NewSet(p.Restricted...)
	unrestricted := func(loc string) bool { return !restricted.Has(loc) }
	anywhere := func(string) bool { return true }

	aug := NewAugmenter(sorted, doubled, p.Locations, p.Thresholds)

	best := Fill{Time: math.Inf(1)}
	found := false
	var examined, feasible int

	err := EachPartition(p.Graph, p.Alternates, eligible, p.Root, func(part Partition) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		examined++

		fill := Fill{Included: part.Included}
		restrictedUnits := 0
		for id := range part.Included {
			w := aug.Weight(id)
			fill.Time += float64(w) * unitTimes[id]
			fill.Units += w
			if restricted.Has(p.Locations[id]) {
				restrictedUnits += w
			}
		}
		if fill.Units > p.Target || restrictedUnits > p.Quota {
			return nil
		}

		fill, err := aug.Fill(fill, p.Target-p.Quota+restrictedUnits, unrestricted, part.Excluded)
		if errors.Is(err, ErrInsufficientItems) {
			return nil
		}
		if err != nil {
			return err
		}
		fill, err = aug.Fill(fill, p.Target, anywhere, part.Excluded)
		if errors.Is(err, ErrInsufficientItems) {
			return nil
		}
		if err != nil {
			return err
		}

		feasible++
		if fill.Time < best.Time {
			best = fill
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("evaluated partitions",
		"partitions", examined,
		"feasible", feasible,
		"duration", time.Since(start))

	if !found {
		return nil, fmt.Errorf("%w: unable to form a %d star route from %d eligible stars",
			ErrNoValidRoute, p.Target, len(sorted))
	}

	res := &Result{
		Time:       best.Time,
		Units:      best.Units,
		Partitions: examined,
		Feasible:   feasible,
	}
	for _, id := range best.Included.Sorted() {
		res.Stars = append(res.Stars, Selected{ID: id, Weight: aug.Weight(id), UnitTime: unitTimes[id]})
	}
	return res, nil
}
