package optimize

import (
	"container/heap"

	"github.com/matzehuels/starroute/pkg/dag"
)

// Fill is the running state of a route while it is being completed.
type Fill struct {
	Time     float64  // seconds accumulated so far
	Units    int      // units accumulated so far
	Included dag.Set  // stars in the route
	Order    []string // stars added by the augmenter, in insertion order
}

// Augmenter completes partial routes with the cheapest eligible stars.
// It is built once per request and reused for every partition.
type Augmenter struct {
	sorted     []Cost
	doubled    dag.Set
	locations  map[string]string
	thresholds map[string]int
}

// NewAugmenter creates an augmenter over sorted, which must be ordered by
// ascending unit time. doubled holds the stars that count as two units.
func NewAugmenter(sorted []Cost, doubled dag.Set, locations map[string]string, thresholds map[string]int) *Augmenter {
	return &Augmenter{
		sorted:     sorted,
		doubled:    doubled,
		locations:  locations,
		thresholds: thresholds,
	}
}

// Weight returns the number of units id contributes.
func (a *Augmenter) Weight(id string) int {
	if a.doubled.Has(id) {
		return 2
	}
	return 1
}

// Fill adds stars to start until it holds exactly target units.
//
// Candidates are taken by ascending unit time from stars that are neither
// included nor excluded and whose location passes allowed. A candidate whose
// threshold is above the current unit count is parked on a queue ordered by
// threshold; on every step the queue is served first once its smallest
// threshold is met. The scan position only moves forward within a call.
// Stars that would push the count past target are skipped.
//
// start is not modified. If the sorted list runs out first, Fill returns
// [ErrInsufficientItems] and a zero Fill.
func (a *Augmenter) Fill(start Fill, target int, allowed func(location string) bool, excluded dag.Set) (Fill, error) {
	out := Fill{
		Time:     start.Time,
		Units:    start.Units,
		Included: start.Included.Clone(),
		Order:    append([]string(nil), start.Order...),
	}

	var pending stagedQueue
	cursor := 0

	for out.Units < target {
		var next *Cost

		for pending.Len() > 0 && pending[0].threshold <= out.Units {
			s := heap.Pop(&pending).(staged)
			if out.Units+a.Weight(s.cost.ID) <= target {
				next = &s.cost
				break
			}
		}

		for next == nil {
			if cursor >= len(a.sorted) {
				return Fill{}, ErrInsufficientItems
			}
			c := a.sorted[cursor]
			cursor++

			if out.Included.Has(c.ID) || excluded.Has(c.ID) || !allowed(a.locations[c.ID]) {
				continue
			}
			if out.Units+a.Weight(c.ID) > target {
				continue
			}
			if t := a.thresholds[c.ID]; t > out.Units {
				heap.Push(&pending, staged{threshold: t, seq: cursor, cost: c})
				continue
			}
			next = &c
		}

		w := a.Weight(next.ID)
		out.Included.Add(next.ID)
		out.Order = append(out.Order, next.ID)
		out.Time += float64(w) * next.Seconds
		out.Units += w
	}
	return out, nil
}

// staged is a star waiting for the route to reach its threshold.
type staged struct {
	threshold int
	seq       int // discovery order, which is also time order
	cost      Cost
}

// stagedQueue is a min-heap of staged stars keyed by threshold, then
// discovery order.
type stagedQueue []staged

func (q stagedQueue) Len() int { return len(q) }

func (q stagedQueue) Less(i, j int) bool {
	if q[i].threshold != q[j].threshold {
		return q[i].threshold < q[j].threshold
	}
	return q[i].seq < q[j].seq
}

func (q stagedQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *stagedQueue) Push(x any) { *q = append(*q, x.(staged)) }

func (q *stagedQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
