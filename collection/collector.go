// Package collection holds the bounded result collector used by k-NN
// search: a fixed-capacity structure keyed by distance that tracks the
// worst currently-accepted candidate so search can prune against it.
package collection

import (
	"math"
	"sort"
)

type item[E any] struct {
	value    E
	distance float64
}

// BoundedCollector is a fixed-capacity max-priority structure keyed by
// distance to an (implicit, caller-supplied) query point, with an optional
// maxDistance ceiling and an optional admission filter. It is the sole
// authority on the "pruning distance" used by k-NN search.
//
// Grounded on the teacher's collection.ItemQueue, which is also a bounded,
// priority-ordered structure exposing WorstPriority/Len - adapted here to
// also carry maxDistance and a filter predicate, and to expose a
// non-destructive sorted readout instead of a destructive Pop loop.
type BoundedCollector[E any] struct {
	capacity    int
	maxDistance float64
	filter      func(E) bool
	items       []item[E] // kept sorted ascending by distance
}

// NewBoundedCollector creates a collector holding at most capacity
// elements. maxDistance bounds acceptance (pass math.Inf(1) for no bound);
// filter, if non-nil, is consulted before capacity or distance.
func NewBoundedCollector[E any](capacity int, maxDistance float64, filter func(E) bool) *BoundedCollector[E] {
	return &BoundedCollector[E]{
		capacity:    capacity,
		maxDistance: maxDistance,
		filter:      filter,
	}
}

// Offer tries to admit e at the given distance, per the spec's three-step
// rule: admit while under capacity and within maxDistance; once full,
// evict the current worst only if e is strictly closer; otherwise reject.
// All of this is conditioned on the filter accepting e first.
func (c *BoundedCollector[E]) Offer(e E, distance float64) bool {
	if c.filter != nil && !c.filter(e) {
		return false
	}
	if c.capacity <= 0 {
		return false
	}

	if len(c.items) < c.capacity {
		if distance > c.maxDistance {
			return false
		}
		c.insert(e, distance)
		return true
	}

	if distance < c.items[len(c.items)-1].distance {
		c.items = c.items[:len(c.items)-1]
		c.insert(e, distance)
		return true
	}

	return false
}

func (c *BoundedCollector[E]) insert(e E, distance float64) {
	idx := sort.Search(len(c.items), func(i int) bool {
		return c.items[i].distance > distance
	})
	c.items = append(c.items, item[E]{})
	copy(c.items[idx+1:], c.items[idx:])
	c.items[idx] = item[E]{value: e, distance: distance}
}

// WorstDistance returns the distance of the most distant stored element
// once the collector is full, or +Inf while it holds fewer than capacity
// elements (so an unvisited subtree is always visited until the collector
// fills up).
func (c *BoundedCollector[E]) WorstDistance() float64 {
	if len(c.items) == 0 || len(c.items) < c.capacity {
		return math.Inf(1)
	}
	return c.items[len(c.items)-1].distance
}

// Len reports how many elements are currently stored.
func (c *BoundedCollector[E]) Len() int {
	return len(c.items)
}

// ToSortedList returns the stored elements in ascending distance order.
// It does not modify the collector - unlike some historical versions of
// the reference this is grounded on, which drained it (see spec §9).
func (c *BoundedCollector[E]) ToSortedList() []E {
	out := make([]E, len(c.items))
	for i, it := range c.items {
		out[i] = it.value
	}
	return out
}
