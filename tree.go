// Package vptree implements a vantage-point tree: an in-memory metric-space
// index over a generic element type, with bulk load, incremental mutation,
// and branch-and-bound nearest-neighbor and radius search. The tree is not
// thread-safe; see the geosync subpackage for a readers/writer wrapper.
package vptree

import (
	"fmt"
	"math"
	"sort"

	"github.com/ar90n-labs/vptree/collection"
)

// Tree owns a single root node, an immutable bin size, and the distance
// function used for every comparison. It exclusively owns every node
// reachable from its root; there is no sharing between trees.
type Tree[E comparable] struct {
	root    *Node[E]
	binSize int
	dist    DistanceFunc[E]
}

// New creates an empty tree with the given bin size and distance function.
func New[E comparable](binSize int, dist DistanceFunc[E]) (*Tree[E], error) {
	if binSize < 1 {
		return nil, fmt.Errorf("bin size %d: %w", binSize, ErrInvalidArgument)
	}
	if dist == nil {
		return nil, fmt.Errorf("distance function is required: %w", ErrInvalidArgument)
	}
	return &Tree[E]{root: newLeaf[E](), binSize: binSize, dist: dist}, nil
}

// NewFromSlice bulk-loads a tree from an initial collection. An empty
// collection behaves exactly like New.
func NewFromSlice[E comparable](points []E, binSize int, dist DistanceFunc[E]) (*Tree[E], error) {
	t, err := New(binSize, dist)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		t.root = buildFromRange(points, binSize, dist)
	}
	return t, nil
}

// Add inserts e into the tree. Mutation always changes the tree, so Add
// always returns true.
func (t *Tree[E]) Add(e E) bool {
	t.root.add(e, t.dist, t.binSize)
	return true
}

// AddAll inserts every element of es, deferring partitioning until every
// element has been added so a leaf that will receive more points isn't
// repartitioned on every single insert.
func (t *Tree[E]) AddAll(es []E) bool {
	if len(es) == 0 {
		return false
	}

	touched := make(map[*Node[E]]struct{})
	for _, e := range es {
		t.root.addOne(e, t.dist, touched)
	}
	for leaf := range touched {
		if len(leaf.points) > t.binSize {
			_ = leaf.partition(t.dist, t.binSize)
		}
	}
	return true
}

// Clear replaces the root with a fresh empty leaf in O(1).
func (t *Tree[E]) Clear() {
	t.root = newLeaf[E]()
}

// Contains reports whether o is stored in the tree.
func (t *Tree[E]) Contains(o E) bool {
	return t.root.contains(o, t.dist)
}

// ContainsAll reports whether every element of os is stored in the tree.
func (t *Tree[E]) ContainsAll(os []E) bool {
	for _, o := range os {
		if !t.Contains(o) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the tree holds no elements.
func (t *Tree[E]) IsEmpty() bool {
	return t.Size() == 0
}

// Size sums the size of every leaf bag; it is O(n) over the leaves.
func (t *Tree[E]) Size() int {
	var leaves []*Node[E]
	t.root.gatherLeafNodes(&leaves)
	n := 0
	for _, l := range leaves {
		n += len(l.points)
	}
	return n
}

// ToArray collects every stored element via a depth-first walk; order is
// unspecified.
func (t *Tree[E]) ToArray() []E {
	var leaves []*Node[E]
	t.root.gatherLeafNodes(&leaves)
	out := make([]E, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.points...)
	}
	return out
}

// Remove deletes the first stored element equal to o, pruning the tree's
// structure if that empties a non-root leaf. It reports whether an
// element was actually removed.
func (t *Tree[E]) Remove(o E) bool {
	var stack []*Node[E]
	t.root.findNodeContainingPoint(o, t.dist, &stack)
	leaf := stack[len(stack)-1]

	removed, _ := leaf.remove(o)
	if !removed {
		return false
	}
	if len(leaf.points) == 0 && leaf != t.root {
		pruneFrom(stack)
	}
	return true
}

// RemoveAll removes every occurrence of every element of os, deferring
// pruning until every removal has run so an ancestor that will itself be
// absorbed isn't absorbed twice.
func (t *Tree[E]) RemoveAll(os []E) bool {
	if len(os) == 0 {
		return false
	}

	emptied := make(map[*Node[E]]struct{})
	removedAny := false
	for _, o := range os {
		for {
			var stack []*Node[E]
			t.root.findNodeContainingPoint(o, t.dist, &stack)
			leaf := stack[len(stack)-1]

			removed, _ := leaf.remove(o)
			if !removed {
				break
			}
			removedAny = true
			if len(leaf.points) == 0 && leaf != t.root {
				emptied[leaf] = struct{}{}
			}
		}
	}

	// Drop every emptied node that has another emptied node as an
	// ancestor: that ancestor's prune will absorb it anyway, and
	// pruning it first would just be redone when the ancestor is
	// processed.
	var toPrune []*Node[E]
	for n := range emptied {
		subsumed := false
		for m := range emptied {
			if m == n {
				continue
			}
			if isAncestorOfNode(t.root, m, n, t.dist) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			toPrune = append(toPrune, n)
		}
	}

	for _, n := range toPrune {
		var stack []*Node[E]
		t.root.findNodeContainingPoint(n.center, t.dist, &stack)
		merged := pruneFrom(stack)
		if merged != nil && len(merged.points) > t.binSize {
			_ = merged.partition(t.dist, t.binSize)
		}
	}

	return removedAny
}

// RetainAll removes every stored element not present in os.
func (t *Tree[E]) RetainAll(os []E) bool {
	keep := make(map[E]struct{}, len(os))
	for _, o := range os {
		keep[o] = struct{}{}
	}

	var drop []E
	it := t.Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		if _, ok := keep[e]; !ok {
			drop = append(drop, e)
		}
	}
	return t.RemoveAll(drop)
}

// MovePoint changes the stored location of old to replacement. If both
// locations route to the same leaf, the bag entry is swapped in place with
// no structural change; otherwise old is removed and replacement is added.
func (t *Tree[E]) MovePoint(old, replacement E) error {
	var oldStack, newStack []*Node[E]
	t.root.findNodeContainingPoint(old, t.dist, &oldStack)
	t.root.findNodeContainingPoint(replacement, t.dist, &newStack)

	oldLeaf := oldStack[len(oldStack)-1]
	newLeaf := newStack[len(newStack)-1]

	if oldLeaf == newLeaf {
		for i, p := range oldLeaf.points {
			if p == old {
				oldLeaf.points[i] = replacement
				return nil
			}
		}
		return fmt.Errorf("point not found: %w", ErrInvalidArgument)
	}

	if !t.Remove(old) {
		return fmt.Errorf("point not found: %w", ErrInvalidArgument)
	}
	t.Add(replacement)
	return nil
}

// pruneFrom walks up from the just-emptied leaf at the end of stack,
// absorbing each ancestor's children in turn, and stops at the first
// ancestor that is still non-empty after absorbing (or at the root). It
// returns the last node it absorbed, or nil if stack held only the root.
func pruneFrom[E comparable](stack []*Node[E]) *Node[E] {
	var last *Node[E]
	for i := len(stack) - 2; i >= 0; i-- {
		ancestor := stack[i]
		if ancestor.kind != internalKind {
			// Already turned into a leaf by an overlapping prune
			// earlier in this batch (a sibling emptied leaf whose
			// absorption reached the same ancestor).
			break
		}
		_ = ancestor.absorbChildren()
		last = ancestor
		if len(ancestor.points) > 0 {
			break
		}
	}
	return last
}

// knnConfig holds the optional bounds for a k-NN search.
type knnConfig[E any] struct {
	maxDistance float64
	filter      func(E) bool
}

// KNNOption configures GetNearestNeighbors and GetNearestNeighbor.
type KNNOption[E any] func(*knnConfig[E])

// WithMaxDistance bounds accepted k-NN results to within d of the query.
func WithMaxDistance[E any](d float64) KNNOption[E] {
	return func(c *knnConfig[E]) { c.maxDistance = d }
}

// WithKNNFilter restricts k-NN results to elements filter accepts.
func WithKNNFilter[E any](filter func(E) bool) KNNOption[E] {
	return func(c *knnConfig[E]) { c.filter = filter }
}

// GetNearestNeighbors returns up to k elements closest to q, ascending by
// distance, honoring any supplied options.
func (t *Tree[E]) GetNearestNeighbors(q E, k int, opts ...KNNOption[E]) ([]E, error) {
	if k < 0 {
		return nil, fmt.Errorf("k %d: %w", k, ErrInvalidArgument)
	}

	cfg := knnConfig[E]{maxDistance: math.Inf(1)}
	for _, opt := range opts {
		opt(&cfg)
	}

	collector := collection.NewBoundedCollector[E](k, cfg.maxDistance, cfg.filter)
	t.root.searchKNN(q, t.dist, collector)
	return collector.ToSortedList(), nil
}

// GetNearestNeighbor returns the single closest element to q, or ok=false
// if none qualifies.
func (t *Tree[E]) GetNearestNeighbor(q E, opts ...KNNOption[E]) (result E, ok bool, err error) {
	results, err := t.GetNearestNeighbors(q, 1, opts...)
	if err != nil {
		return result, false, err
	}
	if len(results) == 0 {
		return result, false, nil
	}
	return results[0], true, nil
}

// radiusConfig holds the optional filter for a radius query.
type radiusConfig[E any] struct {
	filter func(E) bool
}

// RadiusOption configures GetAllWithinDistance.
type RadiusOption[E any] func(*radiusConfig[E])

// WithRadiusFilter restricts radius-query results to elements filter
// accepts.
func WithRadiusFilter[E any](filter func(E) bool) RadiusOption[E] {
	return func(c *radiusConfig[E]) { c.filter = filter }
}

// GetAllWithinDistance returns every element within r of q, ascending by
// distance.
func (t *Tree[E]) GetAllWithinDistance(q E, r float64, opts ...RadiusOption[E]) ([]E, error) {
	if r < 0 {
		return nil, fmt.Errorf("radius %v: %w", r, ErrInvalidArgument)
	}

	cfg := radiusConfig[E]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var out []E
	t.root.searchRadius(q, r, t.dist, cfg.filter, &out)
	sort.Slice(out, func(i, j int) bool {
		return t.dist(q, out[i]) < t.dist(q, out[j])
	})
	return out, nil
}
