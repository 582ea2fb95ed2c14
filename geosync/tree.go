// Package geosync wraps vptree.Tree behind a readers/writer lock, exactly
// as spec §5 specifies it: it adds no retry, backoff, or cancellation
// behavior of its own - it merely serializes every public operation behind
// sync.RWMutex, matching the lock table in §5.
package geosync

import (
	"sync"

	"github.com/ar90n-labs/vptree"
)

// Tree is a concurrency-safe wrapper around *vptree.Tree[E]: any number of
// quiescent-state readers may run under the read lock, and the single
// mutator holds the write lock exclusively. Grounded on the teacher's
// sync.WaitGroup use in flatIndex.SearchChannel for the plain (non-pool)
// goroutine-coordination idiom, rather than the conc/pool idiom used for
// the one place this module has genuine parallel work (bulk build).
type Tree[E comparable] struct {
	mu    sync.RWMutex
	inner *vptree.Tree[E]
}

// New creates an empty concurrency-safe tree.
func New[E comparable](binSize int, dist vptree.DistanceFunc[E]) (*Tree[E], error) {
	inner, err := vptree.New(binSize, dist)
	if err != nil {
		return nil, err
	}
	return &Tree[E]{inner: inner}, nil
}

// NewFromSlice bulk-loads a concurrency-safe tree.
func NewFromSlice[E comparable](points []E, binSize int, dist vptree.DistanceFunc[E]) (*Tree[E], error) {
	inner, err := vptree.NewFromSlice(points, binSize, dist)
	if err != nil {
		return nil, err
	}
	return &Tree[E]{inner: inner}, nil
}

// Add inserts e under the write lock.
func (t *Tree[E]) Add(e E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.Add(e)
}

// AddAll inserts every element of es under the write lock.
func (t *Tree[E]) AddAll(es []E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.AddAll(es)
}

// Clear empties the tree under the write lock.
func (t *Tree[E]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inner.Clear()
}

// Remove deletes o under the write lock.
func (t *Tree[E]) Remove(o E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.Remove(o)
}

// RemoveAll deletes every element of os under the write lock.
func (t *Tree[E]) RemoveAll(os []E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.RemoveAll(os)
}

// RetainAll removes every stored element not in os under the write lock.
func (t *Tree[E]) RetainAll(os []E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.RetainAll(os)
}

// MovePoint relocates old to replacement under the write lock.
func (t *Tree[E]) MovePoint(old, replacement E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inner.MovePoint(old, replacement)
}

// Contains reports whether o is stored, under the read lock.
func (t *Tree[E]) Contains(o E) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.Contains(o)
}

// ContainsAll reports whether every element of os is stored, under the
// read lock.
func (t *Tree[E]) ContainsAll(os []E) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.ContainsAll(os)
}

// IsEmpty reports whether the tree holds no elements, under the read lock.
func (t *Tree[E]) IsEmpty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.IsEmpty()
}

// Size returns the element count, under the read lock.
func (t *Tree[E]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.Size()
}

// ToArray collects every stored element, under the read lock.
func (t *Tree[E]) ToArray() []E {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.ToArray()
}

// Iterator snapshots the current leaves under the read lock and returns an
// iterator over them; like the unwrapped tree's iterator, it is invalidated
// by any later mutation.
func (t *Tree[E]) Iterator() *vptree.Iterator[E] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.Iterator()
}

// GetNearestNeighbors runs a k-NN search under the read lock.
func (t *Tree[E]) GetNearestNeighbors(q E, k int, opts ...vptree.KNNOption[E]) ([]E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.GetNearestNeighbors(q, k, opts...)
}

// GetNearestNeighbor runs a 1-NN search under the read lock.
func (t *Tree[E]) GetNearestNeighbor(q E, opts ...vptree.KNNOption[E]) (E, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.GetNearestNeighbor(q, opts...)
}

// GetAllWithinDistance runs a radius search under the read lock.
func (t *Tree[E]) GetAllWithinDistance(q E, r float64, opts ...vptree.RadiusOption[E]) ([]E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inner.GetAllWithinDistance(q, r, opts...)
}
