package vptree

import "errors"

// Sentinel errors returned by the public API. Wrap these with fmt.Errorf's
// %w at the call site when more context is useful; callers should match
// against these with errors.Is.
var (
	// ErrInvalidArgument is returned for InvalidArgument conditions: a
	// bin size below 1, a negative radius, or a missing distance function.
	ErrInvalidArgument = errors.New("vptree: invalid argument")

	// ErrIllegalState is returned when an operation is applied to the
	// wrong node variant: reading a leaf's threshold, reading an
	// internal node's point bag, removing from a non-leaf, or absorbing
	// children into a leaf.
	ErrIllegalState = errors.New("vptree: illegal state")

	// ErrIteratorExhausted is returned by Iterator.Next once the
	// iterator has no further elements.
	ErrIteratorExhausted = errors.New("vptree: iterator exhausted")
)

// errCannotPartition signals that the partition algorithm could not find a
// viable threshold (CannotPartition in the spec). It never crosses a
// package boundary: every caller inside this package catches it and leaves
// the node as an overloaded leaf.
var errCannotPartition = errors.New("vptree: cannot partition")
