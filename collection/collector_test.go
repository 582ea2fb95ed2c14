package collection

import (
	"math"
	"testing"
)

func TestBoundedCollectorRejectsBeyondMaxDistance(t *testing.T) {
	c := NewBoundedCollector[string](2, 5, nil)
	if c.Offer("far", 10) {
		t.Fatalf("expected offer beyond maxDistance to be rejected")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty collector")
	}
}

func TestBoundedCollectorFillsThenEvictsWorst(t *testing.T) {
	c := NewBoundedCollector[string](2, math.Inf(1), nil)
	c.Offer("a", 10)
	c.Offer("b", 5)
	if c.Len() != 2 {
		t.Fatalf("expected 2 stored, got %d", c.Len())
	}
	if c.WorstDistance() != 10 {
		t.Fatalf("expected worst distance 10, got %v", c.WorstDistance())
	}

	// Closer than current worst: evicts "a".
	if !c.Offer("c", 3) {
		t.Fatalf("expected closer candidate to be admitted")
	}
	if c.WorstDistance() != 5 {
		t.Fatalf("expected worst distance 5 after eviction, got %v", c.WorstDistance())
	}

	// Farther than current worst: rejected.
	if c.Offer("d", 100) {
		t.Fatalf("expected farther candidate to be rejected")
	}

	got := c.ToSortedList()
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Fatalf("expected [c b], got %v", got)
	}
}

func TestBoundedCollectorWorstDistanceInfiniteWhenEmpty(t *testing.T) {
	c := NewBoundedCollector[int](3, math.Inf(1), nil)
	if !math.IsInf(c.WorstDistance(), 1) {
		t.Fatalf("expected +Inf, got %v", c.WorstDistance())
	}
}

func TestBoundedCollectorFilterAppliesBeforeAdmission(t *testing.T) {
	onlyEven := func(v int) bool { return v%2 == 0 }
	c := NewBoundedCollector[int](5, math.Inf(1), onlyEven)
	c.Offer(1, 1)
	c.Offer(2, 2)
	c.Offer(3, 3)
	c.Offer(4, 4)

	got := c.ToSortedList()
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("expected [2 4], got %v", got)
	}
}

func TestBoundedCollectorToSortedListDoesNotDrain(t *testing.T) {
	c := NewBoundedCollector[int](3, math.Inf(1), nil)
	c.Offer(3, 3)
	c.Offer(1, 1)
	c.Offer(2, 2)

	first := c.ToSortedList()
	second := c.ToSortedList()
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected ToSortedList to be non-destructive, got %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected repeated calls to agree, got %v then %v", first, second)
		}
	}
}

func TestBoundedCollectorZeroCapacityRejectsEverything(t *testing.T) {
	c := NewBoundedCollector[int](0, math.Inf(1), nil)
	if c.Offer(1, 0) {
		t.Fatalf("expected zero-capacity collector to reject every offer")
	}
}
