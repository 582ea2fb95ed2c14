package vptree

import "github.com/ar90n-labs/vptree/collection"

// searchKNN offers every point within range of the query to collector,
// pruning subtrees whose minimum possible distance to q exceeds the
// collector's current worst-accepted distance. The inequality used to
// decide whether to visit the unvisited child is intentionally asymmetric
// (strict on the inside-first branch, non-strict on the outside-first
// branch) to match the node's own `<=` boundary rule; see spec §9.
func (n *Node[E]) searchKNN(q E, dist DistanceFunc[E], collector *collection.BoundedCollector[E]) {
	if n.kind == leafKind {
		for _, p := range n.points {
			collector.Offer(p, dist(q, p))
		}
		return
	}

	delta := dist(q, n.center)
	if delta <= n.threshold {
		n.inside.searchKNN(q, dist, collector)
		if collector.WorstDistance() > n.threshold-delta {
			n.outside.searchKNN(q, dist, collector)
		}
	} else {
		n.outside.searchKNN(q, dist, collector)
		if collector.WorstDistance() >= delta-n.threshold {
			n.inside.searchKNN(q, dist, collector)
		}
	}
}

// searchRadius appends every point within r of q that passes filter. Both
// children may be visited: the two tests are independent and either or
// both may hold.
func (n *Node[E]) searchRadius(q E, r float64, dist DistanceFunc[E], filter func(E) bool, out *[]E) {
	if n.kind == leafKind {
		for _, p := range n.points {
			if filter != nil && !filter(p) {
				continue
			}
			if dist(q, p) <= r {
				*out = append(*out, p)
			}
		}
		return
	}

	delta := dist(q, n.center)
	if delta <= n.threshold+r {
		n.inside.searchRadius(q, r, dist, filter, out)
	}
	if delta+r > n.threshold {
		n.outside.searchRadius(q, r, dist, filter, out)
	}
}
