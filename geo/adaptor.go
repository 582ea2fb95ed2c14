package geo

import (
	"fmt"
	"math"

	"github.com/ar90n-labs/vptree"
)

// ErrInvalidBounds is returned when a bounding box's south edge lies north
// of its north edge.
var ErrInvalidBounds = fmt.Errorf("geo: south bound north of north bound")

// Adaptor wraps a *vptree.Tree[E] with the coordinate accessors needed to
// run a bounding-box query per spec §6: locate extracts the Point a stored
// element sits at, and fromPoint builds a synthetic query element of type
// E from a bare Point (the computed centroid, which is generally not
// itself a stored element). For a tree storing bare Points, both
// accessors are the identity.
type Adaptor[E comparable] struct {
	tree      *vptree.Tree[E]
	locate    func(E) Point
	fromPoint func(Point) E
}

// NewAdaptor builds an Adaptor over tree.
func NewAdaptor[E comparable](tree *vptree.Tree[E], locate func(E) Point, fromPoint func(Point) E) *Adaptor[E] {
	return &Adaptor[E]{tree: tree, locate: locate, fromPoint: fromPoint}
}

// NewPointAdaptor builds an Adaptor over a tree that stores bare Points.
func NewPointAdaptor(tree *vptree.Tree[Point]) *Adaptor[Point] {
	identity := func(p Point) Point { return p }
	return NewAdaptor(tree, identity, identity)
}

// BoundingBox returns every stored element whose latitude falls within
// [south, north] and whose longitude falls on the shorter arc from west to
// east, intersected with filter. Per spec §6 it reduces to a distance
// query: compute the centroid of the four corners, compute a safe radius
// (the farthest corner from the centroid), and run a radius query around
// that centroid with that radius before applying the bounding-box and
// caller predicates.
//
// The centroid formula takes its corner coordinates in radians - the spec
// leaves this ambiguous (§9, Open Question 1: some historical versions of
// the reference apply it to degrees, others to radians); this adaptor
// resolves it in favor of radians, converting from the caller's degree
// inputs before calling the mid-of-great-circle formula.
func (a *Adaptor[E]) BoundingBox(south, west, north, east float64, filter func(E) bool) ([]E, error) {
	if south > north {
		return nil, fmt.Errorf("south %v > north %v: %w", south, north, ErrInvalidBounds)
	}

	corners := [4]Point{
		{Lat: south, Lng: west},
		{Lat: south, Lng: east},
		{Lat: north, Lng: west},
		{Lat: north, Lng: east},
	}

	centroid := centroidOf(corners[:])

	radius := 0.0
	for _, c := range corners {
		if d := HaversineDistance(centroid, c); d > radius {
			radius = d
		}
	}

	boxFilter := func(e E) bool {
		p := a.locate(e)
		if p.Lat < south || p.Lat > north {
			return false
		}
		if !withinShorterArc(p.Lng, west, east) {
			return false
		}
		return filter == nil || filter(e)
	}

	query := a.fromPoint(centroid)
	return a.tree.GetAllWithinDistance(query, radius, vptree.WithRadiusFilter(boxFilter))
}

// centroidOf computes the midpoint on the sphere of the given corners,
// using the standard mid-of-great-circle formula: average the corners'
// unit Cartesian vectors and convert the result back to latitude/longitude.
func centroidOf(corners []Point) Point {
	var x, y, z float64
	for _, c := range corners {
		lat, lng := toRadians(c.Lat), toRadians(c.Lng)
		cosLat := math.Cos(lat)
		x += cosLat * math.Cos(lng)
		y += cosLat * math.Sin(lng)
		z += math.Sin(lat)
	}

	n := float64(len(corners))
	x, y, z = x/n, y/n, z/n

	hyp := math.Hypot(x, y)
	lat := math.Atan2(z, hyp)
	lng := math.Atan2(y, x)

	return Point{Lat: toDegrees(lat), Lng: toDegrees(lng)}
}

// withinShorterArc reports whether lng lies on the shorter of the two arcs
// between west and east. When the eastward arc from west to east spans
// more than 180 degrees, the shorter arc is the eastward one from east to
// west, so the two bounds swap. If the resulting arc doesn't cross the
// antimeridian the test is a plain range check; if it does, the accepted
// range wraps around +/-180. Exact behavior for a point sitting exactly on
// the antimeridian is left unspecified by the spec (§9, Open Question 2)
// and is not guaranteed here either.
func withinShorterArc(lng, west, east float64) bool {
	span := east - west
	if span < 0 {
		span += 360
	}
	if span > 180 {
		west, east = east, west
	}
	if west <= east {
		return lng >= west && lng <= east
	}
	return lng >= west || lng <= east
}
