package geo

import "math"

// EarthRadiusMeters is the fixed sphere radius the great-circle distance is
// computed against (this module models the Earth as a sphere of fixed
// radius; no other projection is supported - see spec Non-goals).
const EarthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance between a and b, in
// meters, on a sphere of radius EarthRadiusMeters. It is a metric: it is
// zero only for coincident points, symmetric, and obeys the triangle
// inequality, which is what lets the tree prune subtrees during search.
//
// Grounded on the teacher's metric.SqL2Dist (a Metric[T] that reduces a
// pair of points to a single non-negative real) - the shape carries over
// even though the formula is necessarily different, since the stored
// points here are spherical coordinates, not Euclidean vectors.
func HaversineDistance(a, b Point) float64 {
	lat1, lng1 := toRadians(a.Lat), toRadians(a.Lng)
	lat2, lng2 := toRadians(b.Lat), toRadians(b.Lng)

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
