package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// ClosestPointOnSegment returns the point on the segment [a, b] closest to p.
// The projection is computed in a local tangent frame around the segment
// (longitude scaled by cos(latitude) so distances are locally uniform) with
// the projection scalar clamped to [0, 1]. Degenerate zero-length segments
// reduce to the segment start.
func ClosestPointOnSegment(p, a, b Point) Point {
	latScale := math.Cos(a.Lat * math.Pi / 180)

	ax, ay := a.Lon*latScale, a.Lat
	bx, by := b.Lon*latScale, b.Lat
	px, py := p.Lon*latScale, p.Lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return Point{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
}

// PointToSegmentDistance returns the great-circle distance in meters from p
// to the closest point on the segment [a, b].
func PointToSegmentDistance(p, a, b Point) float64 {
	closest := ClosestPointOnSegment(p, a, b)
	return HaversineDistance(p.Lat, p.Lon, closest.Lat, closest.Lon)
}

// MinDistanceToPolyline returns the minimum point-to-segment distance in
// meters from p across all consecutive point pairs of the polyline. Returns
// +Inf for polylines with fewer than two points.
func MinDistanceToPolyline(p Point, polyline []Point) float64 {
	if len(polyline) < 2 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for i := 1; i < len(polyline); i++ {
		d := PointToSegmentDistance(p, polyline[i-1], polyline[i])
		if d < min {
			min = d
		}
	}

	return min
}
