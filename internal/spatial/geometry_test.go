package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is ~111.2 km
	d := HaversineDistance(0, 0, 1, 0)
	if d < 110000 || d > 112000 {
		t.Fatalf("unexpected distance for 1 degree latitude: %v", d)
	}

	if d := HaversineDistance(52.52, 13.405, 52.52, 13.405); d != 0 {
		t.Fatalf("distance to self should be 0, got %v", d)
	}
}

func TestPointToSegmentDistanceOnSegment(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 0.001}
	mid := Point{Lat: 0, Lon: 0.0005}

	if d := PointToSegmentDistance(mid, a, b); d > 0.1 {
		t.Fatalf("point on segment should have ~0 distance, got %v", d)
	}
}

func TestPointToSegmentDistancePerpendicular(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 0.001}
	// ~11.1m north of the segment midpoint
	p := Point{Lat: 0.0001, Lon: 0.0005}

	d := PointToSegmentDistance(p, a, b)
	if d < 10 || d > 13 {
		t.Fatalf("expected ~11m perpendicular distance, got %v", d)
	}
}

func TestPointToSegmentDistanceClampsToEndpoint(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 0.001}
	// Beyond b along the segment direction: distance must clamp to b, not
	// the infinite line.
	p := Point{Lat: 0, Lon: 0.002}

	d := PointToSegmentDistance(p, a, b)
	want := HaversineDistance(p.Lat, p.Lon, b.Lat, b.Lon)
	if math.Abs(d-want) > 0.1 {
		t.Fatalf("expected clamped distance %v, got %v", want, d)
	}
}

func TestPointToSegmentDistanceDegenerate(t *testing.T) {
	a := Point{Lat: 10, Lon: 10}
	p := Point{Lat: 10.001, Lon: 10}

	d := PointToSegmentDistance(p, a, a)
	want := HaversineDistance(p.Lat, p.Lon, a.Lat, a.Lon)
	if math.Abs(d-want) > 0.1 {
		t.Fatalf("degenerate segment should reduce to point distance, want %v got %v", want, d)
	}
}

func TestMinDistanceToPolyline(t *testing.T) {
	polyline := []Point{{0, 0}, {0, 0.001}, {0.001, 0.001}}
	p := Point{Lat: 0.0005, Lon: 0.001}

	if d := MinDistanceToPolyline(p, polyline); d > 0.1 {
		t.Fatalf("point on second leg should have ~0 distance, got %v", d)
	}

	if d := MinDistanceToPolyline(p, polyline[:1]); !math.IsInf(d, 1) {
		t.Fatalf("single-point polyline should yield +Inf, got %v", d)
	}
}
