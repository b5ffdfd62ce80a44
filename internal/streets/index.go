package streets

import (
	"sync"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/spatial"
)

// SnapRadiusMeters is the maximum distance at which a raw position still
// matches the nearest street.
const SnapRadiusMeters = 30.0

// Index holds the street geometry fetched for the player's vicinity and
// answers nearest-street and segment-enumeration queries. It is the only
// source of truth for what segments exist near a point. Geometry is
// immutable once loaded and replaced wholesale on refetch, so the
// (streetID, segmentIndex) enumeration handed to the reveal engine is stable
// for the lifetime of a load.
type Index struct {
	mu      sync.RWMutex
	streets []models.StreetGeometry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Load replaces the held street set wholesale.
func (ix *Index) Load(streets []models.StreetGeometry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.streets = streets
}

// Len returns the number of held streets.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.streets)
}

// Streets returns a copy of the held street set.
func (ix *Index) Streets() []models.StreetGeometry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]models.StreetGeometry, len(ix.streets))
	copy(out, ix.streets)
	return out
}

// NearestStreet returns the street with the smallest minimum point-to-segment
// distance to the query point, if that distance is within the snap radius.
func (ix *Index) NearestStreet(lat, lon float64) (*models.StreetGeometry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	p := spatial.Point{Lat: lat, Lon: lon}
	var best *models.StreetGeometry
	bestDist := SnapRadiusMeters

	for i := range ix.streets {
		street := &ix.streets[i]
		d := spatial.MinDistanceToPolyline(p, streetPolyline(street))
		if d <= bestDist {
			bestDist = d
			best = street
		}
	}

	if best == nil {
		return nil, false
	}
	out := *best
	return &out, true
}

// SegmentVisitor receives one consecutive point pair of a street. The
// (streetID, segmentIndex) pair is the basis of segment record ids.
type SegmentVisitor func(street *models.StreetGeometry, segmentIndex int, start, end spatial.Point)

// ForEachSegment iterates every consecutive point pair of every held street
// in load order. An empty index simply visits nothing.
func (ix *Index) ForEachSegment(visit SegmentVisitor) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for i := range ix.streets {
		street := &ix.streets[i]
		for j := 1; j < len(street.Points); j++ {
			start := spatial.Point{Lat: street.Points[j-1].Lat, Lon: street.Points[j-1].Lon}
			end := spatial.Point{Lat: street.Points[j].Lat, Lon: street.Points[j].Lon}
			visit(street, j-1, start, end)
		}
	}
}

func streetPolyline(street *models.StreetGeometry) []spatial.Point {
	pts := make([]spatial.Point, len(street.Points))
	for i, p := range street.Points {
		pts[i] = spatial.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return pts
}
