package models

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// StreetGeometry represents one named polyline fetched from the geometry
// provider. Immutable once fetched; the street index replaces its whole set
// on refetch, so point order (and therefore segment indexing) is stable for
// the lifetime of a load.
type StreetGeometry struct {
	ID        string     `json:"id"`             // Provider-assigned stable id
	Name      string     `json:"name,omitempty"` // Optional display name
	RoadClass string     `json:"roadClass"`      // e.g. residential, primary, footway
	Points    []GeoPoint `json:"points"`         // Ordered, len >= 2 for a usable street
}

// SegmentCount returns the number of consecutive point-pair slices.
func (s *StreetGeometry) SegmentCount() int {
	if len(s.Points) < 2 {
		return 0
	}
	return len(s.Points) - 1
}
