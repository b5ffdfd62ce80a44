package models

import "time"

// PositionSample is a raw GPS fix as delivered by the host. Transient: only
// the position filter and reveal engine ever see it, nothing persists it.
type PositionSample struct {
	Latitude       float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude      float64   `json:"longitude" binding:"min=-180,max=180"`
	AccuracyMeters float64   `json:"accuracyMeters"`
	Timestamp      time.Time `json:"timestamp"`
}

// FilteredPosition is a sample that passed quality filtering.
type FilteredPosition struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
