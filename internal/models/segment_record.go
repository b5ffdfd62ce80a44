package models

import (
	"fmt"
	"time"
)

// SegmentRecordSchemaVersion is the current on-disk schema version for
// segment records. Records loaded or merged with an older (or missing)
// version are normalized once at the load boundary, never in business logic.
const SegmentRecordSchemaVersion = 1

// SegmentRecord represents one fixed-length slice of a street: a single
// consecutive point pair of the street's polyline. The record id is the
// deterministic composite "{streetID}_{segmentIndex}", so repeated discovery
// of the same slice always resolves to the same record.
type SegmentRecord struct {
	ID           string `json:"id" db:"id"`
	StreetID     string `json:"streetId" db:"street_id"`
	SegmentIndex int    `json:"segmentIndex" db:"segment_index"`
	StreetName   string `json:"streetName,omitempty" db:"street_name"` // Denormalized for display

	// Segment geometry (endpoints of the point pair)
	StartLat float64 `json:"startLat" db:"start_lat"`
	StartLon float64 `json:"startLon" db:"start_lon"`
	EndLat   float64 `json:"endLat" db:"end_lat"`
	EndLon   float64 `json:"endLon" db:"end_lon"`

	// Walk state
	TimesWalked       int       `json:"timesWalked" db:"times_walked"` // >= 1, monotonically non-decreasing
	FirstDiscoveredAt time.Time `json:"firstDiscoveredAt" db:"first_discovered_at"`
	LastWalkedAt      time.Time `json:"lastWalkedAt" db:"last_walked_at"`

	// DiscoveredByMe is true if the local player caused the most recent
	// walk-increment. It is only ever set by the local RecordWalk path; a
	// segment arriving from a teammate and never locally walked stays false.
	DiscoveredByMe bool `json:"discoveredByMe" db:"discovered_by_me"`

	SchemaVersion int `json:"schemaVersion" db:"schema_version"`
}

// SegmentID builds the deterministic composite id for a street slice.
func SegmentID(streetID string, segmentIndex int) string {
	return fmt.Sprintf("%s_%d", streetID, segmentIndex)
}

// NewSegmentRecord creates a freshly discovered local record for the given
// street slice with TimesWalked=1 and both timestamps set to now.
func NewSegmentRecord(streetID string, segmentIndex int, streetName string, startLat, startLon, endLat, endLon float64, now time.Time) *SegmentRecord {
	return &SegmentRecord{
		ID:                SegmentID(streetID, segmentIndex),
		StreetID:          streetID,
		SegmentIndex:      segmentIndex,
		StreetName:        streetName,
		StartLat:          startLat,
		StartLon:          startLon,
		EndLat:            endLat,
		EndLon:            endLon,
		TimesWalked:       1,
		FirstDiscoveredAt: now,
		LastWalkedAt:      now,
		DiscoveredByMe:    true,
		SchemaVersion:     SegmentRecordSchemaVersion,
	}
}

// RecordWalk registers one local walk over the segment: the count goes up,
// the walk timestamp refreshes, and ownership flips to the local player
// regardless of who discovered the segment first.
func (r *SegmentRecord) RecordWalk(now time.Time) {
	r.TimesWalked++
	if now.After(r.LastWalkedAt) {
		r.LastWalkedAt = now
	}
	r.DiscoveredByMe = true
}

// Normalize applies defaulting rules for records read from storage or
// received over the wire with an older schema version. Returns the record
// for chaining.
func (r *SegmentRecord) Normalize(now time.Time) *SegmentRecord {
	if r.TimesWalked < 1 {
		r.TimesWalked = 1
	}
	if r.FirstDiscoveredAt.IsZero() {
		r.FirstDiscoveredAt = now
	}
	if r.LastWalkedAt.IsZero() {
		r.LastWalkedAt = r.FirstDiscoveredAt
	}
	if r.SchemaVersion < SegmentRecordSchemaVersion {
		r.SchemaVersion = SegmentRecordSchemaVersion
	}
	return r
}

// Valid reports whether the record carries the fields required to be stored:
// a composite id, a street id, and endpoints within geographic range.
func (r *SegmentRecord) Valid() bool {
	if r.ID == "" || r.StreetID == "" {
		return false
	}
	for _, lat := range []float64{r.StartLat, r.EndLat} {
		if lat < -90 || lat > 90 {
			return false
		}
	}
	for _, lon := range []float64{r.StartLon, r.EndLon} {
		if lon < -180 || lon > 180 {
			return false
		}
	}
	return true
}

// Tier classifies a segment for display by its walk count.
type Tier string

const (
	TierDiscovered Tier = "discovered" // 1-9 walks
	TierMastered   Tier = "mastered"   // 10-49 walks
	TierLegendary  Tier = "legendary"  // 50+ walks
)

// Tier walk-count thresholds.
const (
	MasteredWalks  = 10
	LegendaryWalks = 50
)

// TierForWalks computes the display tier for a walk count. Pure function,
// the tier is never stored.
func TierForWalks(timesWalked int) Tier {
	switch {
	case timesWalked >= LegendaryWalks:
		return TierLegendary
	case timesWalked >= MasteredWalks:
		return TierMastered
	default:
		return TierDiscovered
	}
}

// Tier returns the record's current display tier.
func (r *SegmentRecord) Tier() Tier {
	return TierForWalks(r.TimesWalked)
}
