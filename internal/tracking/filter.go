package tracking

import (
	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/spatial"
)

// Filter quality thresholds.
const (
	MaxAccuracyMeters = 50.0 // Fixes with worse reported accuracy are dropped
	MaxSpeedMPS       = 25.0 // ~90 km/h; faster implied movement is treated as a GPS jump
)

// Filter validates raw GPS fixes before they reach the reveal engine.
// Low-accuracy fixes would reveal segments far from the true path, and
// teleport-style jumps would reveal segments the player never walked.
// Rejection is a normal outcome, not an error: it leaves the filter's
// last-accepted state untouched.
type Filter struct {
	last    models.FilteredPosition
	hasLast bool
}

// NewFilter creates a filter with no accepted position yet.
func NewFilter() *Filter {
	return &Filter{}
}

// Accept validates a raw fix. On success it updates the filter's internal
// last-accepted state and returns the cleaned position with ok=true; on
// rejection it returns ok=false and changes nothing.
func (f *Filter) Accept(sample models.PositionSample) (models.FilteredPosition, bool) {
	if sample.AccuracyMeters > MaxAccuracyMeters {
		return models.FilteredPosition{}, false
	}

	if f.hasLast {
		elapsed := sample.Timestamp.Sub(f.last.Timestamp).Seconds()
		// elapsed <= 0 means no usable time delta; the speed check does not
		// apply, but the accuracy check above already did.
		if elapsed > 0 {
			dist := spatial.HaversineDistance(f.last.Latitude, f.last.Longitude, sample.Latitude, sample.Longitude)
			if dist/elapsed > MaxSpeedMPS {
				return models.FilteredPosition{}, false
			}
		}
	}

	pos := models.FilteredPosition{
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Timestamp: sample.Timestamp,
	}
	f.last = pos
	f.hasLast = true
	return pos, true
}

// LastAccepted returns the most recently accepted position, for callers that
// need a fallback value after a rejection.
func (f *Filter) LastAccepted() (models.FilteredPosition, bool) {
	return f.last, f.hasLast
}
