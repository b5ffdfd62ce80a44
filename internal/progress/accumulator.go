package progress

import (
	"sync"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// XPPerSegment is the fixed XP reward for each newly discovered segment.
const XPPerSegment = 5

// Accumulator derives player-level side effects from reveal events. Given
// the same sequence of discovery and distance calls the final state is
// identical across runs; nothing here depends on wall-clock ordering beyond
// the UpdatedAt stamp.
type Accumulator struct {
	mu    sync.Mutex
	state models.PlayerProgress
	now   func() time.Time
}

// NewAccumulator creates an accumulator starting from the given state. A
// zero Level is normalized to 1.
func NewAccumulator(initial models.PlayerProgress) *Accumulator {
	if initial.Level < 1 {
		initial.Level = 1
	}
	return &Accumulator{state: initial, now: time.Now}
}

// SetClock overrides the accumulator's time source.
func (a *Accumulator) SetClock(now func() time.Time) {
	a.now = now
}

// OnSegmentsDiscovered awards discovery points and XP for newly revealed
// segments, cascading XP overflow into level-ups.
func (a *Accumulator) OnSegmentsDiscovered(count int) {
	if count <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.DiscoveryPoints += count
	a.state.XP += count * XPPerSegment
	for a.state.XP >= models.XPForNextLevel(a.state.Level) {
		a.state.XP -= models.XPForNextLevel(a.state.Level)
		a.state.Level++
	}
	a.state.UpdatedAt = a.now()
}

// OnDistanceWalked accumulates walked distance. Straight sum, no
// normalization.
func (a *Accumulator) OnDistanceWalked(meters float64) {
	if meters <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.TotalDistanceWalkedM += meters
	a.state.UpdatedAt = a.now()
}

// Snapshot returns a copy of the current progress state.
func (a *Accumulator) Snapshot() models.PlayerProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}
