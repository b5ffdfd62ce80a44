package syncer

import (
	"fmt"
	"sync"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/store"
)

// MergeResult reports what a merge batch actually did, so telemetry can
// distinguish data-quality problems from normal idempotent re-delivery.
type MergeResult struct {
	Inserted        int       `json:"inserted"`
	SkippedExisting int       `json:"skippedExisting"`
	SkippedInvalid  int       `json:"skippedInvalid"`
	Watermark       time.Time `json:"watermark"`
}

// Merger reconciles segment records arriving from the team stream with the
// local store. The merge is deliberately asymmetric: unknown ids are
// inserted (as teammate discoveries), known ids are left completely
// untouched. Local walk counts and ownership can therefore never be
// regressed by a stale or conflicting remote snapshot; the only way local
// state advances is by local walking.
type Merger struct {
	store store.SegmentStore
	mu    *sync.Mutex
	now   func() time.Time
}

// NewMerger creates a merger over the store. storeMu must be the same mutex
// the reveal engine serializes its writes with.
func NewMerger(segStore store.SegmentStore, storeMu *sync.Mutex) *Merger {
	return &Merger{
		store: segStore,
		mu:    storeMu,
		now:   time.Now,
	}
}

// SetClock overrides the merger's time source.
func (m *Merger) SetClock(now func() time.Time) {
	m.now = now
}

// MergeIncoming applies one delivered batch. Safe to call repeatedly with
// overlapping batches: re-delivered records are counted as skipped, never
// double-inserted or mutated. Malformed records (missing id or out-of-range
// coordinates) are skipped individually with their own count. On success the
// returned watermark is advanced to now so the next pull only requests newer
// records; the input watermark is not interpreted by the merge itself.
func (m *Merger) MergeIncoming(records []models.SegmentRecord, watermark time.Time) (MergeResult, error) {
	now := m.now()
	result := MergeResult{Watermark: watermark}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range records {
		rec := records[i]
		if !rec.Valid() {
			result.SkippedInvalid++
			continue
		}

		exists, err := m.store.Contains(rec.ID)
		if err != nil {
			return result, fmt.Errorf("failed to check segment %s: %w", rec.ID, err)
		}
		if exists {
			result.SkippedExisting++
			continue
		}

		// A teammate's discovery: ownership is never inferred from the wire
		// payload, only local RecordWalk calls set it.
		rec.DiscoveredByMe = false
		rec.Normalize(now)
		if err := m.store.Put(&rec); err != nil {
			return result, fmt.Errorf("failed to insert segment %s: %w", rec.ID, err)
		}
		result.Inserted++
	}

	result.Watermark = now
	return result, nil
}
