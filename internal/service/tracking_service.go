package service

import (
	"log"
	"sync"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/progress"
	"github.com/fogwalk/fogwalk-backend-go/internal/repository"
	"github.com/fogwalk/fogwalk-backend-go/internal/reveal"
	"github.com/fogwalk/fogwalk-backend-go/internal/spatial"
	"github.com/fogwalk/fogwalk-backend-go/internal/tracking"
)

// PositionResult reports what one ingested GPS fix did.
type PositionResult struct {
	Accepted    bool    `json:"accepted"`
	NewSegments int     `json:"newSegments"`
	DistanceM   float64 `json:"distanceM"`
}

// TrackingService runs the position pipeline: raw fix -> quality filter ->
// distance accrual -> reveal engine. Position updates are processed strictly
// in arrival order; the service mutex guarantees each update completes its
// store writes and event emission before the next begins.
type TrackingService struct {
	mu           sync.Mutex
	filter       *tracking.Filter
	engine       *reveal.Engine
	accumulator  *progress.Accumulator
	progressRepo *repository.ProgressRepository
}

// NewTrackingService creates the pipeline. progressRepo may be nil for
// ephemeral play; progress then lives only in memory.
func NewTrackingService(filter *tracking.Filter, engine *reveal.Engine, acc *progress.Accumulator, progressRepo *repository.ProgressRepository) *TrackingService {
	return &TrackingService{
		filter:       filter,
		engine:       engine,
		accumulator:  acc,
		progressRepo: progressRepo,
	}
}

// OnRawPosition ingests one raw GPS fix. A rejected fix is a normal outcome
// (Accepted=false, no state change); reveal store failures propagate.
func (s *TrackingService) OnRawPosition(sample models.PositionSample) (PositionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.filter.LastAccepted()

	pos, ok := s.filter.Accept(sample)
	if !ok {
		return PositionResult{}, nil
	}

	var walked float64
	if hadPrev {
		walked = spatial.HaversineDistance(prev.Latitude, prev.Longitude, pos.Latitude, pos.Longitude)
		s.accumulator.OnDistanceWalked(walked)
	}

	// The accumulator is registered as an engine listener, so discovery
	// points and XP are awarded inside this call.
	newSegments, err := s.engine.OnPosition(pos)
	if err != nil {
		return PositionResult{}, err
	}

	s.persistProgress()

	return PositionResult{Accepted: true, NewSegments: newSegments, DistanceM: walked}, nil
}

// Progress returns the current player progress snapshot.
func (s *TrackingService) Progress() models.PlayerProgress {
	return s.accumulator.Snapshot()
}

func (s *TrackingService) persistProgress() {
	if s.progressRepo == nil {
		return
	}
	if err := s.progressRepo.Save(s.accumulator.Snapshot()); err != nil {
		// Progress is re-derivable from the segment store, so a failed save
		// is logged rather than failing the position update.
		log.Printf("Failed to persist progress: %v", err)
	}
}
