package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/repository"
	"github.com/fogwalk/fogwalk-backend-go/internal/syncer"
)

// ErrNoTeam is returned when a sync round is requested without a team.
var ErrNoTeam = errors.New("no team joined")

// SyncStatus describes the current team sync state.
type SyncStatus struct {
	TeamID    string    `json:"teamId,omitempty"`
	Online    bool      `json:"online"`
	Watermark time.Time `json:"watermark"`
}

// SyncService owns the team context (nullable team id, online flag) and the
// persisted pull watermark, and drives pull-merge rounds through the
// transport and merger.
type SyncService struct {
	merger    *syncer.Merger
	transport syncer.Transport
	stateRepo *repository.SyncStateRepository

	mu     sync.Mutex
	teamID string
	online bool
}

// NewSyncService creates a sync service. stateRepo may be nil, in which case
// watermarks are not persisted across restarts and every pull is a catch-up.
func NewSyncService(merger *syncer.Merger, transport syncer.Transport, stateRepo *repository.SyncStateRepository) *SyncService {
	return &SyncService{
		merger:    merger,
		transport: transport,
		stateRepo: stateRepo,
		online:    true,
	}
}

// SetTeam joins (or, with an empty id, leaves) a team.
func (s *SyncService) SetTeam(teamID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamID = teamID
}

// SetOnline records connectivity as reported by the host.
func (s *SyncService) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// Status returns the current team id, online flag and watermark.
func (s *SyncService) Status() (SyncStatus, error) {
	s.mu.Lock()
	teamID, online := s.teamID, s.online
	s.mu.Unlock()

	status := SyncStatus{TeamID: teamID, Online: online}
	if teamID != "" && s.stateRepo != nil {
		wm, err := s.stateRepo.GetWatermark(teamID)
		if err != nil {
			return status, err
		}
		status.Watermark = wm
	}
	return status, nil
}

// SyncNow performs one pull-merge round: pull team records newer than the
// stored watermark, merge them, persist the advanced watermark.
func (s *SyncService) SyncNow(ctx context.Context) (syncer.MergeResult, error) {
	s.mu.Lock()
	teamID, online := s.teamID, s.online
	s.mu.Unlock()

	if teamID == "" {
		return syncer.MergeResult{}, ErrNoTeam
	}
	if !online {
		return syncer.MergeResult{}, errors.New("offline")
	}

	var watermark time.Time
	if s.stateRepo != nil {
		wm, err := s.stateRepo.GetWatermark(teamID)
		if err != nil {
			return syncer.MergeResult{}, err
		}
		watermark = wm
	}

	records, err := s.transport.PullSince(ctx, teamID, watermark)
	if err != nil {
		return syncer.MergeResult{}, err
	}

	batchID := uuid.NewString()
	result, err := s.merger.MergeIncoming(records, watermark)
	if err != nil {
		return result, err
	}
	log.Printf("Sync batch %s: pulled=%d inserted=%d duplicate=%d invalid=%d",
		batchID, len(records), result.Inserted, result.SkippedExisting, result.SkippedInvalid)

	if s.stateRepo != nil {
		if err := s.stateRepo.SetWatermark(teamID, result.Watermark); err != nil {
			return result, err
		}
	}

	return result, nil
}

// MergeDirect merges a batch delivered out-of-band (for example pushed by
// the host) without touching the stored watermark.
func (s *SyncService) MergeDirect(records []models.SegmentRecord) (syncer.MergeResult, error) {
	return s.merger.MergeIncoming(records, time.Time{})
}

// Publisher returns the fire-and-forget hook the reveal engine calls once
// per newly discovered local segment. Failures are logged; the transport
// layer owns retries.
func (s *SyncService) Publisher() func(models.SegmentRecord) {
	return func(rec models.SegmentRecord) {
		s.mu.Lock()
		teamID, online := s.teamID, s.online
		s.mu.Unlock()

		if teamID == "" || !online {
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.transport.Publish(ctx, teamID, rec); err != nil {
				log.Printf("Failed to publish segment %s: %v", rec.ID, err)
			}
		}()
	}
}

// Run drives periodic sync rounds until the context is cancelled. Rounds
// while teamless or offline are skipped silently.
func (s *SyncService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SyncNow(ctx); err != nil && !errors.Is(err, ErrNoTeam) {
				log.Printf("Sync round failed: %v", err)
			}
		}
	}
}
