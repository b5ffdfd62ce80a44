package service

import (
	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/repository"
)

// SegmentService handles read-side queries over discovered segments.
type SegmentService struct {
	repo *repository.SegmentRepository
}

// NewSegmentService creates a new segment service
func NewSegmentService(repo *repository.SegmentRepository) *SegmentService {
	return &SegmentService{repo: repo}
}

// List retrieves segment records with filtering and pagination.
func (s *SegmentService) List(filter models.SegmentFilter) ([]models.SegmentRecord, int64, error) {
	return s.repo.List(filter)
}

// GetByID retrieves a single segment record by its composite id.
func (s *SegmentService) GetByID(id string) (*models.SegmentRecord, error) {
	return s.repo.Get(id)
}

// TierCounts returns the number of segments per display tier.
func (s *SegmentService) TierCounts() (map[models.Tier]int64, error) {
	return s.repo.CountByTier()
}
