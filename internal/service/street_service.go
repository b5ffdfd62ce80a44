package service

import (
	"context"
	"fmt"
	"log"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/streets"
)

// StreetService refreshes the street index from the geometry provider. A
// failed fetch is a soft error: the index keeps its previously loaded
// geometry, stale-but-available.
type StreetService struct {
	index    *streets.Index
	provider streets.Provider
}

// NewStreetService creates a new street service
func NewStreetService(index *streets.Index, provider streets.Provider) *StreetService {
	return &StreetService{index: index, provider: provider}
}

// Refresh fetches streets around the center and replaces the index contents.
// Returns the number of streets loaded.
func (s *StreetService) Refresh(ctx context.Context, lat, lon, radiusKm float64) (int, error) {
	fetched, err := s.provider.FetchStreets(ctx, lat, lon, radiusKm)
	if err != nil {
		log.Printf("Street fetch failed, keeping %d cached streets: %v", s.index.Len(), err)
		return 0, fmt.Errorf("failed to fetch streets: %w", err)
	}

	s.index.Load(fetched)
	return len(fetched), nil
}

// Streets returns the currently loaded street set.
func (s *StreetService) Streets() []models.StreetGeometry {
	return s.index.Streets()
}

// Nearest returns the street closest to the point within the snap radius.
func (s *StreetService) Nearest(lat, lon float64) (*models.StreetGeometry, bool) {
	return s.index.NearestStreet(lat, lon)
}
