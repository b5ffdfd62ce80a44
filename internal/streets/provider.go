package streets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// Provider fetches street geometry around a point. The core treats geometry
// acquisition as external: a fetch failure is a soft error and the caller
// keeps whatever geometry it already has.
type Provider interface {
	FetchStreets(ctx context.Context, lat, lon, radiusKm float64) ([]models.StreetGeometry, error)
}

// OverpassProvider fetches highway ways from an Overpass API endpoint.
type OverpassProvider struct {
	baseURL string
	client  *http.Client
}

// NewOverpassProvider creates a provider against the given Overpass endpoint.
func NewOverpassProvider(baseURL string) *OverpassProvider {
	return &OverpassProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type overpassResponse struct {
	Elements []struct {
		Type     string            `json:"type"`
		ID       int64             `json:"id"`
		Tags     map[string]string `json:"tags"`
		Geometry []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"geometry"`
	} `json:"elements"`
}

// FetchStreets queries all ways tagged as highways within radiusKm of the
// center and converts them to street geometry. Way ids are prefixed with
// "osm_" to form the stable street ids segment records are keyed by.
func (p *OverpassProvider) FetchStreets(ctx context.Context, lat, lon, radiusKm float64) ([]models.StreetGeometry, error) {
	query := fmt.Sprintf("[out:json][timeout:25];way[highway](around:%.0f,%.6f,%.6f);out geom;",
		radiusKm*1000, lat, lon)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	var streets []models.StreetGeometry
	for _, el := range parsed.Elements {
		if el.Type != "way" || len(el.Geometry) < 2 {
			continue
		}

		street := models.StreetGeometry{
			ID:        fmt.Sprintf("osm_%d", el.ID),
			Name:      el.Tags["name"],
			RoadClass: el.Tags["highway"],
			Points:    make([]models.GeoPoint, 0, len(el.Geometry)),
		}
		for _, g := range el.Geometry {
			street.Points = append(street.Points, models.GeoPoint{Lat: g.Lat, Lon: g.Lon})
		}
		streets = append(streets, street)
	}

	return streets, nil
}
