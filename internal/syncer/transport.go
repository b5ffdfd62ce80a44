package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// Transport is the wire interface to the team sync backend. Pull failures
// surface as errors for the caller's retry policy; publish failures are the
// transport layer's concern and never corrupt local state.
type Transport interface {
	// PullSince returns every team segment record newer than the watermark.
	PullSince(ctx context.Context, teamID string, watermark time.Time) ([]models.SegmentRecord, error)
	// Publish shares one newly discovered local record with the team.
	Publish(ctx context.Context, teamID string, record models.SegmentRecord) error
}

// HTTPTransport talks to a team sync backend over HTTP/JSON.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport against the given base URL.
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// PullSince fetches GET {base}/teams/{teamID}/segments?since={RFC3339}.
func (t *HTTPTransport) PullSince(ctx context.Context, teamID string, watermark time.Time) ([]models.SegmentRecord, error) {
	endpoint := fmt.Sprintf("%s/teams/%s/segments", t.baseURL, url.PathEscape(teamID))
	if !watermark.IsZero() {
		endpoint += "?since=" + url.QueryEscape(watermark.Format(time.RFC3339Nano))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sync backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var records []models.SegmentRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode pulled segments: %w", err)
	}

	return records, nil
}

// Publish posts one record to POST {base}/teams/{teamID}/segments.
func (t *HTTPTransport) Publish(ctx context.Context, teamID string, record models.SegmentRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode segment %s: %w", record.ID, err)
	}

	endpoint := fmt.Sprintf("%s/teams/%s/segments", t.baseURL, url.PathEscape(teamID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sync backend returned status %d", resp.StatusCode)
	}

	return nil
}

// NoopTransport is used for teamless or offline play: pulls return nothing
// and publishes are dropped.
type NoopTransport struct{}

// PullSince returns no records.
func (NoopTransport) PullSince(ctx context.Context, teamID string, watermark time.Time) ([]models.SegmentRecord, error) {
	return nil, nil
}

// Publish drops the record.
func (NoopTransport) Publish(ctx context.Context, teamID string, record models.SegmentRecord) error {
	return nil
}
