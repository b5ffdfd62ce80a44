package streets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOverpassProviderParsesWays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseForm(); err != nil || r.PostFormValue("data") == "" {
			t.Errorf("expected overpass query in form data")
		}
		w.Write([]byte(`{
			"elements": [
				{
					"type": "way",
					"id": 42,
					"tags": {"name": "Main Street", "highway": "residential"},
					"geometry": [{"lat": 0, "lon": 0}, {"lat": 0, "lon": 0.001}, {"lat": 0, "lon": 0.002}]
				},
				{"type": "node", "id": 7},
				{"type": "way", "id": 43, "geometry": [{"lat": 1, "lon": 1}]}
			]
		}`))
	}))
	defer srv.Close()

	p := NewOverpassProvider(srv.URL)
	streets, err := p.FetchStreets(context.Background(), 0, 0, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Nodes and degenerate single-point ways are dropped
	if len(streets) != 1 {
		t.Fatalf("expected 1 street, got %d", len(streets))
	}
	got := streets[0]
	if got.ID != "osm_42" || got.Name != "Main Street" || got.RoadClass != "residential" {
		t.Fatalf("unexpected street: %+v", got)
	}
	if got.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments, got %d", got.SegmentCount())
	}
}

func TestOverpassProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too busy", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOverpassProvider(srv.URL)
	if _, err := p.FetchStreets(context.Background(), 0, 0, 2); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
