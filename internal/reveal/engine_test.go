package reveal

import (
	"sync"
	"testing"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/store"
	"github.com/fogwalk/fogwalk-backend-go/internal/streets"
)

func newTestEngine(t *testing.T, geom []models.StreetGeometry) (*Engine, *store.MemoryStore, *time.Time) {
	t.Helper()

	index := streets.NewIndex()
	index.Load(geom)

	mem := store.NewMemoryStore()
	var mu sync.Mutex
	e := NewEngine(index, mem, &mu)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return clock })
	return e, mem, &clock
}

func twoSegmentStreet() []models.StreetGeometry {
	return []models.StreetGeometry{{
		ID:   "osm_42",
		Name: "Ringstrasse",
		Points: []models.GeoPoint{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 0.001},
			{Lat: 0, Lon: 0.002},
		},
	}}
}

func pos(lat, lon float64) models.FilteredPosition {
	return models.FilteredPosition{Latitude: lat, Longitude: lon, Timestamp: time.Now()}
}

func TestRevealCreatesStableIDs(t *testing.T) {
	e, mem, _ := newTestEngine(t, twoSegmentStreet())

	// Standing on the first point pair
	n, err := e.OnPosition(pos(0, 0.0002))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 new segment, got %d", n)
	}

	rec, err := mem.Get("osm_42_0")
	if err != nil || rec == nil {
		t.Fatalf("expected record osm_42_0, got %v (err %v)", rec, err)
	}
	if rec.TimesWalked != 1 || !rec.DiscoveredByMe {
		t.Fatalf("new record should have timesWalked=1 discoveredByMe=true, got %+v", rec)
	}
	if rec.StreetName != "Ringstrasse" {
		t.Fatalf("street name not denormalized: %+v", rec)
	}

	// Walking near the second point pair creates a distinct record
	if _, err := e.OnPosition(pos(0, 0.0015)); err != nil {
		t.Fatal(err)
	}
	rec2, _ := mem.Get("osm_42_1")
	if rec2 == nil {
		t.Fatal("expected record osm_42_1")
	}
	if rec2.ID == rec.ID {
		t.Fatal("segment records must be distinct per point pair")
	}
}

func TestWalkCountMonotonic(t *testing.T) {
	e, mem, clock := newTestEngine(t, twoSegmentStreet())

	prevWalked := 0
	prevAt := time.Time{}
	for i := 0; i < 5; i++ {
		if _, err := e.OnPosition(pos(0, 0.0002)); err != nil {
			t.Fatal(err)
		}
		rec, _ := mem.Get("osm_42_0")
		if rec.TimesWalked < prevWalked {
			t.Fatalf("timesWalked decreased: %d -> %d", prevWalked, rec.TimesWalked)
		}
		if rec.LastWalkedAt.Before(prevAt) {
			t.Fatalf("lastWalkedAt went backwards: %v -> %v", prevAt, rec.LastWalkedAt)
		}
		prevWalked = rec.TimesWalked
		prevAt = rec.LastWalkedAt
		*clock = clock.Add(30 * time.Second)
	}

	if prevWalked != 5 {
		t.Fatalf("expected 5 walks after 5 updates, got %d", prevWalked)
	}
}

func TestOutOfRangeRevealsNothing(t *testing.T) {
	e, mem, _ := newTestEngine(t, twoSegmentStreet())

	// ~55m north of the street, outside the 15m reveal radius
	n, err := e.OnPosition(pos(0.0005, 0.0005))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected no reveals, got %d", n)
	}

	all, _ := mem.ListAll()
	if len(all) != 0 {
		t.Fatalf("store should be empty, has %d records", len(all))
	}
}

func TestEmptyIndexIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	n, err := e.OnPosition(pos(0, 0))
	if err != nil {
		t.Fatalf("empty index must not fail: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 new segments, got %d", n)
	}
}

func TestDiscoveryEventsAndPublish(t *testing.T) {
	e, _, _ := newTestEngine(t, twoSegmentStreet())

	var events []DiscoveryEvent
	e.AddListener(func(ev DiscoveryEvent) { events = append(events, ev) })

	var published []string
	e.SetPublisher(func(rec models.SegmentRecord) { published = append(published, rec.ID) })

	if _, err := e.OnPosition(pos(0, 0.0002)); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].NewSegments != 1 {
		t.Fatalf("expected one event with 1 new segment, got %+v", events)
	}
	if len(published) != 1 || published[0] != "osm_42_0" {
		t.Fatalf("expected one publish of osm_42_0, got %v", published)
	}

	// Lingering on the same segment: walk count rises but nothing is newly
	// discovered, so no event and no republish.
	if _, err := e.OnPosition(pos(0, 0.0002)); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("no event expected for pure increments, got %+v", events)
	}
	if len(published) != 1 {
		t.Fatalf("walk increments must not republish, got %v", published)
	}
}

func TestLocalWalkFlipsTeammateOwnership(t *testing.T) {
	e, mem, _ := newTestEngine(t, twoSegmentStreet())

	// A teammate's record is already stored
	teammate := models.NewSegmentRecord("osm_42", 0, "Ringstrasse", 0, 0, 0, 0.001, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	teammate.DiscoveredByMe = false
	teammate.TimesWalked = 3
	if err := mem.Put(teammate); err != nil {
		t.Fatal(err)
	}

	n, err := e.OnPosition(pos(0, 0.0002))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("existing segment is not a new reveal, got %d", n)
	}

	rec, _ := mem.Get("osm_42_0")
	if rec.TimesWalked != 4 || !rec.DiscoveredByMe {
		t.Fatalf("local walk should increment and claim ownership, got %+v", rec)
	}
}
