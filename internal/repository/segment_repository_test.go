package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fogwalk/fogwalk-backend-go/internal/database"
	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSegmentRoundTrip(t *testing.T) {
	repo := NewSegmentRepository(testDB(t))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := models.NewSegmentRecord("osm_42", 0, "Ringstrasse", 0, 0, 0, 0.001, now)
	if err := repo.Put(rec); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get("osm_42_0")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("record not found after put")
	}
	if got.TimesWalked != 1 || !got.DiscoveredByMe || got.StreetName != "Ringstrasse" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.FirstDiscoveredAt.Equal(now) || !got.LastWalkedAt.Equal(now) {
		t.Fatalf("timestamps not preserved: %+v", got)
	}

	exists, err := repo.Contains("osm_42_0")
	if err != nil || !exists {
		t.Fatalf("Contains should report true, got %v (err %v)", exists, err)
	}
	exists, err = repo.Contains("osm_42_1")
	if err != nil || exists {
		t.Fatalf("Contains should report false for unknown id, got %v (err %v)", exists, err)
	}
}

func TestSegmentUpsert(t *testing.T) {
	repo := NewSegmentRepository(testDB(t))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := models.NewSegmentRecord("osm_42", 0, "", 0, 0, 0, 0.001, now)
	if err := repo.Put(rec); err != nil {
		t.Fatal(err)
	}

	rec.RecordWalk(now.Add(time.Minute))
	if err := repo.Put(rec); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.Get("osm_42_0")
	if got.TimesWalked != 2 {
		t.Fatalf("upsert should overwrite by id, timesWalked=%d", got.TimesWalked)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(all))
	}
}

func TestListFiltersAndTierCounts(t *testing.T) {
	repo := NewSegmentRepository(testDB(t))
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	walked := func(streetID string, idx, times int, mine bool) *models.SegmentRecord {
		rec := models.NewSegmentRecord(streetID, idx, "", 0, 0, 0, 0.001, now)
		rec.TimesWalked = times
		rec.DiscoveredByMe = mine
		return rec
	}

	for _, rec := range []*models.SegmentRecord{
		walked("osm_1", 0, 1, true),
		walked("osm_1", 1, 12, true),
		walked("osm_2", 0, 60, false),
	} {
		if err := repo.Put(rec); err != nil {
			t.Fatal(err)
		}
	}

	records, total, err := repo.List(models.SegmentFilter{StreetID: "osm_1"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("expected 2 osm_1 segments, got total=%d len=%d", total, len(records))
	}

	records, total, err = repo.List(models.SegmentFilter{Tier: string(models.TierMastered)})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || records[0].ID != "osm_1_1" {
		t.Fatalf("expected only the mastered segment, got %+v", records)
	}

	records, total, err = repo.List(models.SegmentFilter{Mine: "true"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("expected 2 locally walked segments, got %d", total)
	}

	counts, err := repo.CountByTier()
	if err != nil {
		t.Fatal(err)
	}
	if counts[models.TierDiscovered] != 1 || counts[models.TierMastered] != 1 || counts[models.TierLegendary] != 1 {
		t.Fatalf("unexpected tier counts: %+v", counts)
	}
}

func TestProgressRepository(t *testing.T) {
	db := testDB(t)
	repo := NewProgressRepository(db)

	// Fresh database yields a level-1 default
	p, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p.Level != 1 || p.XP != 0 {
		t.Fatalf("expected fresh level-1 progress, got %+v", p)
	}

	p.XP = 45
	p.Level = 3
	p.DiscoveryPoints = 80
	p.TotalDistanceWalkedM = 1234.5
	p.UpdatedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.Save(p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.XP != 45 || got.Level != 3 || got.DiscoveryPoints != 80 || got.TotalDistanceWalkedM != 1234.5 {
		t.Fatalf("progress not round-tripped: %+v", got)
	}
}

func TestSyncStateRepository(t *testing.T) {
	repo := NewSyncStateRepository(testDB(t))

	wm, err := repo.GetWatermark("team-a")
	if err != nil {
		t.Fatal(err)
	}
	if !wm.IsZero() {
		t.Fatalf("unknown team should have zero watermark, got %v", wm)
	}

	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.SetWatermark("team-a", want); err != nil {
		t.Fatal(err)
	}
	wm, err = repo.GetWatermark("team-a")
	if err != nil {
		t.Fatal(err)
	}
	if !wm.Equal(want) {
		t.Fatalf("expected watermark %v, got %v", want, wm)
	}

	// Upsert advances in place
	later := want.Add(time.Hour)
	if err := repo.SetWatermark("team-a", later); err != nil {
		t.Fatal(err)
	}
	wm, _ = repo.GetWatermark("team-a")
	if !wm.Equal(later) {
		t.Fatalf("expected advanced watermark %v, got %v", later, wm)
	}
}
