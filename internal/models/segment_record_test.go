package models

import (
	"testing"
	"time"
)

func TestSegmentID(t *testing.T) {
	if got := SegmentID("osm_42", 0); got != "osm_42_0" {
		t.Fatalf("expected osm_42_0, got %s", got)
	}
	if got := SegmentID("osm_42", 17); got != "osm_42_17" {
		t.Fatalf("expected osm_42_17, got %s", got)
	}
}

func TestTierForWalks(t *testing.T) {
	cases := []struct {
		walks int
		want  Tier
	}{
		{1, TierDiscovered},
		{9, TierDiscovered},
		{10, TierMastered},
		{49, TierMastered},
		{50, TierLegendary},
		{500, TierLegendary},
	}
	for _, tc := range cases {
		if got := TierForWalks(tc.walks); got != tc.want {
			t.Fatalf("TierForWalks(%d) = %s, want %s", tc.walks, got, tc.want)
		}
	}
}

func TestRecordWalk(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := NewSegmentRecord("osm_1", 0, "", 0, 0, 0, 0.001, now)
	rec.DiscoveredByMe = false

	later := now.Add(time.Minute)
	rec.RecordWalk(later)
	if rec.TimesWalked != 2 || !rec.DiscoveredByMe || !rec.LastWalkedAt.Equal(later) {
		t.Fatalf("unexpected state after walk: %+v", rec)
	}

	// A walk stamped earlier must not move LastWalkedAt backwards
	rec.RecordWalk(now)
	if rec.TimesWalked != 3 || !rec.LastWalkedAt.Equal(later) {
		t.Fatalf("lastWalkedAt went backwards: %+v", rec)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := &SegmentRecord{ID: "osm_1_0", StreetID: "osm_1"}

	rec.Normalize(now)
	if rec.TimesWalked != 1 {
		t.Fatalf("walk count should default to 1, got %d", rec.TimesWalked)
	}
	if !rec.FirstDiscoveredAt.Equal(now) || !rec.LastWalkedAt.Equal(now) {
		t.Fatalf("zero timestamps should default to now: %+v", rec)
	}
	if rec.SchemaVersion != SegmentRecordSchemaVersion {
		t.Fatalf("schema version should be bumped, got %d", rec.SchemaVersion)
	}
}

func TestValid(t *testing.T) {
	now := time.Now()
	if !NewSegmentRecord("osm_1", 0, "", 0, 0, 0, 0.001, now).Valid() {
		t.Fatal("well-formed record should be valid")
	}
	if (&SegmentRecord{StreetID: "osm_1"}).Valid() {
		t.Fatal("record without id should be invalid")
	}
	if (&SegmentRecord{ID: "osm_1_0"}).Valid() {
		t.Fatal("record without street id should be invalid")
	}

	bad := NewSegmentRecord("osm_1", 0, "", 91, 0, 0, 0.001, now)
	if bad.Valid() {
		t.Fatal("out-of-range latitude should be invalid")
	}
	bad = NewSegmentRecord("osm_1", 0, "", 0, 181, 0, 0.001, now)
	if bad.Valid() {
		t.Fatal("out-of-range longitude should be invalid")
	}
}
