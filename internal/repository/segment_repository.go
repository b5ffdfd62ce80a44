package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// SegmentRepository is the sqlite-backed segment store. It satisfies
// store.SegmentStore; timestamps are persisted as unix milliseconds.
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

const segmentColumns = `id, street_id, segment_index, street_name,
	start_lat, start_lon, end_lat, end_lon,
	times_walked, first_discovered_at, last_walked_at, discovered_by_me, schema_version`

func scanSegment(scan func(dest ...interface{}) error) (*models.SegmentRecord, error) {
	var rec models.SegmentRecord
	var firstMs, lastMs int64
	var mine int

	err := scan(
		&rec.ID, &rec.StreetID, &rec.SegmentIndex, &rec.StreetName,
		&rec.StartLat, &rec.StartLon, &rec.EndLat, &rec.EndLon,
		&rec.TimesWalked, &firstMs, &lastMs, &mine, &rec.SchemaVersion,
	)
	if err != nil {
		return nil, err
	}

	rec.FirstDiscoveredAt = time.UnixMilli(firstMs).UTC()
	rec.LastWalkedAt = time.UnixMilli(lastMs).UTC()
	rec.DiscoveredByMe = mine != 0
	rec.Normalize(time.Now())
	return &rec, nil
}

// Get returns the record for id, or (nil, nil) if absent.
func (r *SegmentRepository) Get(id string) (*models.SegmentRecord, error) {
	query := "SELECT " + segmentColumns + " FROM segments WHERE id = ?"
	row := r.db.QueryRow(query, id)

	rec, err := scanSegment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get segment: %w", err)
	}
	return rec, nil
}

// Put inserts or replaces the record keyed by its id.
func (r *SegmentRepository) Put(rec *models.SegmentRecord) error {
	mine := 0
	if rec.DiscoveredByMe {
		mine = 1
	}

	query := `INSERT INTO segments (` + segmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			street_name = excluded.street_name,
			times_walked = excluded.times_walked,
			first_discovered_at = excluded.first_discovered_at,
			last_walked_at = excluded.last_walked_at,
			discovered_by_me = excluded.discovered_by_me,
			schema_version = excluded.schema_version`

	_, err := r.db.Exec(query,
		rec.ID, rec.StreetID, rec.SegmentIndex, rec.StreetName,
		rec.StartLat, rec.StartLon, rec.EndLat, rec.EndLon,
		rec.TimesWalked, rec.FirstDiscoveredAt.UnixMilli(), rec.LastWalkedAt.UnixMilli(),
		mine, rec.SchemaVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to put segment %s: %w", rec.ID, err)
	}
	return nil
}

// ListAll returns every stored record.
func (r *SegmentRepository) ListAll() ([]models.SegmentRecord, error) {
	query := "SELECT " + segmentColumns + " FROM segments ORDER BY street_id, segment_index"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var records []models.SegmentRecord
	for rows.Next() {
		rec, err := scanSegment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Contains reports whether a record with the id exists.
func (r *SegmentRepository) Contains(id string) (bool, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM segments WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check segment: %w", err)
	}
	return n > 0, nil
}

// List retrieves segment records with filtering and pagination.
func (r *SegmentRepository) List(filter models.SegmentFilter) ([]models.SegmentRecord, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StreetID != "" {
		conditions = append(conditions, "street_id = ?")
		args = append(args, filter.StreetID)
	}
	if filter.OnlyMine() {
		conditions = append(conditions, "discovered_by_me = 1")
	}
	switch models.Tier(filter.Tier) {
	case models.TierDiscovered:
		conditions = append(conditions, "times_walked < ?")
		args = append(args, models.MasteredWalks)
	case models.TierMastered:
		conditions = append(conditions, "times_walked >= ? AND times_walked < ?")
		args = append(args, models.MasteredWalks, models.LegendaryWalks)
	case models.TierLegendary:
		conditions = append(conditions, "times_walked >= ?")
		args = append(args, models.LegendaryWalks)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM segments"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count segments: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + segmentColumns + " FROM segments" + where +
		" ORDER BY last_walked_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var records []models.SegmentRecord
	for rows.Next() {
		rec, err := scanSegment(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan segment: %w", err)
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// CountByTier returns the number of stored segments in each display tier.
func (r *SegmentRepository) CountByTier() (map[models.Tier]int64, error) {
	query := `SELECT
		SUM(CASE WHEN times_walked < ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN times_walked >= ? AND times_walked < ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN times_walked >= ? THEN 1 ELSE 0 END)
		FROM segments`

	var discovered, mastered, legendary sql.NullInt64
	err := r.db.QueryRow(query,
		models.MasteredWalks, models.MasteredWalks, models.LegendaryWalks, models.LegendaryWalks,
	).Scan(&discovered, &mastered, &legendary)
	if err != nil {
		return nil, fmt.Errorf("failed to count tiers: %w", err)
	}

	return map[models.Tier]int64{
		models.TierDiscovered: discovered.Int64,
		models.TierMastered:   mastered.Int64,
		models.TierLegendary:  legendary.Int64,
	}, nil
}
