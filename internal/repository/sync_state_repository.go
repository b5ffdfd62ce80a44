package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// SyncStateRepository persists per-team sync watermarks so incremental pulls
// only request records newer than the last successful merge.
type SyncStateRepository struct {
	db *sql.DB
}

// NewSyncStateRepository creates a new sync state repository
func NewSyncStateRepository(db *sql.DB) *SyncStateRepository {
	return &SyncStateRepository{db: db}
}

// GetWatermark returns the stored watermark for the team, or the zero time
// if the team has never synced.
func (r *SyncStateRepository) GetWatermark(teamID string) (time.Time, error) {
	var ms int64
	err := r.db.QueryRow("SELECT watermark FROM sync_state WHERE team_id = ?", teamID).Scan(&ms)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get watermark: %w", err)
	}
	if ms == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(ms).UTC(), nil
}

// SetWatermark upserts the watermark for the team.
func (r *SyncStateRepository) SetWatermark(teamID string, watermark time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO sync_state (team_id, watermark) VALUES (?, ?)
		ON CONFLICT(team_id) DO UPDATE SET watermark = excluded.watermark`,
		teamID, watermark.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to set watermark: %w", err)
	}
	return nil
}
