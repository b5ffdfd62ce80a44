package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// ProgressRepository persists the single-row player progress so the
// accumulator survives restarts.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Load reads the stored progress, returning a fresh level-1 state if none
// has been saved yet.
func (r *ProgressRepository) Load() (models.PlayerProgress, error) {
	var p models.PlayerProgress
	var updatedMs int64

	err := r.db.QueryRow(
		"SELECT xp, level, discovery_points, total_distance_m, updated_at FROM player_progress WHERE id = 1",
	).Scan(&p.XP, &p.Level, &p.DiscoveryPoints, &p.TotalDistanceWalkedM, &updatedMs)
	if err == sql.ErrNoRows {
		return models.PlayerProgress{Level: 1}, nil
	}
	if err != nil {
		return models.PlayerProgress{}, fmt.Errorf("failed to load progress: %w", err)
	}

	if p.Level < 1 {
		p.Level = 1
	}
	p.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return p, nil
}

// Save upserts the progress row.
func (r *ProgressRepository) Save(p models.PlayerProgress) error {
	_, err := r.db.Exec(`
		INSERT INTO player_progress (id, xp, level, discovery_points, total_distance_m, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level,
			discovery_points = excluded.discovery_points,
			total_distance_m = excluded.total_distance_m,
			updated_at = excluded.updated_at`,
		p.XP, p.Level, p.DiscoveryPoints, p.TotalDistanceWalkedM, p.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
