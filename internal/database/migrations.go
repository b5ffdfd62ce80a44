package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents one versioned schema change. Migrations are embedded
// in code so the record schema is resolved once at startup rather than
// scattered through business logic.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_segments",
		SQL: `
			CREATE TABLE IF NOT EXISTS segments (
				id TEXT PRIMARY KEY,
				street_id TEXT NOT NULL,
				segment_index INTEGER NOT NULL,
				street_name TEXT NOT NULL DEFAULT '',
				start_lat REAL NOT NULL,
				start_lon REAL NOT NULL,
				end_lat REAL NOT NULL,
				end_lon REAL NOT NULL,
				times_walked INTEGER NOT NULL DEFAULT 1,
				first_discovered_at INTEGER NOT NULL,
				last_walked_at INTEGER NOT NULL,
				discovered_by_me INTEGER NOT NULL DEFAULT 0,
				schema_version INTEGER NOT NULL DEFAULT 1
			);
			CREATE INDEX IF NOT EXISTS idx_segments_street ON segments(street_id);
			CREATE INDEX IF NOT EXISTS idx_segments_walked ON segments(times_walked);
		`,
	},
	{
		Version: 2,
		Name:    "create_player_progress",
		SQL: `
			CREATE TABLE IF NOT EXISTS player_progress (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				xp INTEGER NOT NULL DEFAULT 0,
				level INTEGER NOT NULL DEFAULT 1,
				discovery_points INTEGER NOT NULL DEFAULT 0,
				total_distance_m REAL NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_sync_state",
		SQL: `
			CREATE TABLE IF NOT EXISTS sync_state (
				team_id TEXT PRIMARY KEY,
				watermark INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}
