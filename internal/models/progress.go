package models

import "time"

// PlayerProgress is the exploration-derived player state. Invariant after
// normalization: XP is always in [0, XPForNextLevel(Level)) — overflow
// cascades into level-ups.
type PlayerProgress struct {
	XP                   int       `json:"xp" db:"xp"`
	Level                int       `json:"level" db:"level"`
	DiscoveryPoints      int       `json:"discoveryPoints" db:"discovery_points"`
	TotalDistanceWalkedM float64   `json:"totalDistanceWalkedM" db:"total_distance_m"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// XPForNextLevel returns the XP threshold to advance past the given level.
func XPForNextLevel(level int) int {
	return level * 100
}
