package config

import (
	"os"

	"github.com/google/uuid"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string
	OverpassURL string
	SyncBaseURL string // Empty means teamless/offline play (no-op transport)
	DeviceID    string // Stable id of this device in the team stream
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/fogwalk.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	overpassURL := os.Getenv("OVERPASS_URL")
	if overpassURL == "" {
		overpassURL = "https://overpass-api.de/api/interpreter"
	}

	deviceID := os.Getenv("DEVICE_ID")
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	return &Config{
		Port:        port,
		DBPath:      dbPath,
		JWTSecret:   jwtSecret,
		OverpassURL: overpassURL,
		SyncBaseURL: os.Getenv("SYNC_BASE_URL"),
		DeviceID:    deviceID,
	}
}
