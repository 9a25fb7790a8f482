package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application-level configuration
type Config struct {
	// Server
	Port string

	// SODA data source
	SodaHost     string
	SodaDataset  string
	SodaAppToken string
	FetchStart   string // widest fetch window start, YYYY-MM-DD
	FetchLimit   int

	// Reference data
	CommunitiesCSV string

	// Snapshot cache
	SnapshotTTL time.Duration
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		SodaHost:       getEnv("SODA_HOST", "https://data.cityofchicago.org"),
		SodaDataset:    getEnv("SODA_DATASET", "ijzp-q8t2"),
		SodaAppToken:   getEnv("SODA_APP_TOKEN", ""),
		FetchStart:     getEnv("FETCH_START", "2018-01-01"),
		FetchLimit:     getEnvInt("FETCH_LIMIT", 250000),
		CommunitiesCSV: getEnv("COMMUNITIES_CSV", "data_files/communities.csv"),
		SnapshotTTL:    time.Duration(getEnvInt("SNAPSHOT_TTL_MINUTES", 30)) * time.Minute,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
