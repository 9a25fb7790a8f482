package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://data.cityofchicago.org", cfg.SodaHost)
	assert.Equal(t, "ijzp-q8t2", cfg.SodaDataset)
	assert.Equal(t, "2018-01-01", cfg.FetchStart)
	assert.Equal(t, 250000, cfg.FetchLimit)
	assert.Equal(t, "data_files/communities.csv", cfg.CommunitiesCSV)
	assert.Equal(t, 30*time.Minute, cfg.SnapshotTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_LIMIT", "1000")
	t.Setenv("SNAPSHOT_TTL_MINUTES", "5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 1000, cfg.FetchLimit)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotTTL)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("FETCH_LIMIT", "lots")

	cfg := Load()
	assert.Equal(t, 250000, cfg.FetchLimit)
}
