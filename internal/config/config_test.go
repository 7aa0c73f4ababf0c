package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, filepath.Join("user_data", "users.json"), cfg.Store.DataFile)
	assert.Equal(t, DefaultToleranceRadius, cfg.Auth.ToleranceRadius)
	assert.Equal(t, DefaultMinPoints, cfg.Auth.MinPoints)
	assert.Equal(t, DefaultMaxPoints, cfg.Auth.MaxPoints)
	assert.Equal(t, DefaultMaxAttempts, cfg.Auth.MaxAttempts)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GRAPHAUTH_ENV", "production")
	t.Setenv("GRAPHAUTH_TOLERANCE_RADIUS", "35")
	t.Setenv("GRAPHAUTH_MAX_ATTEMPTS", "5")
	t.Setenv("GRAPHAUTH_DATA_FILE", "/tmp/creds.json")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 35, cfg.Auth.ToleranceRadius)
	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, "/tmp/creds.json", cfg.Store.DataFile)
}

func TestLoadConfigBadIntFallsBack(t *testing.T) {
	t.Setenv("GRAPHAUTH_TOLERANCE_RADIUS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, DefaultToleranceRadius, cfg.Auth.ToleranceRadius)
}
