package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := &Config{}
	setDefaults(cfg)
	require.NoError(t, loadFromEnv(cfg))

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 42, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults
	assert.Equal(t, "development", cfg.Server.Mode)
}

func TestLoadFromEnvRejectsBadInteger(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg := &Config{}
	setDefaults(cfg)
	assert.Error(t, loadFromEnv(cfg))
}
