package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 9, cfg.Fallback.WaveExtraAttempts)
	assert.Equal(t, 1, cfg.Fallback.WaterExtraAttempts)
	assert.NotZero(t, cfg.Providers.KHOA.Timeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DIVE_MARINE_SERVER_PORT", "9090")
	t.Setenv("DIVE_MARINE_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestNewLogger_LevelParsing(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "debug", Format: "json"}}
	assert.NotNil(t, cfg.NewLogger())

	cfg = &Config{Log: LogConfig{Level: "nonsense", Format: ""}}
	assert.NotNil(t, cfg.NewLogger())
}
