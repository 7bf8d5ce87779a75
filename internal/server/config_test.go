package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 0.0.0.0:9000\ntick_rate: 60\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 64, cfg.HistoryLimit, "unset keys keep defaults")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second/30, cfg.TickInterval())

	cfg.TickRate = 0
	assert.Equal(t, time.Second/30, cfg.TickInterval(), "nonsense rates fall back")

	cfg.TickRate = 60
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"info", log.LevelInfo},
		{"warn", log.LevelWarn},
		{"error", log.LevelError},
		{"garbage", log.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.Level(), tt.in)
	}
}
