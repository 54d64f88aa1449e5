package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emberwild/worldcore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "world.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeConfig(t, `
[world]
width = 20
seed = 7

[simulation]
tick_rate = "100ms"

[logging]
level = "debug"
verbose = true
`)
	cfg, err := config.Load(p)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.World.Width)
	assert.Equal(t, 50, cfg.World.Height, "unset keys keep defaults")
	assert.Equal(t, int64(7), cfg.World.Seed)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, 1000, cfg.Spawn.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Verbose)
	assert.Equal(t, 640.0, cfg.World.PixelWidth())
	assert.Equal(t, 1600.0, cfg.World.PixelHeight())
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := config.Load("../../config/world.toml")
	require.NoError(t, err)
	assert.Equal(t, 32.0, cfg.World.CellSize)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[world\nwidth = "))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[world]\ncell_size = 0.0\n"))
	assert.ErrorContains(t, err, "cell_size")

	_, err = config.Load(writeConfig(t, "[spawn]\nmax_attempts = 0\n"))
	assert.ErrorContains(t, err, "max_attempts")
}
