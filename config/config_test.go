package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 110, cfg.Breakpoint)
	assert.Equal(t, 10, cfg.Swipe.Threshold)
	assert.InDelta(t, 0.05, cfg.Swipe.MinVelocity, 0.0001)
	assert.Equal(t, 300, cfg.Transition.DurationMs)
	assert.InDelta(t, 0.3, cfg.Transition.DragDamping, 0.0001)
	assert.True(t, cfg.IsTelemetryEnabled())

	// The three panels must be laid out with chat stacked above list and
	// details above chat during slides.
	require.Len(t, cfg.Panels, 3)
	assert.Less(t, cfg.Panels["list"].ZIndex, cfg.Panels["chat"].ZIndex)
	assert.Less(t, cfg.Panels["chat"].ZIndex, cfg.Panels["details"].ZIndex)
}

func TestConfig_RoundTripsThroughTOML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Swipe.Threshold = 25
	cfg.Transition.DurationMs = 150

	path := filepath.Join(t.TempDir(), ConfigFileName)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, toml.NewEncoder(f).Encode(cfg))
	require.NoError(t, f.Close())

	loaded := DefaultConfig()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(data, loaded))

	assert.Equal(t, 25, loaded.Swipe.Threshold)
	assert.Equal(t, 150, loaded.Transition.DurationMs)
}

func TestNormalize_ClampsBadValues(t *testing.T) {
	cfg := &Config{
		Breakpoint: -1,
		Swipe:      SwipeConfig{Threshold: 0, MinVelocity: -2},
		Transition: TransitionConfig{DurationMs: 0, DragDamping: 5},
	}
	cfg.normalize()

	assert.Equal(t, 110, cfg.Breakpoint)
	assert.Equal(t, 10, cfg.Swipe.Threshold)
	assert.InDelta(t, 0.05, cfg.Swipe.MinVelocity, 0.0001)
	assert.Equal(t, 300, cfg.Transition.DurationMs)
	assert.InDelta(t, 0.3, cfg.Transition.DragDamping, 0.0001)
	assert.Len(t, cfg.Panels, 3)
}

func TestTelemetryFlag(t *testing.T) {
	off := false
	cfg := &Config{Telemetry: &off}
	assert.False(t, cfg.IsTelemetryEnabled())

	on := true
	cfg.Telemetry = &on
	assert.True(t, cfg.IsTelemetryEnabled())
}

func TestDatabasePath_OverrideWins(t *testing.T) {
	cfg := &Config{Database: "/tmp/custom.db"}
	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}
