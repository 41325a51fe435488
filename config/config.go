package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/helpdeck/helpdeck/log"
)

const ConfigFileName = "config.toml"

// GetConfigDir returns the path to the application's configuration directory,
// XDG-compliant ~/.config/helpdeck/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "helpdeck"), nil
}

// SwipeConfig tunes the gesture recognizer. Distances are terminal cells,
// velocities cells per millisecond.
type SwipeConfig struct {
	// Threshold is the horizontal travel beyond which a drag always commits.
	Threshold int `toml:"threshold"`
	// MinVelocity lets a short flick commit when it is fast enough.
	MinVelocity float64 `toml:"min_velocity"`
	// EnableHapticFeedback rings the terminal bell on committed swipes.
	EnableHapticFeedback bool `toml:"enable_haptic_feedback"`
}

// TransitionConfig tunes committed panel transitions.
type TransitionConfig struct {
	// DurationMs is how long the transition lock is held after a commit.
	DurationMs int `toml:"duration_ms"`
	// DragDamping scales the cosmetic panel shift during an uncommitted
	// drag. 0.3 means the panel follows the pointer at a third of its speed.
	DragDamping float64 `toml:"drag_damping"`
	// HapticFeedback rings the bell on programmatic navigations too.
	HapticFeedback bool `toml:"haptic_feedback"`
}

// PanelConfig is the static per-panel layout in the wide three-column mode.
type PanelConfig struct {
	// Width is the fraction of the terminal width the panel gets.
	Width float64 `toml:"width"`
	// ZIndex orders overlapping panels during slide transitions.
	ZIndex int `toml:"z_index"`
}

// Config is the persistent application configuration, read once at startup.
type Config struct {
	// Breakpoint is the terminal width (columns) below which the three-pane
	// layout collapses to the single-pane navigation engine.
	Breakpoint int `toml:"breakpoint"`

	Swipe      SwipeConfig            `toml:"swipe"`
	Transition TransitionConfig       `toml:"transition"`
	Panels     map[string]PanelConfig `toml:"panels"`

	// DatabasePath overrides the default conversation store location.
	Database string `toml:"database"`

	// Telemetry enables crash reporting. Nil means enabled.
	Telemetry *bool `toml:"telemetry"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Breakpoint: 110,
		Swipe: SwipeConfig{
			Threshold:            10,
			MinVelocity:          0.05,
			EnableHapticFeedback: true,
		},
		Transition: TransitionConfig{
			DurationMs:     300,
			DragDamping:    0.3,
			HapticFeedback: true,
		},
		Panels: map[string]PanelConfig{
			"list":    {Width: 0.28, ZIndex: 1},
			"chat":    {Width: 0.44, ZIndex: 2},
			"details": {Width: 0.28, ZIndex: 3},
		},
	}
}

// LoadConfig loads the configuration from disk, falling back to defaults on
// any error. Config problems are never fatal; a readable default beats a
// startup failure.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config dir: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}
		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	cfg.normalize()
	return cfg
}

// SaveConfig writes the configuration to disk.
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(filepath.Join(configDir, ConfigFileName))
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// normalize clamps nonsensical user edits back into working ranges.
func (c *Config) normalize() {
	if c.Breakpoint <= 0 {
		c.Breakpoint = 110
	}
	if c.Swipe.Threshold <= 0 {
		c.Swipe.Threshold = 10
	}
	if c.Swipe.MinVelocity <= 0 {
		c.Swipe.MinVelocity = 0.05
	}
	if c.Transition.DurationMs <= 0 {
		c.Transition.DurationMs = 300
	}
	if c.Transition.DragDamping <= 0 || c.Transition.DragDamping > 1 {
		c.Transition.DragDamping = 0.3
	}
	if len(c.Panels) == 0 {
		c.Panels = DefaultConfig().Panels
	}
}

// IsTelemetryEnabled returns whether crash reporting is on (default true).
func (c *Config) IsTelemetryEnabled() bool {
	if c.Telemetry == nil {
		return true
	}
	return *c.Telemetry
}

// DatabasePath resolves the conversation store location.
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "helpdeck.db"), nil
}
