// Package config handles loading and saving lcv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lcv/config.yaml
//   - Data:    ~/.local/share/lcv/ (event files)
//   - State:   ~/.local/state/lcv/ (caches)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Geddart/linearcal/pkg/model"
)

// RenderConfig holds renderer limits and layout.
type RenderConfig struct {
	MaxInstances int     `yaml:"max_instances,omitempty"` // instanced-draw cap (default 50000)
	MinWidthPx   float64 `yaml:"min_width_px,omitempty"`  // line-mode clamp (default 1)
	LaneHeight   float64 `yaml:"lane_height,omitempty"`   // device pixels (default 22)
	LaneGap      float64 `yaml:"lane_gap,omitempty"`
	Seasons      bool    `yaml:"seasons,omitempty"` // seasonal quarter bands
}

// InputConfig holds input device tuning.
type InputConfig struct {
	ZoomSensitivity float64 `yaml:"zoom_sensitivity,omitempty"` // log-space step per wheel unit
	PanStepPx       float64 `yaml:"pan_step_px,omitempty"`      // arrow-key pan step
	KeyZoomDelta    float64 `yaml:"key_zoom_delta,omitempty"`   // +/- key zoom step, in wheel units
}

// Config is the top-level configuration for lcv.
type Config struct {
	Lanes    []model.Lane `yaml:"lanes,omitempty"`
	Timezone string       `yaml:"timezone,omitempty"` // IANA name; empty means UTC
	Render   RenderConfig `yaml:"render,omitempty"`
	Input    InputConfig  `yaml:"input,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Lanes: []model.Lane{
			{Name: "events", Color: "#5b8fdb"},
			{Name: "holidays", Color: "#8fce6b"},
			{Name: "personal", Color: "#e8b44a"},
		},
		Render: RenderConfig{
			MaxInstances: 50_000,
			MinWidthPx:   1,
			LaneHeight:   22,
			LaneGap:      6,
		},
		Input: InputConfig{
			ZoomSensitivity: 0.0015,
			PanStepPx:       80,
			KeyZoomDelta:    120,
		},
	}
}

// Location resolves the configured timezone, falling back to UTC on any
// lookup failure.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ConfigDir returns the XDG config directory for lcv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lcv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lcv")
}

// DataDir returns the XDG data directory for lcv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "lcv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "lcv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Zero limits fall back to defaults so a sparse file stays usable.
	def := DefaultConfig()
	if cfg.Render.MaxInstances <= 0 {
		cfg.Render.MaxInstances = def.Render.MaxInstances
	}
	if cfg.Render.MinWidthPx <= 0 {
		cfg.Render.MinWidthPx = def.Render.MinWidthPx
	}
	if cfg.Render.LaneHeight <= 0 {
		cfg.Render.LaneHeight = def.Render.LaneHeight
	}
	if cfg.Input.ZoomSensitivity <= 0 {
		cfg.Input.ZoomSensitivity = def.Input.ZoomSensitivity
	}
	if cfg.Input.PanStepPx <= 0 {
		cfg.Input.PanStepPx = def.Input.PanStepPx
	}
	if cfg.Input.KeyZoomDelta <= 0 {
		cfg.Input.KeyZoomDelta = def.Input.KeyZoomDelta
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
