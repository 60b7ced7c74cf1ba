package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Lanes) == 0 {
		t.Error("default config has no lanes")
	}
	if cfg.Render.MaxInstances != 50_000 {
		t.Errorf("MaxInstances = %d, want 50000", cfg.Render.MaxInstances)
	}
	if cfg.Input.ZoomSensitivity <= 0 {
		t.Error("zoom sensitivity must be positive")
	}
	if cfg.Location() != time.UTC {
		t.Error("empty timezone should resolve to UTC")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Render.MaxInstances != DefaultConfig().Render.MaxInstances {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Timezone = "America/New_York"
	cfg.Render.MaxInstances = 1234
	cfg.Input.PanStepPx = 42

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q", got.Timezone)
	}
	if got.Render.MaxInstances != 1234 {
		t.Errorf("MaxInstances = %d", got.Render.MaxInstances)
	}
	if got.Input.PanStepPx != 42 {
		t.Errorf("PanStepPx = %g", got.Input.PanStepPx)
	}
}

func TestLoadFromSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	sparse := "timezone: Europe/Amsterdam\n"
	if err := os.WriteFile(path, []byte(sparse), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Timezone != "Europe/Amsterdam" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	// Omitted limits fall back to defaults rather than zero.
	def := DefaultConfig()
	if cfg.Render.MaxInstances != def.Render.MaxInstances {
		t.Errorf("MaxInstances = %d, want default %d", cfg.Render.MaxInstances, def.Render.MaxInstances)
	}
	if cfg.Input.PanStepPx != def.Input.PanStepPx {
		t.Errorf("PanStepPx = %g, want default %g", cfg.Input.PanStepPx, def.Input.PanStepPx)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("invalid yaml should error")
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Error("unknown timezone should fall back to UTC")
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdgtest", "lcv") {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); filepath.Base(got) != "config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
}
