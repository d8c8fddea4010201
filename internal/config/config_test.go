package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CellSize != 14 {
		t.Errorf("expected cell size 14, got %g", cfg.CellSize)
	}
	if cfg.Substeps.Count != 4 || cfg.Substeps.Reduced != 2 || cfg.Substeps.Threshold != 80000 {
		t.Errorf("unexpected substeps %+v", cfg.Substeps)
	}
	if !cfg.Gravity {
		t.Error("gravity should default on")
	}
	if cfg.Wind.Enabled {
		t.Error("wind should default off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frame dt", func(c *Config) { c.FrameDt = 0 }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"negative frames", func(c *Config) { c.Frames = -1 }},
		{"negative particles", func(c *Config) { c.InitialParticles = -5 }},
		{"zero cell", func(c *Config) { c.CellSize = 0 }},
		{"zero radius", func(c *Config) { c.Spawn.RadiusMin = 0 }},
		{"inverted radius", func(c *Config) { c.Spawn.RadiusMin, c.Spawn.RadiusMax = 5, 3 }},
		{"cell too small", func(c *Config) { c.CellSize = 10 }},
		{"inverted velocity", func(c *Config) { c.Spawn.VelocityMin = 3 }},
		{"zero substeps", func(c *Config) { c.Substeps.Count = 0 }},
		{"zero reduced", func(c *Config) { c.Substeps.Reduced = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte("initial_particles: 250\nwind:\n  enabled: true\nsubsteps:\n  count: 8\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.InitialParticles != 250 {
		t.Errorf("expected 250 particles, got %d", cfg.InitialParticles)
	}
	if !cfg.Wind.Enabled {
		t.Error("expected wind enabled")
	}
	if cfg.Substeps.Count != 8 || cfg.Substeps.Reduced != 2 {
		t.Errorf("expected substeps 8/2, got %d/%d", cfg.Substeps.Count, cfg.Substeps.Reduced)
	}
	if cfg.CellSize != DefaultCellSize {
		t.Errorf("expected default cell size kept, got %g", cfg.CellSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("frame_dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.InitialParticles = 42
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.InitialParticles != 42 || got.Seed != 7 {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("breeze")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Gravity || !cfg.Wind.Enabled {
		t.Errorf("breeze should disable gravity and enable wind")
	}

	stress, err := GetPreset("stress")
	if err != nil {
		t.Fatal(err)
	}
	if stress.InitialParticles <= stress.Substeps.Threshold {
		t.Errorf("stress preset should exceed the substep threshold")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, ErrPreset) {
		t.Errorf("expected ErrPreset, got %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg, err := GetPreset(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestNewWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialParticles = 30
	w := cfg.NewWorld(nil)

	if w.Len() != 30 {
		t.Errorf("expected 30 particles, got %d", w.Len())
	}
	for _, p := range w.Particles() {
		if p.Pos.Y >= cfg.Spawn.BandHeight || p.Pos.X >= cfg.Width {
			t.Errorf("particle spawned outside the band: %v", p.Pos)
		}
	}
}
