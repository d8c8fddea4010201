package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/verletsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultFrameDt  = 1.0 / 60
	DefaultFrames   = 600
	DefaultCellSize = 14.0
	DefaultBand     = 100.0
)

var (
	ErrInvalid = errors.New("config: invalid value")
	ErrPreset  = errors.New("config: unknown preset")
)

type Config struct {
	Seed             int64          `yaml:"seed"`
	Width            float64        `yaml:"width"`
	Height           float64        `yaml:"height"`
	FrameDt          float64        `yaml:"frame_dt"`
	Frames           int            `yaml:"frames"`
	Gravity          bool           `yaml:"gravity"`
	InitialParticles int            `yaml:"initial_particles"`
	CellSize         float64        `yaml:"cell_size"`
	Workers          int            `yaml:"workers"`
	Substeps         SubstepsConfig `yaml:"substeps"`
	Spawn            SpawnConfig    `yaml:"spawn"`
	Pointer          PointerConfig  `yaml:"pointer"`
	Wind             WindConfig     `yaml:"wind"`
}

type SubstepsConfig struct {
	Count     int `yaml:"count"`
	Reduced   int `yaml:"reduced"`
	Threshold int `yaml:"threshold"`
}

type SpawnConfig struct {
	RadiusMin   float64 `yaml:"radius_min"`
	RadiusMax   float64 `yaml:"radius_max"`
	VelocityMin float64 `yaml:"velocity_min"`
	VelocityMax float64 `yaml:"velocity_max"`
	BandHeight  float64 `yaml:"band_height"`
}

type PointerConfig struct {
	Radius  float64 `yaml:"radius"`
	Force   float64 `yaml:"force"`
	Scale   float64 `yaml:"scale"`
	Epsilon float64 `yaml:"epsilon"`
}

type WindConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Strength float64 `yaml:"strength"`
	Scale    float64 `yaml:"scale"`
	Speed    float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	d := sim.DefaultOptions()
	return &Config{
		Seed:             d.Seed,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		FrameDt:          DefaultFrameDt,
		Frames:           DefaultFrames,
		Gravity:          true,
		InitialParticles: 1,
		CellSize:         DefaultCellSize,
		Workers:          1,
		Substeps: SubstepsConfig{
			Count:     d.Substeps.Count,
			Reduced:   d.Substeps.Reduced,
			Threshold: d.Substeps.Threshold,
		},
		Spawn: SpawnConfig{
			RadiusMin:   d.Spawn.Radius.Min,
			RadiusMax:   d.Spawn.Radius.Max,
			VelocityMin: d.Spawn.Velocity.Min,
			VelocityMax: d.Spawn.Velocity.Max,
			BandHeight:  DefaultBand,
		},
		Pointer: PointerConfig{
			Radius:  d.Pointer.Radius,
			Force:   d.Pointer.Force,
			Scale:   d.Pointer.Scale,
			Epsilon: d.Pointer.Epsilon,
		},
		Wind: WindConfig{
			Strength: d.Wind.Strength,
			Scale:    d.Wind.Scale,
			Speed:    d.Wind.Speed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything the world relies on without checking itself.
func (c *Config) Validate() error {
	switch {
	case c.FrameDt <= 0:
		return fmt.Errorf("%w: frame_dt must be positive, got %g", ErrInvalid, c.FrameDt)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: world size must be positive, got %gx%g", ErrInvalid, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalid, c.Frames)
	case c.InitialParticles < 0:
		return fmt.Errorf("%w: initial_particles must not be negative, got %d", ErrInvalid, c.InitialParticles)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %g", ErrInvalid, c.CellSize)
	case c.Spawn.RadiusMin <= 0 || c.Spawn.RadiusMax < c.Spawn.RadiusMin:
		return fmt.Errorf("%w: radius range [%g, %g) is empty or not positive", ErrInvalid, c.Spawn.RadiusMin, c.Spawn.RadiusMax)
	case 2*c.Spawn.RadiusMax > c.CellSize:
		return fmt.Errorf("%w: cell_size %g is smaller than the largest diameter %g", ErrInvalid, c.CellSize, 2*c.Spawn.RadiusMax)
	case c.Spawn.VelocityMax < c.Spawn.VelocityMin:
		return fmt.Errorf("%w: velocity range [%g, %g) is empty", ErrInvalid, c.Spawn.VelocityMin, c.Spawn.VelocityMax)
	case c.Substeps.Count < 1 || c.Substeps.Reduced < 1:
		return fmt.Errorf("%w: substep counts must be at least 1, got %d/%d", ErrInvalid, c.Substeps.Count, c.Substeps.Reduced)
	}
	return nil
}

// Options converts c into world options logging to logger.
func (c *Config) Options(logger *slog.Logger) sim.Options {
	return sim.Options{
		Seed:     c.Seed,
		Gravity:  c.Gravity,
		CellSize: c.CellSize,
		Workers:  c.Workers,
		Substeps: sim.SubstepPolicy{
			Count:     c.Substeps.Count,
			Reduced:   c.Substeps.Reduced,
			Threshold: c.Substeps.Threshold,
		},
		Spawn: sim.SpawnOptions{
			Radius:   sim.Range{Min: c.Spawn.RadiusMin, Max: c.Spawn.RadiusMax},
			Velocity: sim.Range{Min: c.Spawn.VelocityMin, Max: c.Spawn.VelocityMax},
			Band:     c.Spawn.BandHeight,
		},
		Pointer: sim.PointerOptions{
			Radius:  c.Pointer.Radius,
			Force:   c.Pointer.Force,
			Scale:   c.Pointer.Scale,
			Epsilon: c.Pointer.Epsilon,
		},
		Wind: sim.WindOptions{
			Enabled:  c.Wind.Enabled,
			Strength: c.Wind.Strength,
			Scale:    c.Wind.Scale,
			Speed:    c.Wind.Speed,
		},
		Logger: logger,
	}
}

// RunConfig is the headless run described by c.
func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		Frames:        c.Frames,
		FrameDt:       c.FrameDt,
		Width:         c.Width,
		Height:        c.Height,
		ValidateState: true,
	}
}

// NewWorld builds a world from c and drops the initial population into it.
func (c *Config) NewWorld(logger *slog.Logger) *sim.World {
	w := sim.NewWorld(c.Options(logger))
	w.SpawnBand(c.InitialParticles, c.Width)
	return w
}
