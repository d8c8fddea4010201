package config

import (
	"fmt"
	"slices"
)

// Presets are named starting points. Each entry is applied on top of
// DefaultConfig.
var Presets = map[string]func(*Config){
	"single": func(c *Config) {
		c.InitialParticles = 1
	},
	"rain": func(c *Config) {
		c.InitialParticles = 2000
		c.Frames = 900
	},
	"dam": func(c *Config) {
		c.InitialParticles = 6000
		c.Spawn.BandHeight = c.Height / 2
		c.Spawn.VelocityMin, c.Spawn.VelocityMax = 0, 0
		c.Frames = 1200
	},
	"stress": func(c *Config) {
		c.Width, c.Height = 3200, 2400
		c.InitialParticles = 90000
		c.Spawn.BandHeight = c.Height
		c.Workers = 0
		c.Frames = 120
	},
	"breeze": func(c *Config) {
		c.InitialParticles = 800
		c.Gravity = false
		c.Wind.Enabled = true
		c.Spawn.BandHeight = c.Height
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
