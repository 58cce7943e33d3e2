package config

import "sort"

// Preset is a named sweep. Presentation settings keep their current values.
type Preset struct {
	Description          string
	MinSize              float64
	MaxSize              float64
	DiffusionCoefficient float64
	BaselineSize         float64
}

var Presets = map[string]Preset{
	"default": {
		Description: "1 nm to 1 µm against a 10 µm baseline",
		MinSize:     1, MaxSize: 1000, DiffusionCoefficient: 1e-14, BaselineSize: 10000,
	},
	"nanoparticle": {
		Description: "sub-nm clusters up to 100 nm in a fast medium",
		MinSize:     0.5, MaxSize: 100, DiffusionCoefficient: 1e-12, BaselineSize: 1000,
	},
	"colloid": {
		Description: "10 nm to 10 µm colloids",
		MinSize:     10, MaxSize: 10000, DiffusionCoefficient: 1e-13, BaselineSize: 10000,
	},
	"viscous": {
		Description: "slow diffusion through a dense matrix",
		MinSize:     1, MaxSize: 1000, DiffusionCoefficient: 1e-15, BaselineSize: 5000,
	},
}

// Apply copies the preset's sweep onto c.
func (p Preset) Apply(c *Config) {
	c.MinSize = p.MinSize
	c.MaxSize = p.MaxSize
	c.DiffusionCoefficient = p.DiffusionCoefficient
	c.BaselineSize = p.BaselineSize
}

// GetPreset returns the default config with the named preset applied, or
// nil if no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
