package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/diffscale/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMinSize              = 1.0
	DefaultMaxSize              = 1000.0
	DefaultDiffusionCoefficient = 1e-14
	DefaultBaselineSize         = 10000.0
	DefaultFPS                  = 60
	DefaultRefreshEvery         = 3
	DefaultTheme                = "classic"

	ChartDiffusion   = "diffusion"
	ChartImprovement = "improvement"

	MinMaxSize = 10.0
	MaxMaxSize = 10000.0
	MinMinSize = 0.1
	MaxMinSize = 1000.0
)

// BaselineChoices are the reference sizes offered by the settings form.
var BaselineChoices = []float64{1000, 5000, 10000}

type Config struct {
	MinSize              float64 `yaml:"min_size"`
	MaxSize              float64 `yaml:"max_size"`
	DiffusionCoefficient float64 `yaml:"diffusion_coefficient"`
	BaselineSize         float64 `yaml:"baseline_size"`
	Chart                string  `yaml:"chart"`
	FPS                  int     `yaml:"fps"`
	RefreshEvery         int     `yaml:"refresh_every"`
	Theme                string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		MinSize:              DefaultMinSize,
		MaxSize:              DefaultMaxSize,
		DiffusionCoefficient: DefaultDiffusionCoefficient,
		BaselineSize:         DefaultBaselineSize,
		Chart:                ChartDiffusion,
		FPS:                  DefaultFPS,
		RefreshEvery:         DefaultRefreshEvery,
		Theme:                DefaultTheme,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Clone returns a copy safe to edit.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate applies the same limits the settings form enforces.
func (c *Config) Validate() error {
	if err := ValidateMaxSize(c.MaxSize); err != nil {
		return err
	}
	if err := ValidateMinSize(c.MinSize, c.MaxSize); err != nil {
		return err
	}
	if err := ValidateDiffusionCoefficient(c.DiffusionCoefficient); err != nil {
		return err
	}
	if err := ValidateBaselineSize(c.BaselineSize); err != nil {
		return err
	}
	if c.Chart != ChartDiffusion && c.Chart != ChartImprovement {
		return &FieldError{Field: "chart", Message: fmt.Sprintf("%q is not %q or %q", c.Chart, ChartDiffusion, ChartImprovement), Err: ErrUnknownChart}
	}
	if c.FPS <= 0 {
		return &FieldError{Field: "fps", Message: "must be positive", Err: ErrOutOfRange}
	}
	if c.RefreshEvery <= 0 {
		return &FieldError{Field: "refresh_every", Message: "must be positive", Err: ErrOutOfRange}
	}
	return nil
}

func ValidateMaxSize(v float64) error {
	if v < MinMaxSize || v > MaxMaxSize {
		return &FieldError{Field: "max_size", Message: "please enter a value between 10 and 10,000 nm", Err: ErrOutOfRange}
	}
	return nil
}

func ValidateMinSize(v, maxSize float64) error {
	if v < MinMinSize || v > MaxMinSize || v >= maxSize {
		return &FieldError{Field: "min_size", Message: "please enter a value between 0.1 and 1,000 nm (less than max size)", Err: ErrOutOfRange}
	}
	return nil
}

func ValidateDiffusionCoefficient(v float64) error {
	if v <= 0 || v >= 1 {
		return &FieldError{Field: "diffusion_coefficient", Message: "please enter a positive value less than 1 (e.g., 1e-13)", Err: ErrOutOfRange}
	}
	return nil
}

func ValidateBaselineSize(v float64) error {
	if v <= 0 {
		return &FieldError{Field: "baseline_size", Message: "must be a positive size in nm", Err: ErrOutOfRange}
	}
	return nil
}

// ValidateBaselineChoice restricts the baseline to BaselineChoices.
func ValidateBaselineChoice(v float64) error {
	if !slices.Contains(BaselineChoices, v) {
		return &FieldError{Field: "baseline_size", Message: "choose 1000, 5000 or 10000 nm", Err: ErrOutOfRange}
	}
	return nil
}

// Sweep returns the fields the stepper reads.
func (c *Config) Sweep() sim.Config {
	return sim.Config{
		MinSize:              c.MinSize,
		MaxSize:              c.MaxSize,
		DiffusionCoefficient: c.DiffusionCoefficient,
		BaselineSize:         c.BaselineSize,
	}
}
