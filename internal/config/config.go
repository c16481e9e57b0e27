package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/san-kum/cylsum/internal/validate"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset    = "standard"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultRuns      = 1
)

type Config struct {
	Seed      int64           `yaml:"seed"`
	Runs      int             `yaml:"runs"`
	Systems   SystemsConfig   `yaml:"systems"`
	Corollary CorollaryConfig `yaml:"corollary"`
	Tolerance ToleranceConfig `yaml:"tolerance"`
	Log       LogConfig       `yaml:"log"`
}

type SystemsConfig struct {
	Count            int     `yaml:"count"`
	MinComponents    int     `yaml:"min_components"`
	MaxComponents    int     `yaml:"max_components"`
	MinPower         float64 `yaml:"min_power"`
	MaxPower         float64 `yaml:"max_power"`
	MinAxis          float64 `yaml:"min_axis"`
	MaxAxis          float64 `yaml:"max_axis"`
	SensitivityFloor float64 `yaml:"sensitivity_floor"`
	PerturbationDeg  float64 `yaml:"perturbation_deg"`
}

type CorollaryConfig struct {
	Trials   int     `yaml:"trials"`
	MinPhi   float64 `yaml:"min_phi"`
	MaxPhi   float64 `yaml:"max_phi"`
	MinPower float64 `yaml:"min_power"`
	MaxPower float64 `yaml:"max_power"`
}

type ToleranceConfig struct {
	Summation   float64 `yaml:"summation"`
	Sensitivity float64 `yaml:"sensitivity"`
	Corollary   float64 `yaml:"corollary"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return FromValidate(validate.DefaultConfig())
}

// FromValidate builds a file config around validator settings.
func FromValidate(v validate.Config) *Config {
	return &Config{
		Seed: v.Seed,
		Runs: DefaultRuns,
		Systems: SystemsConfig{
			Count:            v.Systems,
			MinComponents:    v.MinComponents,
			MaxComponents:    v.MaxComponents,
			MinPower:         v.MinPower,
			MaxPower:         v.MaxPower,
			MinAxis:          v.MinAxis,
			MaxAxis:          v.MaxAxis,
			SensitivityFloor: v.SensitivityFloor,
			PerturbationDeg:  v.PerturbationDeg,
		},
		Corollary: CorollaryConfig{
			Trials:   v.CorollaryTrials,
			MinPhi:   v.CorollaryMinPhi,
			MaxPhi:   v.CorollaryMaxPhi,
			MinPower: v.CorollaryMinPower,
			MaxPower: v.CorollaryMaxPower,
		},
		Tolerance: ToleranceConfig{
			Summation:   v.Tolerances.Summation,
			Sensitivity: v.Tolerances.Sensitivity,
			Corollary:   v.Tolerances.Corollary,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// fields it changes.
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

func (c *Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs must be positive, got %d", validate.ErrInvalidConfig, c.Runs)
	}
	return c.Validator().Validate()
}

// Validator converts the file config into validator settings.
func (c *Config) Validator() validate.Config {
	return validate.Config{
		Seed:              c.Seed,
		Systems:           c.Systems.Count,
		MinComponents:     c.Systems.MinComponents,
		MaxComponents:     c.Systems.MaxComponents,
		MinPower:          c.Systems.MinPower,
		MaxPower:          c.Systems.MaxPower,
		MinAxis:           c.Systems.MinAxis,
		MaxAxis:           c.Systems.MaxAxis,
		SensitivityFloor:  c.Systems.SensitivityFloor,
		PerturbationDeg:   c.Systems.PerturbationDeg,
		CorollaryTrials:   c.Corollary.Trials,
		CorollaryMinPhi:   c.Corollary.MinPhi,
		CorollaryMaxPhi:   c.Corollary.MaxPhi,
		CorollaryMinPower: c.Corollary.MinPower,
		CorollaryMaxPower: c.Corollary.MaxPower,
		Tolerances: validate.Tolerances{
			Summation:   c.Tolerance.Summation,
			Sensitivity: c.Tolerance.Sensitivity,
			Corollary:   c.Tolerance.Corollary,
		},
	}
}

// Fingerprint identifies the sampling setup. Seed, run count and logging do
// not take part, so runs of the same experiment share a fingerprint.
func (c *Config) Fingerprint() string {
	cp := *c
	cp.Seed = 0
	cp.Runs = 0
	cp.Log = LogConfig{}

	data, err := yaml.Marshal(&cp)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
