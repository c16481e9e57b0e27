package config

import (
	"sort"
)

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"quick": preset(func(c *Config) {
		c.Systems.Count = 1000
		c.Corollary.Trials = 100
	}),
	"standard": DefaultConfig(),
	"thorough": preset(func(c *Config) {
		c.Systems.Count = 100000
		c.Corollary.Trials = 10000
		c.Runs = 8
	}),
	// Sensitivity floor of 0.1 with a tolerance the second-order bound
	// supports there.
	"tight-floor": preset(func(c *Config) {
		c.Systems.SensitivityFloor = 0.1
		c.Tolerance.Sensitivity = 3e-3
	}),
	"plus-cylinder": preset(func(c *Config) {
		c.Systems.MinPower = 0
		c.Systems.MaxPower = 6
		c.Corollary.MinPower = 0.25
		c.Corollary.MaxPower = 6
	}),
	"mixed-sign": preset(func(c *Config) {
		c.Systems.MinPower = -6
		c.Systems.MaxPower = 6
		c.Systems.MaxComponents = 8
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
