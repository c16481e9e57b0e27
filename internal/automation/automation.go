package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/cylsum/internal/config"
	"github.com/san-kum/cylsum/internal/validate"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of validation runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single validation in a scenario. Overrides are applied on
// top of the preset (or the default config) by key, see Overrides.
type ScenarioStep struct {
	Name      string             `yaml:"name"`
	Preset    string             `yaml:"preset"`
	Runs      int                `yaml:"runs"`
	Overrides map[string]float64 `yaml:"overrides"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step        string
	Fingerprint string
	Config      *config.Config
	Result      *validate.EnsembleResult
}

// Passed reports whether the worst run of the step stayed within tolerance.
func (s StepResult) Passed() bool {
	return s.Result != nil && s.Result.Worst.Passed()
}

var setters = map[string]func(*config.Config, float64){
	"seed":                  func(c *config.Config, v float64) { c.Seed = int64(v) },
	"systems":               func(c *config.Config, v float64) { c.Systems.Count = int(v) },
	"min_components":        func(c *config.Config, v float64) { c.Systems.MinComponents = int(v) },
	"max_components":        func(c *config.Config, v float64) { c.Systems.MaxComponents = int(v) },
	"min_power":             func(c *config.Config, v float64) { c.Systems.MinPower = v },
	"max_power":             func(c *config.Config, v float64) { c.Systems.MaxPower = v },
	"min_axis":              func(c *config.Config, v float64) { c.Systems.MinAxis = v },
	"max_axis":              func(c *config.Config, v float64) { c.Systems.MaxAxis = v },
	"sensitivity_floor":     func(c *config.Config, v float64) { c.Systems.SensitivityFloor = v },
	"perturbation_deg":      func(c *config.Config, v float64) { c.Systems.PerturbationDeg = v },
	"corollary_trials":      func(c *config.Config, v float64) { c.Corollary.Trials = int(v) },
	"corollary_min_phi":     func(c *config.Config, v float64) { c.Corollary.MinPhi = v },
	"corollary_max_phi":     func(c *config.Config, v float64) { c.Corollary.MaxPhi = v },
	"corollary_min_power":   func(c *config.Config, v float64) { c.Corollary.MinPower = v },
	"corollary_max_power":   func(c *config.Config, v float64) { c.Corollary.MaxPower = v },
	"tolerance_summation":   func(c *config.Config, v float64) { c.Tolerance.Summation = v },
	"tolerance_sensitivity": func(c *config.Config, v float64) { c.Tolerance.Sensitivity = v },
	"tolerance_corollary":   func(c *config.Config, v float64) { c.Tolerance.Corollary = v },
}

// Overrides lists the keys a step may override.
func Overrides() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve builds the config a step runs with.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	for key, v := range s.Overrides {
		set, ok := setters[key]
		if !ok {
			return nil, fmt.Errorf("unknown override %q", key)
		}
		set(cfg, v)
	}
	if s.Runs > 0 {
		cfg.Runs = s.Runs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario. Results of completed steps
// are returned alongside the error of a failing one.
func RunScenario(ctx context.Context, scenario *Scenario, log *zap.Logger) ([]StepResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		log.Info("running step",
			zap.String("scenario", scenario.Name),
			zap.String("step", name),
			zap.Int("index", i+1),
			zap.Int("of", len(scenario.Steps)),
		)

		res, err := validate.NewEnsemble(cfg.Validator(), cfg.Runs, validate.WithLogger(log)).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s) run: %w", i+1, name, err)
		}

		results = append(results, StepResult{
			Step:        name,
			Fingerprint: cfg.Fingerprint(),
			Config:      cfg,
			Result:      res,
		})
	}

	return results, nil
}

// Summary counts passing and failing steps.
func Summary(results []StepResult) (passed int, failed int) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return
}
