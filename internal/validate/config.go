package validate

import (
	"errors"
	"fmt"

	"github.com/san-kum/cylsum/internal/dsm"
)

// ErrInvalidConfig indicates sampling ranges or counts that cannot be used.
var ErrInvalidConfig = errors.New("validate: invalid config")

// Tolerances are the error levels each check is expected to stay under.
type Tolerances struct {
	Summation   float64
	Sensitivity float64
	Corollary   float64
}

type Config struct {
	Seed int64

	// Systems is the number of random cylinder sets for the summation and
	// sensitivity checks.
	Systems       int
	MinComponents int
	MaxComponents int
	MinPower      float64
	MaxPower      float64
	MinAxis       float64
	MaxAxis       float64

	// SensitivityFloor skips sets whose resultant is at or below it.
	SensitivityFloor float64
	PerturbationDeg  float64

	CorollaryTrials   int
	CorollaryMinPhi   float64
	CorollaryMaxPhi   float64
	CorollaryMinPower float64
	CorollaryMaxPower float64

	Tolerances Tolerances

	// KeepSamples retains every per-trial error in the report.
	KeepSamples bool
}

const (
	DefaultSeed             = 42
	DefaultSystems          = 10000
	DefaultCorollaryTrials  = 1000
	DefaultPerturbationDeg  = 0.1
	DefaultSensitivityFloor = 0.25
)

func DefaultConfig() Config {
	return Config{
		Seed:              DefaultSeed,
		Systems:           DefaultSystems,
		MinComponents:     2,
		MaxComponents:     5,
		MinPower:          -6,
		MaxPower:          0,
		MinAxis:           0,
		MaxAxis:           180,
		SensitivityFloor:  DefaultSensitivityFloor,
		PerturbationDeg:   DefaultPerturbationDeg,
		CorollaryTrials:   DefaultCorollaryTrials,
		CorollaryMinPhi:   0.1,
		CorollaryMaxPhi:   3.0,
		CorollaryMinPower: -6,
		CorollaryMaxPower: -0.25,
		Tolerances: Tolerances{
			Summation:   1e-8,
			Sensitivity: 1e-3,
			Corollary:   1e-3,
		},
	}
}

func (c Config) Validate() error {
	switch {
	case c.Systems < 1:
		return fmt.Errorf("%w: systems must be positive, got %d", ErrInvalidConfig, c.Systems)
	case c.CorollaryTrials < 0:
		return fmt.Errorf("%w: corollary trials must not be negative, got %d", ErrInvalidConfig, c.CorollaryTrials)
	case c.MinComponents < 1 || c.MaxComponents < c.MinComponents:
		return fmt.Errorf("%w: component range [%d, %d]", ErrInvalidConfig, c.MinComponents, c.MaxComponents)
	case c.MaxPower < c.MinPower:
		return fmt.Errorf("%w: power range [%g, %g]", ErrInvalidConfig, c.MinPower, c.MaxPower)
	case c.MaxAxis < c.MinAxis:
		return fmt.Errorf("%w: axis range [%g, %g]", ErrInvalidConfig, c.MinAxis, c.MaxAxis)
	case c.SensitivityFloor < dsm.DegenerateThreshold:
		return fmt.Errorf("%w: sensitivity floor %g is below the degenerate threshold %g",
			ErrInvalidConfig, c.SensitivityFloor, dsm.DegenerateThreshold)
	case c.PerturbationDeg == 0:
		return fmt.Errorf("%w: perturbation must be non-zero", ErrInvalidConfig)
	case c.CorollaryMaxPhi < c.CorollaryMinPhi || c.CorollaryMinPhi <= 0:
		return fmt.Errorf("%w: corollary angle range [%g, %g]", ErrInvalidConfig, c.CorollaryMinPhi, c.CorollaryMaxPhi)
	case c.CorollaryMaxPower < c.CorollaryMinPower || (c.CorollaryMinPower <= 0 && c.CorollaryMaxPower >= 0):
		return fmt.Errorf("%w: corollary power range [%g, %g] must exclude zero",
			ErrInvalidConfig, c.CorollaryMinPower, c.CorollaryMaxPower)
	}
	return nil
}
