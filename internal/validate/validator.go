package validate

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/cylsum/internal/dsm"
	"github.com/san-kum/cylsum/internal/powervector"
	"go.uber.org/zap"
)

// boundSlack absorbs rounding in the difference of two summations.
const boundSlack = 1e-12

// Progress is reported while a run advances through its checks.
type Progress struct {
	Seed  int64
	Stage string
	Done  int
	Total int
}

type Option func(*Validator)

// WithLogger sets the logger used for run summaries.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithProgress registers a callback invoked about a hundred times per check.
// Under an [Ensemble] it is called from several goroutines.
func WithProgress(fn func(Progress)) Option {
	return func(v *Validator) {
		v.progress = fn
	}
}

type Validator struct {
	cfg      Config
	rng      *rand.Rand
	log      *zap.Logger
	progress func(Progress)
}

func New(cfg Config, opts ...Option) *Validator {
	v := &Validator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run executes the summation, sensitivity and corollary checks in order.
func (v *Validator) Run(ctx context.Context) (*Report, error) {
	if err := v.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	v.rng.Seed(v.cfg.Seed)

	summation, sensitivity, err := v.runSystems(ctx)
	if err != nil {
		return nil, err
	}

	corollary, err := v.runCorollary(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Seed:        v.cfg.Seed,
		Summation:   summation,
		Sensitivity: sensitivity,
		Corollary:   corollary,
		Elapsed:     time.Since(start),
	}

	v.log.Info("validation complete",
		zap.Int64("seed", report.Seed),
		zap.Float64("summation_max", summation.MaxAbs),
		zap.Float64("sensitivity_max", sensitivity.MaxAbs),
		zap.Float64("corollary_max", corollary.MaxAbs),
		zap.Bool("passed", report.Passed()),
		zap.Duration("elapsed", report.Elapsed),
	)

	return report, nil
}

// runSystems drives the summation and sensitivity checks over the same
// random sets.
func (v *Validator) runSystems(ctx context.Context) (Check, Check, error) {
	cfg := v.cfg
	sum := newTracker(CheckSummation, cfg.Tolerances.Summation, cfg.KeepSamples)
	sens := newTracker(CheckSensitivity, cfg.Tolerances.Sensitivity, cfg.KeepSamples)
	every := progressInterval(cfg.Systems)

	for n := 0; n < cfg.Systems; n++ {
		if n%every == 0 {
			if err := ctx.Err(); err != nil {
				return Check{}, Check{}, fmt.Errorf("validate: summation trial %d: %w", n, err)
			}
			v.notify(CheckSummation, n, cfg.Systems)
		}

		set := v.randomSet()
		r := dsm.Sum(set)
		sum.observe(math.Abs(r.Magnitude - powervector.Magnitude(set)))

		if r.Magnitude <= cfg.SensitivityFloor {
			sens.skip()
			continue
		}

		e, withinBound, err := v.sensitivityError(r, set)
		if err != nil {
			return Check{}, Check{}, fmt.Errorf("validate: sensitivity trial %d: %w", n, err)
		}
		if !withinBound {
			sens.check.BoundViolations++
		}
		sens.observe(e)
	}
	v.notify(CheckSummation, cfg.Systems, cfg.Systems)

	s1, s2 := sum.result(), sens.result()
	v.logCheck(s1)
	v.logCheck(s2)
	return s1, s2, nil
}

func (v *Validator) sensitivityError(r dsm.Resultant, set dsm.Set) (float64, bool, error) {
	i := v.rng.Intn(len(set))
	delta := v.cfg.PerturbationDeg

	predicted, err := dsm.SensitivityFrom(r, set, i, delta)
	if err != nil {
		return 0, false, err
	}
	bound, err := dsm.SecondOrderBound(set, i, delta)
	if err != nil {
		return 0, false, err
	}

	rotated, err := set.RotateComponent(i, delta)
	if err != nil {
		return 0, false, err
	}
	actual := dsm.Sum(rotated).Magnitude - r.Magnitude

	e := math.Abs(predicted - actual)
	return e, e <= bound+boundSlack, nil
}

func (v *Validator) runCorollary(ctx context.Context) (Check, error) {
	cfg := v.cfg
	cor := newTracker(CheckCorollary, cfg.Tolerances.Corollary, cfg.KeepSamples)
	every := progressInterval(cfg.CorollaryTrials)

	for n := 0; n < cfg.CorollaryTrials; n++ {
		if n%every == 0 {
			if err := ctx.Err(); err != nil {
				return Check{}, fmt.Errorf("validate: corollary trial %d: %w", n, err)
			}
			v.notify(CheckCorollary, n, cfg.CorollaryTrials)
		}

		power := v.uniform(cfg.CorollaryMinPower, cfg.CorollaryMaxPower)
		phi := v.uniform(cfg.CorollaryMinPhi, cfg.CorollaryMaxPhi)

		exact := dsm.Sum(dsm.Set{
			{Power: power, Axis: 0},
			{Power: -power, Axis: phi},
		}).Magnitude
		approx := dsm.NearSphericalApproximation(power, phi)

		e := math.Abs(approx - exact)
		if exact > 0 {
			cor.check.MaxRelative = math.Max(cor.check.MaxRelative, e/exact)
		}
		cor.observe(e)
	}
	v.notify(CheckCorollary, cfg.CorollaryTrials, cfg.CorollaryTrials)

	c := cor.result()
	v.logCheck(c)
	return c, nil
}

func (v *Validator) randomSet() dsm.Set {
	cfg := v.cfg
	n := cfg.MinComponents + v.rng.Intn(cfg.MaxComponents-cfg.MinComponents+1)
	set := make(dsm.Set, n)
	for i := range set {
		set[i] = dsm.Cylinder{
			Power: v.uniform(cfg.MinPower, cfg.MaxPower),
			Axis:  v.uniform(cfg.MinAxis, cfg.MaxAxis),
		}
	}
	return set
}

// uniform draws from [lo, hi).
func (v *Validator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*v.rng.Float64()
}

func (v *Validator) notify(stage string, done, total int) {
	if v.progress == nil {
		return
	}
	v.progress(Progress{Seed: v.cfg.Seed, Stage: stage, Done: done, Total: total})
}

func (v *Validator) logCheck(c Check) {
	v.log.Debug("check complete",
		zap.Int64("seed", v.cfg.Seed),
		zap.String("check", c.Name),
		zap.Int("trials", c.Trials),
		zap.Int("skipped", c.Skipped),
		zap.Float64("max_abs", c.MaxAbs),
		zap.Float64("p95", c.P95),
	)
}

func progressInterval(total int) int {
	if total < 100 {
		return 1
	}
	return total / 100
}
