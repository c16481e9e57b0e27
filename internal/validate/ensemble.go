package validate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs the same configuration over consecutive seeds.
type Ensemble struct {
	cfg     Config
	numRuns int
	opts    []Option
	limit   int
}

func NewEnsemble(cfg Config, numRuns int, opts ...Option) *Ensemble {
	return &Ensemble{
		cfg:     cfg,
		numRuns: numRuns,
		opts:    opts,
		limit:   runtime.GOMAXPROCS(0),
	}
}

// SetLimit caps the number of runs in flight. n < 1 means no cap.
func (e *Ensemble) SetLimit(n int) {
	e.limit = n
}

// EnsembleResult holds every run in seed order plus the worst case over all
// runs.
type EnsembleResult struct {
	Reports []*Report
	Worst   Report
}

func (e *Ensemble) Run(ctx context.Context) (*EnsembleResult, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	reports := make([]*Report, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := 0; i < e.numRuns; i++ {
		cfg := e.cfg
		cfg.Seed = e.cfg.Seed + int64(i)

		g.Go(func() error {
			r, err := New(cfg, e.opts...).Run(ctx)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &EnsembleResult{
		Reports: reports,
		Worst:   worstOf(e.cfg.Seed, reports),
	}, nil
}

// worstOf merges reports keeping the largest error statistics and summing
// trial counts. Samples are not merged.
func worstOf(seed int64, reports []*Report) Report {
	w := Report{Seed: seed}
	for _, r := range reports {
		w.Summation = mergeCheck(w.Summation, r.Summation)
		w.Sensitivity = mergeCheck(w.Sensitivity, r.Sensitivity)
		w.Corollary = mergeCheck(w.Corollary, r.Corollary)
		if r.Elapsed > w.Elapsed {
			w.Elapsed = r.Elapsed
		}
	}
	return w
}

func mergeCheck(a, b Check) Check {
	out := Check{
		Name:            b.Name,
		Tolerance:       b.Tolerance,
		Trials:          a.Trials + b.Trials,
		Skipped:         a.Skipped + b.Skipped,
		BoundViolations: a.BoundViolations + b.BoundViolations,
	}
	out.MaxAbs = max(a.MaxAbs, b.MaxAbs)
	out.MeanAbs = max(a.MeanAbs, b.MeanAbs)
	out.RMS = max(a.RMS, b.RMS)
	out.P95 = max(a.P95, b.P95)
	out.Exceedance = max(a.Exceedance, b.Exceedance)
	out.MaxRelative = max(a.MaxRelative, b.MaxRelative)
	return out
}
