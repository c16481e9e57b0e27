package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/cylsum/internal/metrics"
)

const (
	CheckSummation   = "summation"
	CheckSensitivity = "sensitivity"
	CheckCorollary   = "corollary"
)

// Check holds the error statistics of one sub-check.
type Check struct {
	Name      string  `json:"name"`
	Trials    int     `json:"trials"`
	Skipped   int     `json:"skipped"`
	Tolerance float64 `json:"tolerance"`

	MaxAbs     float64 `json:"max_abs"`
	MeanAbs    float64 `json:"mean_abs"`
	RMS        float64 `json:"rms"`
	P95        float64 `json:"p95"`
	Exceedance float64 `json:"exceedance"`

	// MaxRelative is the largest error relative to the exact value
	// (corollary only).
	MaxRelative float64 `json:"max_relative,omitempty"`
	// BoundViolations counts sensitivity trials whose error exceeded the
	// second-order bound.
	BoundViolations int `json:"bound_violations,omitempty"`

	Samples []float64 `json:"-"`
}

// Passed reports whether the worst error stayed within tolerance.
func (c Check) Passed() bool {
	return c.Trials > 0 && c.MaxAbs <= c.Tolerance
}

// Report is the outcome of one seeded validation run.
type Report struct {
	Seed        int64         `json:"seed"`
	Summation   Check         `json:"summation"`
	Sensitivity Check         `json:"sensitivity"`
	Corollary   Check         `json:"corollary"`
	Elapsed     time.Duration `json:"elapsed"`
}

func (r *Report) Checks() []Check {
	return []Check{r.Summation, r.Sensitivity, r.Corollary}
}

func (r *Report) Passed() bool {
	for _, c := range r.Checks() {
		if c.Trials > 0 && !c.Passed() {
			return false
		}
	}
	return true
}

// Metrics flattens the report into name → value pairs for storage.
func (r *Report) Metrics() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range r.Checks() {
		out[c.Name+"_max_abs"] = c.MaxAbs
		out[c.Name+"_mean_abs"] = c.MeanAbs
		out[c.Name+"_rms"] = c.RMS
		out[c.Name+"_p95"] = c.P95
		out[c.Name+"_exceedance"] = c.Exceedance
	}
	out[CheckCorollary+"_max_relative"] = r.Corollary.MaxRelative
	out[CheckSensitivity+"_bound_violations"] = float64(r.Sensitivity.BoundViolations)
	return out
}

// String prints the three maxima in scientific notation.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Max Summation Error: %.1e\n", r.Summation.MaxAbs)
	fmt.Fprintf(&sb, "Max Sensitivity Error: %.1e\n", r.Sensitivity.MaxAbs)
	fmt.Fprintf(&sb, "Max Corollary Error: %.1e\n", r.Corollary.MaxAbs)
	return sb.String()
}

type tracker struct {
	check   Check
	metrics []metrics.Metric
	keep    bool
}

func newTracker(name string, tolerance float64, keep bool) *tracker {
	return &tracker{
		check:   Check{Name: name, Tolerance: tolerance},
		metrics: metrics.Standard(tolerance),
		keep:    keep,
	}
}

func (t *tracker) observe(err float64) {
	t.check.Trials++
	for _, m := range t.metrics {
		m.Observe(err)
	}
	if t.keep {
		t.check.Samples = append(t.check.Samples, err)
	}
}

func (t *tracker) skip() {
	t.check.Skipped++
}

func (t *tracker) result() Check {
	snap := metrics.Snapshot(t.metrics)
	c := t.check
	c.MaxAbs = snap["max_abs"]
	c.MeanAbs = snap["mean_abs"]
	c.RMS = snap["rms"]
	c.P95 = snap["p95"]
	c.Exceedance = snap["exceedance"]
	return c
}
