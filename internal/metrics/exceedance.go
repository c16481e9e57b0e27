package metrics

import (
	"math"
)

// Exceedance is the fraction of samples whose absolute error is above a
// tolerance.
type Exceedance struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewExceedance(tolerance float64) *Exceedance {
	return &Exceedance{
		name:      "exceedance",
		tolerance: tolerance,
	}
}

func (e *Exceedance) Name() string {
	return e.name
}

func (e *Exceedance) Observe(err float64) {
	e.samples++
	if math.Abs(err) > e.tolerance || math.IsNaN(err) {
		e.violations++
	}
}

func (e *Exceedance) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.violations) / float64(e.samples)
}

func (e *Exceedance) Violations() int {
	return e.violations
}

func (e *Exceedance) Reset() {
	e.violations = 0
	e.samples = 0
}
