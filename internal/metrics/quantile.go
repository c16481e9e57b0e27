package metrics

import (
	"fmt"
	"math"
	"sort"
)

// Quantile keeps every sample and reports the q-th quantile of the absolute
// errors using linear interpolation between order statistics.
type Quantile struct {
	name    string
	q       float64
	samples []float64
	sorted  bool
}

func NewQuantile(q float64) *Quantile {
	return &Quantile{
		name: fmt.Sprintf("p%g", q*100),
		q:    q,
	}
}

func (p *Quantile) Name() string { return p.name }

func (p *Quantile) Observe(err float64) {
	p.samples = append(p.samples, math.Abs(err))
	p.sorted = false
}

func (p *Quantile) Value() float64 {
	n := len(p.samples)
	if n == 0 {
		return 0
	}
	if !p.sorted {
		sort.Float64s(p.samples)
		p.sorted = true
	}

	pos := p.q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if hi >= n {
		hi = n - 1
	}
	frac := pos - float64(lo)
	return p.samples[lo]*(1-frac) + p.samples[hi]*frac
}

func (p *Quantile) Reset() {
	p.samples = p.samples[:0]
	p.sorted = false
}
