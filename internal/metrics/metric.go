package metrics

// Metric accumulates error samples from a validation check.
type Metric interface {
	Name() string
	Observe(err float64)
	Value() float64
	Reset()
}

// Standard returns the accumulators every validation check reports.
func Standard(tolerance float64) []Metric {
	return []Metric{
		NewMaxAbs(),
		NewMeanAbs(),
		NewRMS(),
		NewQuantile(0.95),
		NewExceedance(tolerance),
	}
}

// Snapshot reads every metric into a map keyed by name.
func Snapshot(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
