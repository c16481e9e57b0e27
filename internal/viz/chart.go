package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cylsum/internal/sweep"
)

// errorFloor replaces exact zeros before taking logarithms.
const errorFloor = 1e-18

// Histogram plots the distribution of log10(|error|) over the given number
// of bins.
func Histogram(samples []float64, bins int, caption string) string {
	if len(samples) == 0 || bins < 1 {
		return ""
	}

	logs := make([]float64, len(samples))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range samples {
		logs[i] = math.Log10(math.Max(math.Abs(s), errorFloor))
		lo = math.Min(lo, logs[i])
		hi = math.Max(hi, logs[i])
	}

	counts := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range logs {
		idx := bins - 1
		if width > 0 {
			idx = min(int((v-lo)/width), bins-1)
		}
		counts[idx]++
	}

	return asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(max(bins, 40)),
		asciigraph.Caption(caption),
	)
}

// SweepChart plots log10 of the worst error at each sweep point.
func SweepChart(points []sweep.Point, caption string) string {
	if len(points) == 0 {
		return ""
	}

	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = math.Log10(math.Max(p.MaxAbs, errorFloor))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}
