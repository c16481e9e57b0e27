// Package sweep quantifies how the two approximations in package dsm lose
// accuracy as the rotation angle grows.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cylsum/internal/dsm"
	"github.com/san-kum/cylsum/internal/validate"
)

// Point is the error measured at one grid value.
type Point struct {
	X           float64 `json:"x"`
	Trials      int     `json:"trials"`
	MaxAbs      float64 `json:"max_abs"`
	MeanAbs     float64 `json:"mean_abs"`
	MaxRelative float64 `json:"max_relative"`
}

type Grid struct {
	base validate.Config
}

func NewGrid(base validate.Config) *Grid {
	return &Grid{base: base}
}

// Perturbations runs the sensitivity check once per perturbation size. Every
// grid value sees the same random sets because the seed is fixed.
func (g *Grid) Perturbations(ctx context.Context, degs []float64) ([]Point, error) {
	points := make([]Point, 0, len(degs))
	for _, d := range degs {
		cfg := g.base
		cfg.PerturbationDeg = d
		cfg.CorollaryTrials = 0
		cfg.KeepSamples = false

		report, err := validate.New(cfg).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("sweep: perturbation %g: %w", d, err)
		}

		s := report.Sensitivity
		points = append(points, Point{
			X:       d,
			Trials:  s.Trials,
			MaxAbs:  s.MaxAbs,
			MeanAbs: s.MeanAbs,
		})
	}
	return points, nil
}

// Misalignments compares the near-spherical approximation with the exact
// summation of an equal and opposite pair of the given power at each angle.
func (g *Grid) Misalignments(power float64, phis []float64) []Point {
	points := make([]Point, 0, len(phis))
	for _, phi := range phis {
		exact := dsm.Sum(dsm.Set{
			{Power: power, Axis: 0},
			{Power: -power, Axis: phi},
		}).Magnitude
		e := math.Abs(dsm.NearSphericalApproximation(power, phi) - exact)

		p := Point{X: phi, Trials: 1, MaxAbs: e, MeanAbs: e}
		if exact > 0 {
			p.MaxRelative = e / exact
		}
		points = append(points, p)
	}
	return points
}

// Breakpoint returns the largest grid value whose error is within
// tolerance, scanning in order and stopping at the first failure.
func Breakpoint(points []Point, tolerance float64) (float64, bool) {
	best, found := 0.0, false
	for _, p := range points {
		if p.MaxAbs > tolerance {
			break
		}
		best, found = p.X, true
	}
	return best, found
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Logspace returns n values spaced evenly in log10 between lo and hi, both
// positive.
func Logspace(lo, hi float64, n int) []float64 {
	if lo <= 0 || hi <= 0 {
		return nil
	}
	exps := Linspace(math.Log10(lo), math.Log10(hi), n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	if n > 1 {
		exps[0], exps[n-1] = lo, hi
	}
	return exps
}
