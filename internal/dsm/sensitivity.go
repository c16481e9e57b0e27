package dsm

import (
	"math"
)

// Derivative returns dC_total/dθ_i per radian of rotation of component i.
func Derivative(set Set, i int) (float64, error) {
	return derivativeFrom(Sum(set), set, i)
}

// RotationalSensitivity estimates the change in resultant magnitude when
// component i is rotated by deltaDeg, to first order. The estimate is only
// trustworthy for small rotations; see [SecondOrderBound].
//
// It fails with [ErrIndexOutOfRange] for a bad index and with
// [ErrDegenerateResultant] when the resultant magnitude is below
// [DegenerateThreshold].
func RotationalSensitivity(set Set, i int, deltaDeg float64) (float64, error) {
	return SensitivityFrom(Sum(set), set, i, deltaDeg)
}

// SensitivityFrom is RotationalSensitivity with a resultant the caller has
// already computed for set.
func SensitivityFrom(r Resultant, set Set, i int, deltaDeg float64) (float64, error) {
	d, err := derivativeFrom(r, set, i)
	if err != nil {
		return 0, err
	}
	return d * deg2rad(deltaDeg), nil
}

// Sensitivities returns the first-order change for every component rotated
// by deltaDeg in turn.
func Sensitivities(set Set, deltaDeg float64) ([]float64, error) {
	r := Sum(set)
	out := make([]float64, len(set))
	for i := range set {
		v, err := SensitivityFrom(r, set, i, deltaDeg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SecondOrderBound bounds the error of the first-order estimate for a
// rotation of deltaDeg by the Taylor remainder ½·δ²·max|C''|, with
// |C''| ≤ 4C_i²/C_total + 4|C_i|. The magnitude is taken at its smallest
// over the rotation so the bound holds across the whole step.
func SecondOrderBound(set Set, i int, deltaDeg float64) (float64, error) {
	r := Sum(set)
	if err := checkDerivative(r, set, i); err != nil {
		return 0, err
	}

	ci := math.Abs(set[i].Power)
	delta := math.Abs(deg2rad(deltaDeg))

	// The doubled-angle vector of component i moves at most 2·|C_i|·δ.
	low := r.Magnitude - 2*ci*delta
	if low < DegenerateThreshold {
		return math.Inf(1), nil
	}

	curvature := 4*ci*ci/low + 4*ci
	return 0.5 * delta * delta * curvature, nil
}

func derivativeFrom(r Resultant, set Set, i int) (float64, error) {
	if err := checkDerivative(r, set, i); err != nil {
		return 0, err
	}

	sin2, cos2 := math.Sincos(2 * deg2rad(set[i].Axis))
	return (2 * set[i].Power / r.Magnitude) * (r.Y*cos2 - r.X*sin2), nil
}

func checkDerivative(r Resultant, set Set, i int) error {
	if err := set.checkIndex(i); err != nil {
		return err
	}
	if r.Magnitude < DegenerateThreshold {
		return &ComponentError{Index: i, Size: len(set), Magnitude: r.Magnitude, Wrapped: ErrDegenerateResultant}
	}
	return nil
}
