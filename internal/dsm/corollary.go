package dsm

import (
	"errors"
	"math"
)

// NearSphericalApproximation returns the cylinder induced when two
// components of equal and opposite power are misaligned by phiDeg:
// 2·|C|·|φ|. Valid as φ → 0; the exact value is 2·|C|·|sin φ|.
func NearSphericalApproximation(power, phiDeg float64) float64 {
	return 2 * math.Abs(power) * math.Abs(deg2rad(phiDeg))
}

// Method names the formula an [Estimate] came from.
type Method string

const (
	MethodDerivative    Method = "derivative"
	MethodNearSpherical Method = "near-spherical"
)

// Estimate is a predicted change in resultant magnitude.
type Estimate struct {
	Delta  float64
	Method Method
}

// EstimateRotation predicts the change in resultant magnitude when component
// i is rotated by deltaDeg. It uses the rotational derivative and falls back
// to the near-spherical form when the resultant is degenerate. In that case
// the rest of the set cancels component i exactly, so the two-component
// corollary applies whatever the set size.
func EstimateRotation(set Set, i int, deltaDeg float64) (Estimate, error) {
	d, err := RotationalSensitivity(set, i, deltaDeg)
	switch {
	case err == nil:
		return Estimate{Delta: d, Method: MethodDerivative}, nil
	case errors.Is(err, ErrDegenerateResultant):
		return Estimate{
			Delta:  NearSphericalApproximation(set[i].Power, deltaDeg),
			Method: MethodNearSpherical,
		}, nil
	default:
		return Estimate{}, err
	}
}
