package dsm

import (
	"fmt"
	"math"
)

// Sum superposes the set in the doubled-angle plane and converts the net
// vector back to a cylinder. It is total: an empty set, or one whose
// components cancel, yields a zero magnitude with angle 0.
func Sum(set Set) Resultant {
	var x, y float64
	for _, c := range set {
		sin2, cos2 := math.Sincos(2 * deg2rad(c.Axis))
		x += c.Power * cos2
		y += c.Power * sin2
	}
	return resultantOf(x, y)
}

// Summation is Sum over parallel slices of powers and axes.
func Summation(powers, axes []float64) (Resultant, error) {
	set, err := NewSet(powers, axes)
	if err != nil {
		return Resultant{}, fmt.Errorf("summation: %w", err)
	}
	return Sum(set), nil
}

func resultantOf(x, y float64) Resultant {
	mag := math.Hypot(x, y)
	if mag == 0 {
		return Resultant{X: x, Y: y}
	}

	angle := 0.5 * rad2deg(math.Atan2(y, x))
	// atan2 returns -π for a negative x with y == -0.
	if angle <= -90 {
		angle += 180
	}

	return Resultant{
		Magnitude: mag,
		Angle:     angle,
		X:         x,
		Y:         y,
	}
}
