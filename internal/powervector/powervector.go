// Package powervector provides the Thibos power-vector representation of
// cylindrical power, used as an independent reference for the
// double-angle summation in package dsm.
//
// A cylinder C at axis θ contributes
//
//	J0  = -C/2 · cos 2θ
//	J45 = -C/2 · sin 2θ
//
// and the cylinder magnitude of a vector is 2·sqrt(J0² + J45²).
package powervector

import (
	"math"

	"github.com/san-kum/cylsum/internal/dsm"
)

// Vector holds the astigmatic components of a power vector in diopters.
type Vector struct {
	J0  float64
	J45 float64
}

// FromCylinder converts a single cylinder.
func FromCylinder(c dsm.Cylinder) Vector {
	sin2, cos2 := math.Sincos(2 * c.Axis * math.Pi / 180)
	return Vector{
		J0:  -c.Power / 2 * cos2,
		J45: -c.Power / 2 * sin2,
	}
}

// FromSet sums the power vectors of every component in the set.
func FromSet(set dsm.Set) Vector {
	var v Vector
	for _, c := range set {
		v = v.Add(FromCylinder(c))
	}
	return v
}

func (v Vector) Add(o Vector) Vector {
	return Vector{J0: v.J0 + o.J0, J45: v.J45 + o.J45}
}

// Magnitude is the cylinder power the vector represents.
func (v Vector) Magnitude() float64 {
	return 2 * math.Hypot(v.J0, v.J45)
}

// Axis returns the minus-cylinder axis of the vector in [0, 180).
func (v Vector) Axis() float64 {
	if v.J0 == 0 && v.J45 == 0 {
		return 0
	}
	return dsm.NormalizeAxis(0.5 * math.Atan2(v.J45, v.J0) * 180 / math.Pi)
}

// Cylinder returns the vector as a minus cylinder.
func (v Vector) Cylinder() dsm.Cylinder {
	return dsm.Cylinder{Power: -v.Magnitude(), Axis: v.Axis()}
}

// Magnitude returns the reference cylinder magnitude of a set.
func Magnitude(set dsm.Set) float64 {
	return FromSet(set).Magnitude()
}

// SingleAngle adds the components as ordinary vectors at their undoubled
// axes. It is not a valid way to combine cylinders; it is kept to show how
// far it drifts from the doubled-angle result.
func SingleAngle(set dsm.Set) (magnitude, angle float64) {
	var x, y float64
	for _, c := range set {
		sin1, cos1 := math.Sincos(c.Axis * math.Pi / 180)
		x += c.Power * cos1
		y += c.Power * sin1
	}
	return math.Hypot(x, y), math.Atan2(y, x) * 180 / math.Pi
}
