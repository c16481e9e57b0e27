package dsm

import (
	"fmt"
	"math"
)

// Cylinder is one cylindrical correction: signed power in diopters and axis
// in degrees. Minus cylinders carry a negative power.
type Cylinder struct {
	Power float64
	Axis  float64
}

// Set is an ordered list of superposed cylinders.
type Set []Cylinder

// NewSet pairs powers with axes. The slices must have the same non-zero
// length and hold only finite values.
func NewSet(powers, axes []float64) (Set, error) {
	if len(powers) != len(axes) {
		return nil, fmt.Errorf("%w: %d powers but %d axes", ErrInvalidInput, len(powers), len(axes))
	}
	if len(powers) == 0 {
		return nil, fmt.Errorf("%w: empty cylinder set", ErrInvalidInput)
	}

	set := make(Set, len(powers))
	for i := range powers {
		if !finite(powers[i]) || !finite(axes[i]) {
			return nil, fmt.Errorf("%w: component %d is not finite (%v, %v)", ErrInvalidInput, i, powers[i], axes[i])
		}
		set[i] = Cylinder{Power: powers[i], Axis: axes[i]}
	}
	return set, nil
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	copy(c, s)
	return c
}

// Rotate returns a copy of the set with every axis shifted by deltaDeg.
func (s Set) Rotate(deltaDeg float64) Set {
	c := s.Clone()
	for i := range c {
		c[i].Axis += deltaDeg
	}
	return c
}

// Scale returns a copy of the set with every power multiplied by factor.
func (s Set) Scale(factor float64) Set {
	c := s.Clone()
	for i := range c {
		c[i].Power *= factor
	}
	return c
}

// RotateComponent returns a copy with component i rotated by deltaDeg.
func (s Set) RotateComponent(i int, deltaDeg float64) (Set, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	c := s.Clone()
	c[i].Axis += deltaDeg
	return c, nil
}

func (s Set) Powers() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Power
	}
	return out
}

func (s Set) Axes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Axis
	}
	return out
}

func (s Set) checkIndex(i int) error {
	if i < 0 || i >= len(s) {
		return &ComponentError{Index: i, Size: len(s), Wrapped: ErrIndexOutOfRange}
	}
	return nil
}

// Resultant is the single cylinder equivalent to a superposed set.
type Resultant struct {
	// Magnitude is C_total, never negative.
	Magnitude float64
	// Angle is half the atan2 of the doubled-angle sum, in (-90, 90].
	Angle float64
	// X and Y are the components of the net doubled-angle vector.
	X, Y float64
}

// Axis returns the resultant axis wrapped into [0, 180).
func (r Resultant) Axis() float64 {
	return NormalizeAxis(r.Angle)
}

// MinusCylinder returns the same resultant written as a minus cylinder.
func (r Resultant) MinusCylinder() Cylinder {
	if r.Magnitude == 0 {
		return Cylinder{}
	}
	return Cylinder{Power: -r.Magnitude, Axis: NormalizeAxis(r.Angle + 90)}
}

// PlusCylinder returns the resultant as a plus cylinder on [0, 180).
func (r Resultant) PlusCylinder() Cylinder {
	return Cylinder{Power: r.Magnitude, Axis: r.Axis()}
}

func (r Resultant) String() string {
	return fmt.Sprintf("%.4f x %.2f", r.Magnitude, r.Axis())
}

// NormalizeAxis wraps an axis in degrees into [0, 180).
func NormalizeAxis(deg float64) float64 {
	a := math.Mod(deg, 180)
	if a < 0 {
		a += 180
	}
	if a >= 180 {
		a = 0
	}
	return a
}

// AxisDistance is the smallest separation between two axes, in [0, 90].
func AxisDistance(a, b float64) float64 {
	d := NormalizeAxis(a - b)
	if d > 90 {
		d = 180 - d
	}
	return d
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }
