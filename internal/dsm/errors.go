package dsm

import (
	"errors"
	"fmt"
)

// DegenerateThreshold is the resultant magnitude below which the rotational
// derivative is not evaluated. The derivative divides by the magnitude.
const DegenerateThreshold = 1e-10

var (
	// ErrDegenerateResultant indicates a resultant too close to zero for the
	// derivative to be meaningful. Use [NearSphericalApproximation] instead.
	ErrDegenerateResultant = errors.New("dsm: resultant magnitude below degenerate threshold")

	// ErrIndexOutOfRange indicates a component index outside the set.
	ErrIndexOutOfRange = errors.New("dsm: component index out of range")

	// ErrInvalidInput indicates mismatched, empty or non-finite input.
	ErrInvalidInput = errors.New("dsm: invalid input")
)

// ComponentError wraps an error with the component it refers to.
type ComponentError struct {
	Index     int
	Size      int
	Magnitude float64
	Wrapped   error
}

func (e *ComponentError) Error() string {
	if errors.Is(e.Wrapped, ErrDegenerateResultant) {
		return fmt.Sprintf("%v (component %d, |C_total|=%.3g)", e.Wrapped, e.Index, e.Magnitude)
	}
	return fmt.Sprintf("%v (index %d, set size %d)", e.Wrapped, e.Index, e.Size)
}

func (e *ComponentError) Unwrap() error {
	return e.Wrapped
}
