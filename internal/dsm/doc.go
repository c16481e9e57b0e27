// Package dsm implements the double-angle summation method for superposed
// cylindrical corrections.
//
// A cylinder (C, θ) is mapped onto the doubled-angle plane as the vector
// C·(cos 2θ, sin 2θ). Vectors add, and the resultant is mapped back by
// taking its length and half its polar angle:
//
//   - [Sum]: resultant magnitude and axis of a [Set]
//   - [RotationalSensitivity]: first-order change of the magnitude when one
//     component is rotated
//   - [NearSphericalApproximation]: induced cylinder when two equal and
//     opposite components are misaligned by a small angle
//   - [EstimateRotation]: sensitivity with automatic fallback to the
//     near-spherical form when the resultant is degenerate
//
// # Example
//
//	set, _ := dsm.NewSet([]float64{10, 5, 7}, []float64{30, 60, 120})
//	r := dsm.Sum(set)
//	fmt.Printf("%.2f x %.1f\n", r.Magnitude, r.Axis())
//
// # Conventions
//
// Axes are in degrees and need not be normalised on input. [Resultant.Angle]
// is half of the atan2 result and lies in (-90, 90]; [Resultant.Axis] wraps
// it into [0, 180). The magnitude is never negative: a single minus cylinder
// comes back as its plus-cylinder transposition, see
// [Resultant.MinusCylinder] for the other form.
//
// Every function in this package is pure and safe for concurrent use.
package dsm
