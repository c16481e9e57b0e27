// Package validate measures the accuracy of package dsm against independent
// references with seeded Monte Carlo sampling.
//
// A run performs three checks:
//
//   - summation: DSM magnitude against the Thibos power-vector magnitude
//   - sensitivity: first-order rotational estimate against the finite
//     difference of two summations
//   - corollary: near-spherical approximation against the exact summation
//     of an equal and opposite pair
//
// The validator measures; it does not decide. Each [Check] carries its
// error statistics and the tolerance it was configured with so callers can
// assert against it.
//
//	v := validate.New(validate.DefaultConfig())
//	report, err := v.Run(ctx)
//	fmt.Print(report)
//
// A [Validator] is not safe for concurrent use. [Ensemble] runs one
// validator per seed in parallel.
package validate
