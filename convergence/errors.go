// SPDX-License-Identifier: MIT

package convergence

import "errors"

var (
	// ErrNilSeries indicates Fit was called without a series.
	ErrNilSeries = errors.New("convergence: nil series")

	// ErrUnknownKey indicates a lookup of a key the result does not hold.
	ErrUnknownKey = errors.New("convergence: unknown response key")

	// ErrNonUniformRefinement marks a key whose refinement ratios differ beyond
	// the configured tolerance while the model requires a constant ratio.
	ErrNonUniformRefinement = errors.New("convergence: non-uniform refinement ratio")

	// ErrNonMonotoneConvergence marks a key whose order formula is ill-posed:
	// zero or sign-changing differences, or a non-positive order. The key
	// degrades to order 0 (undefined) and the finest value.
	ErrNonMonotoneConvergence = errors.New("convergence: non-monotone convergence")

	// ErrOrderNotConverged marks a key whose generalized order solve did not
	// converge within the iteration budget.
	ErrOrderNotConverged = errors.New("convergence: order solve did not converge")
)
