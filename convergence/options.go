// SPDX-License-Identifier: MIT

package convergence

import "math"

// Defaults (single source of truth).
const (
	// DefaultRatioTolerance is the relative spread allowed between refinement
	// ratios before a series counts as non-uniform.
	DefaultRatioTolerance = 0.01

	// DefaultMaxIterations bounds the generalized order fixed-point solve.
	DefaultMaxIterations = 100

	// DefaultSolveTolerance is the relative step at which the solve stops.
	DefaultSolveTolerance = 1e-10

	// DefaultOrderMin and DefaultOrderMax bound the power-law order search.
	DefaultOrderMin = 1e-3
	DefaultOrderMax = 10.0
)

const (
	panicRatioToleranceInvalid = "convergence: WithRatioTolerance: tolerance must be finite and non-negative"
	panicMaxIterationsInvalid  = "convergence: WithMaxIterations: iterations must be positive"
	panicSolveToleranceInvalid = "convergence: WithSolveTolerance: tolerance must be finite and positive"
	panicOrderLimitsInvalid    = "convergence: WithOrderLimits: need finite 0 < lo < hi"
)

// Option configures Richardson and PowerLaw.
type Option func(*Options)

// Options is the resolved model configuration.
type Options struct {
	ratioTol    float64
	uniformOnly bool
	maxIter     int
	solveTol    float64
	orderLo     float64
	orderHi     float64
}

// WithRatioTolerance sets the relative tolerance for uniform refinement.
func WithRatioTolerance(tol float64) Option {
	if !isFinite(tol) || tol < 0 {
		panic(panicRatioToleranceInvalid)
	}

	return func(o *Options) { o.ratioTol = tol }
}

// WithUniformRefinement makes Richardson reject non-uniform series with
// ErrNonUniformRefinement instead of solving the generalized order equation.
func WithUniformRefinement() Option {
	return func(o *Options) { o.uniformOnly = true }
}

// WithMaxIterations bounds the generalized order solve.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithSolveTolerance sets the relative convergence threshold of the order solve
// and of the power-law order search.
func WithSolveTolerance(tol float64) Option {
	if !isFinite(tol) || tol <= 0 {
		panic(panicSolveToleranceInvalid)
	}

	return func(o *Options) { o.solveTol = tol }
}

// WithOrderLimits bounds the power-law order search to [lo, hi].
func WithOrderLimits(lo, hi float64) Option {
	if !isFinite(lo) || !isFinite(hi) || lo <= 0 || hi <= lo {
		panic(panicOrderLimitsInvalid)
	}

	return func(o *Options) { o.orderLo, o.orderHi = lo, hi }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		ratioTol: DefaultRatioTolerance,
		maxIter:  DefaultMaxIterations,
		solveTol: DefaultSolveTolerance,
		orderLo:  DefaultOrderMin,
		orderHi:  DefaultOrderMax,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
