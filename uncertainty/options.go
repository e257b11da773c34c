// SPDX-License-Identifier: MIT

package uncertainty

import "math"

// Defaults (single source of truth).
const (
	// DefaultGCIFactor is the grid convergence index safety factor.
	DefaultGCIFactor = 1.25

	// DefaultWellBehavedFactor and DefaultMarginalFactor are the factor-of-safety
	// policy values inside and outside the order band.
	DefaultWellBehavedFactor = 1.25
	DefaultMarginalFactor    = 3.0

	// DefaultTheoreticalOrder is the formal order of the discretization.
	DefaultTheoreticalOrder = 2.0

	// DefaultOrderBand is the relative distance from the theoretical order
	// still counted as well behaved.
	DefaultOrderBand = 0.1

	// DefaultSignificance is α of the two-sided Student-t interval.
	DefaultSignificance = 0.05
)

const (
	panicFactorInvalid           = "uncertainty: WithFactor: factor must be finite and positive"
	panicFactorsInvalid          = "uncertainty: WithFactors: factors must be finite and positive"
	panicTheoreticalOrderInvalid = "uncertainty: WithTheoreticalOrder: order must be finite and positive"
	panicOrderBandInvalid        = "uncertainty: WithOrderBand: band must be finite and non-negative"
	panicSignificanceInvalid     = "uncertainty: WithSignificance: alpha must lie in (0, 1)"
)

// Option configures an estimator. Options an estimator does not use are ignored.
type Option func(*Options)

// Options is the resolved estimator configuration.
type Options struct {
	factor      float64 // 0 means "policy" for FactorOfSafety
	wellBehaved float64
	marginal    float64
	theoretical float64
	band        float64
	alpha       float64
	normalize   bool
}

// WithFactor fixes the safety factor.
func WithFactor(fs float64) Option {
	if !isFinite(fs) || fs <= 0 {
		panic(panicFactorInvalid)
	}

	return func(o *Options) { o.factor = fs }
}

// WithFactors sets the policy factors of FactorOfSafety.
func WithFactors(wellBehaved, marginal float64) Option {
	if !isFinite(wellBehaved) || !isFinite(marginal) || wellBehaved <= 0 || marginal <= 0 {
		panic(panicFactorsInvalid)
	}

	return func(o *Options) { o.wellBehaved, o.marginal = wellBehaved, marginal }
}

// WithTheoreticalOrder sets the order the observed order is compared with.
func WithTheoreticalOrder(p float64) Option {
	if !isFinite(p) || p <= 0 {
		panic(panicTheoreticalOrderInvalid)
	}

	return func(o *Options) { o.theoretical = p }
}

// WithOrderBand sets the relative tolerance around the theoretical order.
func WithOrderBand(band float64) Option {
	if !isFinite(band) || band < 0 {
		panic(panicOrderBandInvalid)
	}

	return func(o *Options) { o.band = band }
}

// WithSignificance sets α of the Student-t interval.
func WithSignificance(alpha float64) Option {
	if !isFinite(alpha) || alpha <= 0 || alpha >= 1 {
		panic(panicSignificanceInvalid)
	}

	return func(o *Options) { o.alpha = alpha }
}

// WithNormalize makes GridConvergenceIndex divide each level's band by the
// magnitude of that level's response.
func WithNormalize() Option {
	return func(o *Options) { o.normalize = true }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		wellBehaved: DefaultWellBehavedFactor,
		marginal:    DefaultMarginalFactor,
		theoretical: DefaultTheoreticalOrder,
		band:        DefaultOrderBand,
		alpha:       DefaultSignificance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
