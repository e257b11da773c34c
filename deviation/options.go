// SPDX-License-Identifier: MIT

package deviation

import "math"

const (
	// DefaultZeroThreshold is the |f0| below which the relative error switches
	// to the reference magnitude.
	DefaultZeroThreshold = 1e-12

	// DefaultReferenceMagnitude is the substitute denominator.
	DefaultReferenceMagnitude = 1.0
)

const (
	panicZeroThresholdInvalid      = "deviation: WithZeroThreshold: threshold must be finite and positive"
	panicReferenceMagnitudeInvalid = "deviation: WithReferenceMagnitude: magnitude must be finite and positive"
)

// Option configures the relative estimators.
type Option func(*Options)

// Options is the resolved estimator configuration.
type Options struct {
	zeroThreshold float64
	refMagnitude  float64
}

// WithZeroThreshold sets the |f0| at or below which the substitution happens.
// Panics unless eps is finite and positive.
func WithZeroThreshold(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicZeroThresholdInvalid)
	}

	return func(o *Options) { o.zeroThreshold = eps }
}

// WithReferenceMagnitude sets the denominator used for a near-zero f0.
func WithReferenceMagnitude(m float64) Option {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		panic(panicReferenceMagnitudeInvalid)
	}

	return func(o *Options) { o.refMagnitude = m }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		zeroThreshold: DefaultZeroThreshold,
		refMagnitude:  DefaultReferenceMagnitude,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
