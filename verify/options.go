// SPDX-License-Identifier: MIT

package verify

import (
	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/logger"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
)

const (
	panicNilConvergence = "verify: WithConvergence: model must be non-nil"
	panicNilEstimator   = "verify: WithErrorEstimator: estimator must be non-nil"
	panicNilUncertainty = "verify: WithUncertainty: estimator must be non-nil"
	panicNilLogger      = "verify: WithLogger: logger must be non-nil"
)

// Option configures Build and New.
type Option func(*Options)

// Options is the resolved pipeline configuration.
type Options struct {
	meshOpts []mesh.Option
	model    convergence.Model
	errEst   deviation.Estimator
	unc      uncertainty.Estimator
	log      logger.Logger
	strict   bool
}

// WithMeshKey names the mesh column; see mesh.WithMeshKey. Build only.
func WithMeshKey(key string) Option {
	opt := mesh.WithMeshKey(key)

	return func(o *Options) { o.meshOpts = append(o.meshOpts, opt) }
}

// WithOrientation fixes the mesh orientation; see mesh.WithOrientation. Build only.
func WithOrientation(or mesh.Orientation) Option {
	opt := mesh.WithOrientation(or)

	return func(o *Options) { o.meshOpts = append(o.meshOpts, opt) }
}

// WithDimension sets the spatial dimension; see mesh.WithDimension. Build only.
func WithDimension(d int) Option {
	opt := mesh.WithDimension(d)

	return func(o *Options) { o.meshOpts = append(o.meshOpts, opt) }
}

// WithDuplicateTolerance sets the duplicate mesh tolerance; see
// mesh.WithDuplicateTolerance. Build only.
func WithDuplicateTolerance(tol float64) Option {
	opt := mesh.WithDuplicateTolerance(tol)

	return func(o *Options) { o.meshOpts = append(o.meshOpts, opt) }
}

// WithConvergence selects the convergence model.
func WithConvergence(m convergence.Model) Option {
	if m == nil {
		panic(panicNilConvergence)
	}

	return func(o *Options) { o.model = m }
}

// WithErrorEstimator selects the estimator behind Model.Error.
func WithErrorEstimator(e deviation.Estimator) Option {
	if e == nil {
		panic(panicNilEstimator)
	}

	return func(o *Options) { o.errEst = e }
}

// WithUncertainty selects the uncertainty estimator.
func WithUncertainty(u uncertainty.Estimator) Option {
	if u == nil {
		panic(panicNilUncertainty)
	}

	return func(o *Options) { o.unc = u }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.log = l }
}

// WithStrictConvergence makes any per-key convergence diagnostic fail
// construction with ErrStrictConvergence.
func WithStrictConvergence() Option {
	return func(o *Options) { o.strict = true }
}

func gatherOptions(opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.model == nil {
		o.model = convergence.NewRichardson()
	}
	if o.errEst == nil {
		o.errEst = deviation.NewRelative()
	}
	if o.unc == nil {
		o.unc = uncertainty.NewGridConvergenceIndex()
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	return o
}
