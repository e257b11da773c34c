// SPDX-License-Identifier: MIT

package verify

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/uncertainty"
)

// Model is a fully computed verification study. It is immutable.
type Model struct {
	series *mesh.Series
	fit    *convergence.Result
	rel    *deviation.Table // always relative, backs RelativeError
	errs   *deviation.Table // configured estimator, backs Error
	unc    *uncertainty.Table
	status map[string]error
	err    error
}

// Compatible reports ErrIncompatibleStrategySet when errEst or unc requires a
// capability m does not provide.
func Compatible(m convergence.Model, errEst deviation.Estimator, unc uncertainty.Estimator) error {
	if m == nil || errEst == nil || unc == nil {
		return fmt.Errorf("missing strategy: %w", ErrIncompatibleStrategySet)
	}
	provides := m.Provides()
	if missing := provides.Missing(errEst.Requires()); missing != 0 {
		return fmt.Errorf("%s error needs %s from %s model: %w", errEst.Kind(), missing, m.Kind(), ErrIncompatibleStrategySet)
	}
	if missing := provides.Missing(unc.Requires()); missing != 0 {
		return fmt.Errorf("%s uncertainty needs %s from %s model: %w", unc.Kind(), missing, m.Kind(), ErrIncompatibleStrategySet)
	}

	return nil
}

// Build normalizes raw input and computes the model.
func Build(meshIn mesh.MeshInput, respIn mesh.ResponseInput, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	if err := Compatible(o.model, o.errEst, o.unc); err != nil {
		return nil, err
	}
	s, err := mesh.Normalize(meshIn, respIn, o.meshOpts...)
	if err != nil {
		return nil, err
	}

	return compute(s, o)
}

// New computes the model for an already normalized series. Mesh options
// (WithMeshKey, WithOrientation, WithDimension, WithDuplicateTolerance) are
// ignored.
func New(s *mesh.Series, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	if err := Compatible(o.model, o.errEst, o.unc); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNilSeries
	}

	return compute(s, o)
}

func compute(s *mesh.Series, o Options) (*Model, error) {
	log := o.log.Named("verify")
	log.Debugw("building model",
		"levels", s.Len(),
		"keys", s.Keys(),
		"meshKey", s.MeshKey(),
		"orientation", s.Orientation(),
		"convergence", o.model.Kind(),
		"error", o.errEst.Kind(),
		"uncertainty", o.unc.Kind(),
	)

	fit, err := o.model.Fit(s)
	if err != nil {
		return nil, err
	}
	if o.strict {
		var bad error
		for _, key := range fit.Keys() {
			kf, _ := fit.Key(key)
			if kf.Status != nil {
				bad = multierr.Append(bad, fmt.Errorf("key %q: %w", key, kf.Status))
			}
		}
		if bad != nil {
			return nil, fmt.Errorf("%w: %w", ErrStrictConvergence, bad)
		}
	}

	errs, err := o.errEst.Compute(s, fit)
	if err != nil {
		return nil, err
	}
	rel := errs
	if errs.Kind() != deviation.KindRelative {
		if rel, err = deviation.RelativeOf(o.errEst).Compute(s, fit); err != nil {
			return nil, err
		}
	}
	unc, err := o.unc.Compute(s, fit, errs)
	if err != nil {
		return nil, err
	}

	m := &Model{
		series: s,
		fit:    fit,
		rel:    rel,
		errs:   errs,
		unc:    unc,
		status: make(map[string]error),
	}
	for _, key := range s.Keys() {
		kf, _ := fit.Key(key)
		if kf.Fallback {
			log.Warnw("order undefined, using finest value", "key", key, "levels", s.Len())
		}
		st := multierr.Combine(kf.Status, errs.Status(key), unc.Status(key))
		if rel != errs && errs.Status(key) == nil {
			st = multierr.Append(st, rel.Status(key))
		}
		if st == nil {
			continue
		}
		for _, e := range multierr.Errors(st) {
			log.Warnw("diagnostic", "key", key, "err", e)
		}
		m.status[key] = st
		m.err = multierr.Append(m.err, fmt.Errorf("key %q: %w", key, st))
	}
	log.Debugw("model built", "diagnostics", len(m.status))

	return m, nil
}

// Series returns the normalized series.
func (m *Model) Series() *mesh.Series { return m.series }

// LevelCount returns the number of mesh levels N.
func (m *Model) LevelCount() int { return m.series.Len() }

// ResponseKeys returns the response keys in input order.
func (m *Model) ResponseKeys() []string { return m.series.Keys() }

// MeshKey returns the label of the mesh values.
func (m *Model) MeshKey() string { return m.series.MeshKey() }

// MeshSizes returns the mesh values, coarsest first.
func (m *Model) MeshSizes() []float64 { return m.series.Sizes() }

// RefinementRatios returns the N−1 refinement ratios, coarsest pair first.
func (m *Model) RefinementRatios() []float64 { return m.series.RefinementRatios() }

// Strategies returns the variants the model was built with.
func (m *Model) Strategies() (convergence.Kind, deviation.Kind, uncertainty.Kind) {
	return m.fit.Kind(), m.errs.Kind(), m.unc.Kind()
}

// Fit returns the convergence fit of key.
func (m *Model) Fit(key string) (convergence.KeyFit, error) {
	if err := m.check(key); err != nil {
		return convergence.KeyFit{}, err
	}

	return m.fit.Key(key)
}

// Order returns the observed order of key and whether it is defined.
func (m *Model) Order(key string) (float64, bool) { return m.fit.Order(key) }

// Extrapolated returns the estimated mesh-independent value of key.
func (m *Model) Extrapolated(key string) (float64, error) {
	if err := m.check(key); err != nil {
		return 0, err
	}

	return m.fit.Extrapolated(key)
}

// IsFallback reports whether key used the finest-value fallback for lack of levels.
func (m *Model) IsFallback(key string) bool {
	kf, err := m.fit.Key(key)

	return err == nil && kf.Fallback
}

// RelativeError returns (f_i − f0)/f0 per level, coarsest first.
func (m *Model) RelativeError(key string) ([]float64, error) {
	if err := m.check(key); err != nil {
		return nil, err
	}

	return m.rel.Values(key)
}

// AbsRelativeError returns |RelativeError(key)|.
func (m *Model) AbsRelativeError(key string) ([]float64, error) {
	rel, err := m.RelativeError(key)
	if err != nil {
		return nil, err
	}
	for i, v := range rel {
		rel[i] = math.Abs(v)
	}

	return rel, nil
}

// Error returns the errors of the configured estimator.
func (m *Model) Error(key string) ([]float64, error) {
	if err := m.check(key); err != nil {
		return nil, err
	}

	return m.errs.Values(key)
}

// Substituted reports whether a relative error of key used the reference
// magnitude because f0 was near zero.
func (m *Model) Substituted(key string) bool {
	return m.rel.Substituted(key) || m.errs.Substituted(key)
}

// Uncertainty returns the uncertainty band per level. A key the estimator
// could not handle returns its diagnostic, e.g. uncertainty.ErrUndefinedOrder.
func (m *Model) Uncertainty(key string) ([]float64, error) {
	if err := m.check(key); err != nil {
		return nil, err
	}

	return m.unc.Values(key)
}

// UncertaintyFactor returns the factor the uncertainty estimator applied to key.
func (m *Model) UncertaintyFactor(key string) float64 { return m.unc.Factor(key) }

// Status returns every diagnostic recorded for key, or nil.
func (m *Model) Status(key string) error { return m.status[key] }

// Err returns the diagnostics of all keys combined, or nil.
func (m *Model) Err() error { return m.err }

func (m *Model) check(key string) error {
	if !m.series.Has(key) {
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}

	return nil
}
