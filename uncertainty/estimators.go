// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
)

// FactorOfSafety scales |e_i| by a fixed or order-dependent factor.
type FactorOfSafety struct {
	opts Options
}

// NewFactorOfSafety returns a FactorOfSafety estimator.
func NewFactorOfSafety(opts ...Option) *FactorOfSafety {
	return &FactorOfSafety{opts: gatherOptions(opts...)}
}

func (*FactorOfSafety) sealed() {}

// Kind implements Estimator.
func (*FactorOfSafety) Kind() Kind { return KindFactorOfSafety }

// Requires implements Estimator. An undefined order selects the marginal
// factor, so the order is not required.
func (*FactorOfSafety) Requires() convergence.Capability { return convergence.CapExtrapolated }

// Compute implements Estimator.
func (u *FactorOfSafety) Compute(s *mesh.Series, res *convergence.Result, errs *deviation.Table) (*Table, error) {
	return computeEach(s, res, errs, u.Kind(), func(_ string, e []float64, fit convergence.KeyFit) ([]float64, float64, error) {
		fs := u.factor(fit)
		out := make([]float64, len(e))
		for i, v := range e {
			out[i] = fs * math.Abs(v)
		}

		return out, fs, nil
	})
}

func (u *FactorOfSafety) factor(fit convergence.KeyFit) float64 {
	if u.opts.factor > 0 {
		return u.opts.factor
	}
	if fit.HasOrder && math.Abs(fit.Order-u.opts.theoretical) <= u.opts.band*u.opts.theoretical {
		return u.opts.wellBehaved
	}

	return u.opts.marginal
}

// GridConvergenceIndex is Roache's GCI applied level by level. With
// WithNormalize each band is divided by |f_i|.
type GridConvergenceIndex struct {
	opts Options
}

// NewGridConvergenceIndex returns a GridConvergenceIndex estimator with
// Fs = DefaultGCIFactor unless WithFactor is given.
func NewGridConvergenceIndex(opts ...Option) *GridConvergenceIndex {
	o := gatherOptions(opts...)
	if o.factor == 0 {
		o.factor = DefaultGCIFactor
	}

	return &GridConvergenceIndex{opts: o}
}

func (*GridConvergenceIndex) sealed() {}

// Kind implements Estimator.
func (*GridConvergenceIndex) Kind() Kind { return KindGridConvergenceIndex }

// Requires implements Estimator.
func (*GridConvergenceIndex) Requires() convergence.Capability {
	return convergence.CapExtrapolated | convergence.CapOrder | convergence.CapRatio
}

// Compute implements Estimator.
func (u *GridConvergenceIndex) Compute(s *mesh.Series, res *convergence.Result, errs *deviation.Table) (*Table, error) {
	if res == nil {
		return nil, ErrNilInput
	}
	ratios := res.RefinementRatios()

	return computeEach(s, res, errs, u.Kind(), func(key string, e []float64, fit convergence.KeyFit) ([]float64, float64, error) {
		if !fit.HasOrder {
			return nil, 0, fmt.Errorf("key %q: %w", key, ErrUndefinedOrder)
		}
		var raw []float64
		if u.opts.normalize {
			raw, _ = s.Values(key)
			for i, f := range raw {
				if f == 0 {
					return nil, 0, fmt.Errorf("key %q level %d: %w", key, i, ErrZeroResponse)
				}
			}
		}
		out := make([]float64, len(e))
		for i, v := range e {
			r := ratios[min(i, len(ratios)-1)]
			out[i] = u.opts.factor * math.Abs(v) / (math.Pow(r, fit.Order) - 1)
			if raw != nil {
				out[i] /= math.Abs(raw[i])
			}
		}

		return out, u.opts.factor, nil
	})
}

// StudentT reports the half-width of the two-sided (1−α) confidence interval
// of the mean error, identical for every level.
type StudentT struct {
	opts Options
}

// NewStudentT returns a StudentT estimator.
func NewStudentT(opts ...Option) *StudentT {
	return &StudentT{opts: gatherOptions(opts...)}
}

func (*StudentT) sealed() {}

// Kind implements Estimator.
func (*StudentT) Kind() Kind { return KindStudentT }

// Requires implements Estimator.
func (*StudentT) Requires() convergence.Capability { return 0 }

// Compute implements Estimator.
func (u *StudentT) Compute(s *mesh.Series, res *convergence.Result, errs *deviation.Table) (*Table, error) {
	return computeEach(s, res, errs, u.Kind(), func(_ string, e []float64, _ convergence.KeyFit) ([]float64, float64, error) {
		n := float64(len(e))
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}.Quantile(1 - u.opts.alpha/2)
		half := t * stat.StdDev(e, nil) / math.Sqrt(n)

		out := make([]float64, len(e))
		for i := range out {
			out[i] = half
		}

		return out, t, nil
	})
}
