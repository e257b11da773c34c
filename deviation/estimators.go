// SPDX-License-Identifier: MIT

package deviation

import (
	"math"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/mesh"
)

// Relative computes (f_i − f0)/f0.
type Relative struct {
	opts Options
}

// NewRelative returns a Relative estimator.
func NewRelative(opts ...Option) *Relative {
	return &Relative{opts: gatherOptions(opts...)}
}

func (*Relative) sealed() {}

// Kind implements Estimator.
func (*Relative) Kind() Kind { return KindRelative }

// Requires implements Estimator.
func (*Relative) Requires() convergence.Capability { return convergence.CapExtrapolated }

// Compute implements Estimator.
func (e *Relative) Compute(s *mesh.Series, res *convergence.Result) (*Table, error) {
	return computeEach(s, res, e.Kind(), func(vals []float64, f0 float64) ([]float64, bool) {
		return relative(vals, f0, e.opts)
	})
}

// AbsRelative computes |f_i − f0|/|f0|.
type AbsRelative struct {
	opts Options
}

// NewAbsRelative returns an AbsRelative estimator.
func NewAbsRelative(opts ...Option) *AbsRelative {
	return &AbsRelative{opts: gatherOptions(opts...)}
}

func (*AbsRelative) sealed() {}

// Kind implements Estimator.
func (*AbsRelative) Kind() Kind { return KindAbsRelative }

// Requires implements Estimator.
func (*AbsRelative) Requires() convergence.Capability { return convergence.CapExtrapolated }

// Compute implements Estimator.
func (e *AbsRelative) Compute(s *mesh.Series, res *convergence.Result) (*Table, error) {
	return computeEach(s, res, e.Kind(), func(vals []float64, f0 float64) ([]float64, bool) {
		out, sub := relative(vals, f0, e.opts)
		for i, v := range out {
			out[i] = math.Abs(v)
		}

		return out, sub
	})
}

// RelativeOf returns the Relative estimator matching e: e itself, the signed
// counterpart of an AbsRelative with the same options, or a default Relative.
func RelativeOf(e Estimator) *Relative {
	switch v := e.(type) {
	case *Relative:
		return v
	case *AbsRelative:
		return &Relative{opts: v.opts}
	default:
		return NewRelative()
	}
}

// Absolute computes f_i − f0 in response units.
type Absolute struct{}

// NewAbsolute returns an Absolute estimator.
func NewAbsolute() *Absolute { return &Absolute{} }

func (*Absolute) sealed() {}

// Kind implements Estimator.
func (*Absolute) Kind() Kind { return KindAbsolute }

// Requires implements Estimator.
func (*Absolute) Requires() convergence.Capability { return convergence.CapExtrapolated }

// Compute implements Estimator.
func (e *Absolute) Compute(s *mesh.Series, res *convergence.Result) (*Table, error) {
	return computeEach(s, res, e.Kind(), func(vals []float64, f0 float64) ([]float64, bool) {
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = v - f0
		}

		return out, false
	})
}

func relative(vals []float64, f0 float64, o Options) ([]float64, bool) {
	den, sub := f0, false
	if math.Abs(f0) <= o.zeroThreshold {
		den, sub = o.refMagnitude, true
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = (v - f0) / den
	}

	return out, sub
}
