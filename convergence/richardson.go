// SPDX-License-Identifier: MIT

package convergence

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridverify/mesh"
)

// flatEps is the relative size below which a level-to-level difference is
// treated as zero.
const flatEps = 1e-14

// Richardson is the classic three-level order/extrapolation estimator.
type Richardson struct {
	opts Options
}

// NewRichardson returns a Richardson model. By default non-uniform refinement
// is handled by the generalized order solve; see WithUniformRefinement.
func NewRichardson(opts ...Option) *Richardson {
	return &Richardson{opts: gatherOptions(opts...)}
}

func (*Richardson) sealed() {}

// Kind implements Model.
func (*Richardson) Kind() Kind { return KindRichardson }

// Provides implements Model.
func (*Richardson) Provides() Capability { return CapExtrapolated | CapOrder | CapRatio }

// Fit implements Model.
func (m *Richardson) Fit(s *mesh.Series) (*Result, error) {
	return fitEach(s, m.Kind(), m.Provides(), func(_ string, vals, ratios []float64) KeyFit {
		return m.fitKey(vals, ratios)
	})
}

func (m *Richardson) fitKey(vals, ratios []float64) KeyFit {
	n := len(vals)
	if n < 3 {
		return finestFallback(vals)
	}

	f3, f2, f1 := vals[n-3], vals[n-2], vals[n-1]
	r32, r21 := ratios[n-3], ratios[n-2]
	e32, e21 := f3-f2, f2-f1

	scale := math.Max(math.Abs(f1), math.Max(math.Abs(f2), math.Abs(f3)))
	if math.Abs(e21) <= flatEps*scale {
		return degrade(vals, fmt.Errorf("f2-f1 is zero: %w", ErrNonMonotoneConvergence))
	}
	q := e32 / e21
	if q <= 0 {
		return degrade(vals, fmt.Errorf("(f3-f2)/(f2-f1)=%g is not positive: %w", q, ErrNonMonotoneConvergence))
	}

	var p float64
	if uniform(ratios, m.opts.ratioTol) {
		p = math.Log(q) / math.Log(r21)
	} else {
		if m.opts.uniformOnly {
			return degrade(vals, fmt.Errorf("ratios %v: %w", ratios, ErrNonUniformRefinement))
		}
		var err error
		p, err = solveOrder(math.Log(q), r32, r21, m.opts.maxIter, m.opts.solveTol)
		if err != nil {
			return degrade(vals, err)
		}
	}
	if !isFinite(p) || p <= 0 {
		return degrade(vals, fmt.Errorf("observed order %g is not positive: %w", p, ErrNonMonotoneConvergence))
	}

	return KeyFit{
		Order:        p,
		HasOrder:     true,
		Extrapolated: f1 + (f1-f2)/(math.Pow(r21, p)-1),
		Ratio:        r21,
	}
}

// uniform reports whether every ratio is within tol (relative) of the finest one.
func uniform(ratios []float64, tol float64) bool {
	ref := ratios[len(ratios)-1]
	for _, r := range ratios {
		if math.Abs(r-ref) > tol*ref {
			return false
		}
	}

	return true
}

// solveOrder iterates p ← (lnQ + ln((r21^p − 1)/(r32^p − 1))) / ln r21 starting
// from the uniform estimate lnQ/ln r21.
func solveOrder(lnQ, r32, r21 float64, maxIter int, tol float64) (float64, error) {
	lnR := math.Log(r21)
	p := lnQ / lnR
	for i := 0; i < maxIter; i++ {
		if !isFinite(p) || p <= 0 {
			return 0, fmt.Errorf("iteration %d: order %g: %w", i, p, ErrNonMonotoneConvergence)
		}
		next := (lnQ + math.Log((math.Pow(r21, p)-1)/(math.Pow(r32, p)-1))) / lnR
		if math.Abs(next-p) <= tol*math.Max(1, math.Abs(p)) {
			return next, nil
		}
		p = next
	}

	return 0, fmt.Errorf("after %d iterations: %w", maxIter, ErrOrderNotConverged)
}
