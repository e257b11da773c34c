// SPDX-License-Identifier: MIT

package convergence

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridverify/internal/lsq"
	"github.com/katalvlaran/gridverify/mesh"
)

// scanPoints is the number of orders sampled before the golden-section refinement.
const scanPoints = 200

// invPhi is 1/φ for golden-section search.
var invPhi = (math.Sqrt(5) - 1) / 2

// PowerLaw fits f = f0 + a·h^p to every level by least squares, with p bounded
// by WithOrderLimits. With three levels the fit is exact and agrees with the
// generalized Richardson order.
type PowerLaw struct {
	opts Options
}

// NewPowerLaw returns a PowerLaw model.
func NewPowerLaw(opts ...Option) *PowerLaw {
	return &PowerLaw{opts: gatherOptions(opts...)}
}

func (*PowerLaw) sealed() {}

// Kind implements Model.
func (*PowerLaw) Kind() Kind { return KindPowerLaw }

// Provides implements Model.
func (*PowerLaw) Provides() Capability { return CapExtrapolated | CapOrder | CapRatio }

// Fit implements Model.
//
// For a fixed p the problem is linear in (f0, a), so the residual is a
// function of p alone: it is scanned on a uniform grid over [lo, hi] and the
// best bracket is refined by golden-section search. Spacings are normalized to
// the finest level for conditioning.
func (m *PowerLaw) Fit(s *mesh.Series) (*Result, error) {
	if s == nil {
		return nil, ErrNilSeries
	}
	x := s.Spacing()

	return fitEach(s, m.Kind(), m.Provides(), func(_ string, vals, _ []float64) KeyFit {
		return m.fitKey(x, vals)
	})
}

func (m *PowerLaw) fitKey(x, vals []float64) KeyFit {
	if len(vals) < 3 {
		return finestFallback(vals)
	}
	lo, hi := minMax(vals)
	if hi-lo <= flatEps*math.Max(math.Abs(lo), math.Abs(hi)) {
		return degrade(vals, fmt.Errorf("flat response: %w", ErrNonMonotoneConvergence))
	}
	if i := signChange(vals); i > 0 {
		return degrade(vals, fmt.Errorf("level differences change sign at level %d: %w", i, ErrNonMonotoneConvergence))
	}

	rss := func(p float64) float64 {
		sol, err := lsq.Solve(lsq.Vandermonde(x, 0, p), vals)
		if err != nil {
			return math.Inf(1)
		}

		return sol.RSS
	}

	step := (m.opts.orderHi - m.opts.orderLo) / float64(scanPoints-1)
	best, bestRSS := -1, math.Inf(1)
	for i := 0; i < scanPoints; i++ {
		if r := rss(m.opts.orderLo + float64(i)*step); r < bestRSS {
			best, bestRSS = i, r
		}
	}
	if best < 0 {
		return degrade(vals, fmt.Errorf("no solvable order in [%g, %g]: %w",
			m.opts.orderLo, m.opts.orderHi, ErrNonMonotoneConvergence))
	}

	a := m.opts.orderLo + float64(max(best-1, 0))*step
	b := m.opts.orderLo + float64(min(best+1, scanPoints-1))*step
	p := goldenMin(rss, a, b, m.opts.solveTol, m.opts.maxIter)

	sol, err := lsq.Solve(lsq.Vandermonde(x, 0, p), vals)
	if err != nil {
		return degrade(vals, fmt.Errorf("order %g: %v: %w", p, err, ErrNonMonotoneConvergence))
	}
	if sol.X[1] == 0 {
		return degrade(vals, fmt.Errorf("zero power-law coefficient: %w", ErrNonMonotoneConvergence))
	}
	if m.pinned(p) {
		return degrade(vals, fmt.Errorf("order %g pinned to limits [%g, %g]: %w",
			p, m.opts.orderLo, m.opts.orderHi, ErrNonMonotoneConvergence))
	}

	return KeyFit{Order: p, HasOrder: true, Extrapolated: sol.X[0]}
}

// pinned reports whether p sits on a search limit, where the residual has no
// interior minimum.
func (m *PowerLaw) pinned(p float64) bool {
	edge := func(b float64) float64 { return 10 * m.opts.solveTol * math.Max(1, math.Abs(b)) }

	return p-m.opts.orderLo <= edge(m.opts.orderLo) || m.opts.orderHi-p <= edge(m.opts.orderHi)
}

// signChange returns the first level i whose difference vals[i+1]-vals[i]
// has the opposite sign of the previous one, or 0.
func signChange(vals []float64) int {
	for i := 1; i+1 < len(vals); i++ {
		if (vals[i]-vals[i-1])*(vals[i+1]-vals[i]) < 0 {
			return i
		}
	}

	return 0
}

// goldenMin minimizes f on [a, b] by golden-section search.
func goldenMin(f func(float64) float64, a, b, tol float64, maxIter int) float64 {
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	for i := 0; i < maxIter && b-a > tol*math.Max(1, math.Abs(a)); i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}

	return (a + b) / 2
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return lo, hi
}

// Polynomial fits f = f0 + a1·h + a2·h² by least squares and reports f0.
// It estimates no single order.
type Polynomial struct{}

// NewPolynomial returns a Polynomial model.
func NewPolynomial() *Polynomial { return &Polynomial{} }

func (*Polynomial) sealed() {}

// Kind implements Model.
func (*Polynomial) Kind() Kind { return KindPolynomial }

// Provides implements Model.
func (*Polynomial) Provides() Capability { return CapExtrapolated }

// Fit implements Model.
func (m *Polynomial) Fit(s *mesh.Series) (*Result, error) {
	if s == nil {
		return nil, ErrNilSeries
	}
	x := s.Spacing()

	return fitEach(s, m.Kind(), m.Provides(), func(_ string, vals, _ []float64) KeyFit {
		if len(vals) < 3 {
			return finestFallback(vals)
		}
		sol, err := lsq.Solve(lsq.Vandermonde(x, 0, 1, 2), vals)
		if err != nil {
			return degrade(vals, fmt.Errorf("%v: %w", err, ErrNonMonotoneConvergence))
		}

		return KeyFit{Extrapolated: sol.X[0]}
	})
}
