// SPDX-License-Identifier: MIT

package convergence

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/gridverify/mesh"
)

// Capability is a bit set of the quantities a model provides and an
// estimator requires.
type Capability uint8

const (
	// CapExtrapolated: a per-key extrapolated value.
	CapExtrapolated Capability = 1 << iota
	// CapOrder: a per-key observed order of convergence (may still be
	// undefined for individual keys at run time).
	CapOrder
	// CapRatio: refinement ratios consistent with the order.
	CapRatio
)

// Has reports whether c contains every bit of req.
func (c Capability) Has(req Capability) bool { return c&req == req }

// Missing returns the bits of req that c lacks.
func (c Capability) Missing(req Capability) Capability { return req &^ c }

// String implements fmt.Stringer, e.g. "extrapolated|order".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c&CapExtrapolated != 0 {
		parts = append(parts, "extrapolated")
	}
	if c&CapOrder != 0 {
		parts = append(parts, "order")
	}
	if c&CapRatio != 0 {
		parts = append(parts, "ratio")
	}

	return strings.Join(parts, "|")
}

// Kind tags a convergence model variant.
type Kind int

const (
	KindRichardson Kind = iota + 1
	KindFinestValue
	KindAverageValue
	KindMaximumValue
	KindMinimumValue
	KindPowerLaw
	KindPolynomial
)

var kindNames = map[Kind]string{
	KindRichardson:   "richardson",
	KindFinestValue:  "finest_value",
	KindAverageValue: "average_value",
	KindMaximumValue: "maximum_value",
	KindMinimumValue: "minimum_value",
	KindPowerLaw:     "power_law",
	KindPolynomial:   "polynomial",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every model variant in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindRichardson, KindFinestValue, KindAverageValue, KindMaximumValue,
		KindMinimumValue, KindPowerLaw, KindPolynomial,
	}
}

// Model is a discretization model. The set of implementations is closed.
type Model interface {
	// Kind identifies the variant.
	Kind() Kind
	// Provides lists what Fit results carry.
	Provides() Capability
	// Fit estimates order and extrapolated value for every key of s.
	Fit(s *mesh.Series) (*Result, error)

	sealed()
}

// KeyFit is the fitted state of one response key.
type KeyFit struct {
	Key string

	// Order is the observed order of convergence; meaningful only if HasOrder.
	Order    float64
	HasOrder bool

	// Extrapolated is the estimated mesh-independent value.
	Extrapolated float64

	// Ratio is the refinement ratio of the finest pair of levels.
	Ratio float64

	// Spread is the sample standard deviation (AverageValue only).
	Spread float64

	// Fallback is set when too few levels forced the finest-value estimate.
	Fallback bool

	// Status is nil or one of ErrNonMonotoneConvergence,
	// ErrNonUniformRefinement, ErrOrderNotConverged (possibly wrapped).
	Status error
}

// Result holds the per-key fits of one model over one series.
type Result struct {
	kind     Kind
	provides Capability
	ratios   []float64
	keys     []string
	fits     map[string]KeyFit
}

// Kind returns the variant that produced r.
func (r *Result) Kind() Kind { return r.kind }

// Provides returns the capability set of the producing model.
func (r *Result) Provides() Capability { return r.provides }

// RefinementRatios returns a copy of the series refinement ratios.
func (r *Result) RefinementRatios() []float64 { return slices.Clone(r.ratios) }

// Keys returns the fitted keys in series order.
func (r *Result) Keys() []string { return slices.Clone(r.keys) }

// Key returns the fit for key.
func (r *Result) Key(key string) (KeyFit, error) {
	fit, ok := r.fits[key]
	if !ok {
		return KeyFit{}, fmt.Errorf("Key(%q): %w", key, ErrUnknownKey)
	}

	return fit, nil
}

// Order returns the observed order for key and whether it is defined.
func (r *Result) Order(key string) (float64, bool) {
	fit, ok := r.fits[key]
	if !ok || !fit.HasOrder {
		return 0, false
	}

	return fit.Order, true
}

// Extrapolated returns the extrapolated value for key.
func (r *Result) Extrapolated(key string) (float64, error) {
	fit, err := r.Key(key)
	if err != nil {
		return 0, err
	}

	return fit.Extrapolated, nil
}

// fitEach runs fn over every key of s and assembles a Result.
// vals is coarsest first; ratios is the series refinement ratios.
func fitEach(s *mesh.Series, kind Kind, provides Capability,
	fn func(key string, vals, ratios []float64) KeyFit,
) (*Result, error) {
	if s == nil {
		return nil, ErrNilSeries
	}

	ratios := s.RefinementRatios()
	res := &Result{
		kind:     kind,
		provides: provides,
		ratios:   ratios,
		keys:     s.Keys(),
		fits:     make(map[string]KeyFit, len(s.Keys())),
	}
	for _, key := range res.keys {
		vals, err := s.Values(key)
		if err != nil {
			return nil, err
		}
		fit := fn(key, vals, ratios)
		fit.Key = key
		if fit.Ratio == 0 {
			fit.Ratio = ratios[len(ratios)-1]
		}
		res.fits[key] = fit
	}

	return res, nil
}

// finestFallback is the explicit estimate used when a model has too few levels.
func finestFallback(vals []float64) KeyFit {
	return KeyFit{Extrapolated: vals[len(vals)-1], Fallback: true}
}

// degrade records a diagnostic and falls back to order 0 (undefined) and the
// finest value.
func degrade(vals []float64, status error) KeyFit {
	return KeyFit{Extrapolated: vals[len(vals)-1], Status: status}
}
