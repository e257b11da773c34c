// SPDX-License-Identifier: MIT

package uncertainty

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/deviation"
	"github.com/katalvlaran/gridverify/mesh"
)

// Kind tags an uncertainty estimator variant.
type Kind int

const (
	KindFactorOfSafety Kind = iota + 1
	KindGridConvergenceIndex
	KindStudentT
)

var kindNames = map[Kind]string{
	KindFactorOfSafety:       "factor_of_safety",
	KindGridConvergenceIndex: "gci",
	KindStudentT:             "student_t",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every estimator variant in declaration order.
func Kinds() []Kind { return []Kind{KindFactorOfSafety, KindGridConvergenceIndex, KindStudentT} }

// Estimator computes per-level uncertainty. The set of implementations is closed.
type Estimator interface {
	// Kind identifies the variant.
	Kind() Kind
	// Requires lists what the convergence result must provide.
	Requires() convergence.Capability
	// Compute evaluates every key of s.
	Compute(s *mesh.Series, res *convergence.Result, errs *deviation.Table) (*Table, error)

	sealed()
}

// Table holds per-key, per-level uncertainty in canonical level order.
type Table struct {
	kind    Kind
	keys    []string
	values  map[string][]float64
	factors map[string]float64
	status  map[string]error
}

// Kind returns the variant that produced t.
func (t *Table) Kind() Kind { return t.kind }

// Keys returns the keys in series order.
func (t *Table) Keys() []string { return slices.Clone(t.keys) }

// Values returns a copy of the uncertainty of key, coarsest level first.
// A key without values returns its status.
func (t *Table) Values(key string) ([]float64, error) {
	if err := t.status[key]; err != nil {
		return nil, err
	}
	v, ok := t.values[key]
	if !ok {
		return nil, fmt.Errorf("Values(%q): %w", key, ErrUnknownKey)
	}

	return slices.Clone(v), nil
}

// Factor returns the multiplier applied to key: Fs for the factor-based
// variants, the t quantile for StudentT.
func (t *Table) Factor(key string) float64 { return t.factors[key] }

// Status returns the diagnostic of key, or nil.
func (t *Table) Status(key string) error { return t.status[key] }

// computeEach runs fn over every key with its errors and fit. fn returns the
// values and factor, or a status that leaves the key without values.
func computeEach(s *mesh.Series, res *convergence.Result, errs *deviation.Table, kind Kind,
	fn func(key string, e []float64, fit convergence.KeyFit) ([]float64, float64, error),
) (*Table, error) {
	if s == nil || res == nil || errs == nil {
		return nil, ErrNilInput
	}

	keys := s.Keys()
	t := &Table{
		kind:    kind,
		keys:    keys,
		values:  make(map[string][]float64, len(keys)),
		factors: make(map[string]float64, len(keys)),
		status:  make(map[string]error),
	}
	for _, key := range keys {
		e, err := errs.Values(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		fit, err := res.Key(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		vals, factor, status := fn(key, e, fit)
		if status != nil {
			t.status[key] = status
			continue
		}
		t.values[key] = vals
		t.factors[key] = factor
	}

	return t, nil
}
