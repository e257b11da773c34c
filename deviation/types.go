// SPDX-License-Identifier: MIT

package deviation

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/gridverify/convergence"
	"github.com/katalvlaran/gridverify/mesh"
)

// Kind tags an error estimator variant.
type Kind int

const (
	KindRelative Kind = iota + 1
	KindAbsRelative
	KindAbsolute
)

var kindNames = map[Kind]string{
	KindRelative:    "relative",
	KindAbsRelative: "abs_relative",
	KindAbsolute:    "absolute",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every estimator variant in declaration order.
func Kinds() []Kind { return []Kind{KindRelative, KindAbsRelative, KindAbsolute} }

// Estimator computes per-level errors. The set of implementations is closed.
type Estimator interface {
	// Kind identifies the variant.
	Kind() Kind
	// Requires lists what the convergence result must provide.
	Requires() convergence.Capability
	// Compute evaluates every key of s against res.
	Compute(s *mesh.Series, res *convergence.Result) (*Table, error)

	sealed()
}

// Table holds per-key, per-level errors in canonical level order.
type Table struct {
	kind        Kind
	keys        []string
	values      map[string][]float64
	substituted map[string]bool
	status      map[string]error
}

// Kind returns the variant that produced t.
func (t *Table) Kind() Kind { return t.kind }

// Keys returns the keys in series order.
func (t *Table) Keys() []string { return slices.Clone(t.keys) }

// Values returns a copy of the errors of key, coarsest level first.
func (t *Table) Values(key string) ([]float64, error) {
	v, ok := t.values[key]
	if !ok {
		return nil, fmt.Errorf("Values(%q): %w", key, ErrUnknownKey)
	}

	return slices.Clone(v), nil
}

// Substituted reports whether key used the reference magnitude as denominator.
func (t *Table) Substituted(key string) bool { return t.substituted[key] }

// Status returns the diagnostic of key, or nil.
func (t *Table) Status(key string) error { return t.status[key] }

// computeEach runs fn over every key of s with its extrapolated value from res.
func computeEach(s *mesh.Series, res *convergence.Result, kind Kind,
	fn func(vals []float64, f0 float64) (out []float64, substituted bool),
) (*Table, error) {
	if s == nil || res == nil {
		return nil, ErrNilInput
	}

	keys := s.Keys()
	t := &Table{
		kind:        kind,
		keys:        keys,
		values:      make(map[string][]float64, len(keys)),
		substituted: make(map[string]bool),
		status:      make(map[string]error),
	}
	for _, key := range keys {
		vals, err := s.Values(key)
		if err != nil {
			return nil, err
		}
		f0, err := res.Extrapolated(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		out, sub := fn(vals, f0)
		t.values[key] = out
		if sub {
			t.substituted[key] = true
			t.status[key] = fmt.Errorf("key %q: |f0|=%g: %w", key, f0, ErrDivisionByExtrapolatedZero)
		}
	}

	return t, nil
}
