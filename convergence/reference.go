// SPDX-License-Identifier: MIT

package convergence

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/gridverify/mesh"
)

// reference models take one representative value of the data as the
// extrapolated value and never estimate an order.
type reference struct {
	kind Kind
	pick func(vals []float64) KeyFit
}

// FinestValue uses the finest-level value. Useful when only the finest
// result is trusted, or as the explicit no-extrapolation choice.
func FinestValue() Model {
	return &reference{kind: KindFinestValue, pick: func(vals []float64) KeyFit {
		return KeyFit{Extrapolated: vals[len(vals)-1]}
	}}
}

// AverageValue uses the mean of all levels, for oscillatory data without a
// trend. KeyFit.Spread holds the sample standard deviation.
func AverageValue() Model {
	return &reference{kind: KindAverageValue, pick: func(vals []float64) KeyFit {
		mean, std := stat.MeanStdDev(vals, nil)

		return KeyFit{Extrapolated: mean, Spread: std}
	}}
}

// MaximumValue uses the largest value over all levels.
func MaximumValue() Model {
	return &reference{kind: KindMaximumValue, pick: func(vals []float64) KeyFit {
		return KeyFit{Extrapolated: slices.Max(vals)}
	}}
}

// MinimumValue uses the smallest value over all levels.
func MinimumValue() Model {
	return &reference{kind: KindMinimumValue, pick: func(vals []float64) KeyFit {
		return KeyFit{Extrapolated: slices.Min(vals)}
	}}
}

func (*reference) sealed() {}

// Kind implements Model.
func (m *reference) Kind() Kind { return m.kind }

// Provides implements Model.
func (*reference) Provides() Capability { return CapExtrapolated }

// Fit implements Model.
func (m *reference) Fit(s *mesh.Series) (*Result, error) {
	return fitEach(s, m.kind, m.Provides(), func(_ string, vals, _ []float64) KeyFit {
		return m.pick(vals)
	})
}
