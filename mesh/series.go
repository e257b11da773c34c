// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"math"
	"slices"
)

// Series is the canonical grid-study table: mesh indicators ordered coarsest
// to finest and response columns aligned to them. Build one with Normalize.
type Series struct {
	sizes       []float64
	meshKey     string
	orientation Orientation
	dimension   int
	keys        []string
	data        map[string][]float64
}

// Len returns the number of mesh levels.
func (s *Series) Len() int { return len(s.sizes) }

// MeshKey returns the label the mesh values were supplied under.
func (s *Series) MeshKey() string { return s.meshKey }

// Orientation reports whether Sizes holds sizes or densities.
func (s *Series) Orientation() Orientation { return s.orientation }

// Dimension returns the spatial dimension used for density spacing.
func (s *Series) Dimension() int { return s.dimension }

// Sizes returns a copy of the mesh indicators, coarsest first.
func (s *Series) Sizes() []float64 { return slices.Clone(s.sizes) }

// Keys returns the response keys in input order.
func (s *Series) Keys() []string { return slices.Clone(s.keys) }

// Has reports whether key is a response key of s.
func (s *Series) Has(key string) bool {
	_, ok := s.data[key]

	return ok
}

// Values returns a copy of the response column for key, coarsest first.
func (s *Series) Values(key string) ([]float64, error) {
	col, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("Values(%q): %w", key, ErrUnknownKey)
	}

	return slices.Clone(col), nil
}

// Finest returns the response value at the finest level for key.
func (s *Series) Finest(key string) (float64, error) {
	col, ok := s.data[key]
	if !ok {
		return 0, fmt.Errorf("Finest(%q): %w", key, ErrUnknownKey)
	}

	return col[len(col)-1], nil
}

// Spacing returns the equivalent mesh spacing of every level normalized so
// the finest level is 1. Sizes map to h/h_finest; densities map to
// (d_finest/d)^(1/dimension). Values decrease strictly from coarsest to finest.
func (s *Series) Spacing() []float64 {
	n := len(s.sizes)
	finest := s.sizes[n-1]
	out := make([]float64, n)
	for i, v := range s.sizes {
		if s.orientation == Density {
			out[i] = math.Pow(finest/v, 1/float64(s.dimension))
			continue
		}
		out[i] = v / finest
	}
	out[n-1] = 1

	return out
}

// RefinementRatios returns the N-1 ratios between consecutive equivalent
// spacings, r_i = spacing[i]/spacing[i+1]. Every ratio is greater than 1.
func (s *Series) RefinementRatios() []float64 {
	sp := s.Spacing()
	out := make([]float64, len(sp)-1)
	for i := range out {
		out[i] = sp[i] / sp[i+1]
	}

	return out
}
