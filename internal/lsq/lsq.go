// SPDX-License-Identifier: MIT

// Package lsq solves small dense linear least-squares problems
// min ‖A·x − b‖₂ with Householder QR.
//
// The design matrices seen here are Vandermonde-like (columns 1, h^p, h²...)
// with at most a dozen rows, so the kernel works on plain row-major slices and
// favours determinism over blocking or pivoting.
package lsq

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadShape is returned when A is empty, ragged, or has fewer rows than columns.
	ErrBadShape = errors.New("lsq: invalid shape")

	// ErrDimensionMismatch is returned when len(b) differs from the row count of A.
	ErrDimensionMismatch = errors.New("lsq: dimension mismatch")

	// ErrRankDeficient is returned when a column of A is (numerically) dependent
	// on the previous ones.
	ErrRankDeficient = errors.New("lsq: rank-deficient design matrix")
)

// rankEps is the relative pivot threshold below which R is considered singular.
const rankEps = 1e-12

// Solution holds the least-squares coefficients and the residual sum of squares.
type Solution struct {
	X   []float64
	RSS float64
}

// Solve returns x minimizing ‖A·x − b‖₂ for an m×n matrix A with m ≥ n.
// Neither a nor b is modified.
//
// Stages:
//  1. Validate shape, copy A and b.
//  2. For k = 0..n-1 build the Householder vector of column k and apply it to
//     the remaining columns of A and to b (Q is never formed).
//  3. Back-substitute R·x = (Qᵀb)[0:n]; RSS = ‖(Qᵀb)[n:m]‖².
//
// Complexity: O(m·n²) time, O(m·n) memory.
func Solve(a [][]float64, b []float64) (Solution, error) {
	m := len(a)
	if m == 0 || len(a[0]) == 0 {
		return Solution{}, ErrBadShape
	}
	n := len(a[0])
	if m < n {
		return Solution{}, fmt.Errorf("Solve: %dx%d: %w", m, n, ErrBadShape)
	}
	if len(b) != m {
		return Solution{}, fmt.Errorf("Solve: len(b)=%d, rows=%d: %w", len(b), m, ErrDimensionMismatch)
	}

	r := make([][]float64, m)
	for i := range a {
		if len(a[i]) != n {
			return Solution{}, fmt.Errorf("Solve: row %d: %w", i, ErrBadShape)
		}
		r[i] = append([]float64(nil), a[i]...)
	}
	qtb := append([]float64(nil), b...)
	v := make([]float64, m)

	scale := 0.0
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			scale = math.Max(scale, math.Abs(r[i][j]))
		}
	}

	for k := 0; k < n; k++ {
		var norm float64
		for i := k; i < m; i++ {
			norm += r[i][k] * r[i][k]
		}
		norm = math.Sqrt(norm)
		if norm <= rankEps*scale {
			return Solution{}, fmt.Errorf("Solve: column %d: %w", k, ErrRankDeficient)
		}

		alpha := -math.Copysign(norm, r[k][k])
		for i := k; i < m; i++ {
			v[i] = r[i][k]
		}
		v[k] -= alpha

		var beta float64
		for i := k; i < m; i++ {
			beta += v[i] * v[i]
		}
		tau := 2.0 / beta

		for j := k; j < n; j++ {
			var sum float64
			for i := k; i < m; i++ {
				sum += v[i] * r[i][j]
			}
			for i := k; i < m; i++ {
				r[i][j] -= tau * v[i] * sum
			}
		}

		var sum float64
		for i := k; i < m; i++ {
			sum += v[i] * qtb[i]
		}
		for i := k; i < m; i++ {
			qtb[i] -= tau * v[i] * sum
		}
	}

	x := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		if math.Abs(r[k][k]) <= rankEps*scale {
			return Solution{}, fmt.Errorf("Solve: pivot %d: %w", k, ErrRankDeficient)
		}
		sum := qtb[k]
		for j := k + 1; j < n; j++ {
			sum -= r[k][j] * x[j]
		}
		x[k] = sum / r[k][k]
	}

	var rss float64
	for i := n; i < m; i++ {
		rss += qtb[i] * qtb[i]
	}

	return Solution{X: x, RSS: rss}, nil
}

// Vandermonde builds the design matrix with one row per x and one column per
// exponent: a[i][j] = x[i]^exponents[j].
func Vandermonde(x []float64, exponents ...float64) [][]float64 {
	a := make([][]float64, len(x))
	for i, xi := range x {
		row := make([]float64, len(exponents))
		for j, e := range exponents {
			if e == 0 {
				row[j] = 1
				continue
			}
			row[j] = math.Pow(xi, e)
		}
		a[i] = row
	}

	return a
}
