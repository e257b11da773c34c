// SPDX-License-Identifier: MIT

package mesh

import (
	"math"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Numeric policy defaults.
const (
	// DefaultDuplicateTolerance is the relative gap under which two mesh values
	// are considered equal.
	DefaultDuplicateTolerance = 1e-12

	// DefaultDimension is the spatial dimension used to convert densities into
	// equivalent spacings.
	DefaultDimension = 1
)

const (
	panicMeshKeyEmpty       = "mesh: WithMeshKey: key must be non-empty"
	panicOrientationInvalid = "mesh: WithOrientation: orientation must be Size or Density"
	panicDimensionInvalid   = "mesh: WithDimension: dimension must be 1, 2 or 3"
	panicToleranceInvalid   = "mesh: WithDuplicateTolerance: tolerance must be finite and non-negative"
)

// sizeTokens are mesh-key words that mark a spacing-like indicator. They win
// over densityTokens, so "cell_size" is a size.
var sizeTokens = map[string]struct{}{
	"h": {}, "hs": {}, "dx": {}, "dy": {}, "dz": {}, "delta": {}, "step": {},
	"size": {}, "sizes": {}, "spacing": {}, "length": {}, "width": {},
}

// densityTokens are mesh-key words that mark a count-like indicator.
var densityTokens = map[string]struct{}{
	"n": {}, "count": {}, "counts": {}, "density": {}, "dof": {}, "dofs": {},
	"cell": {}, "cells": {}, "ncells": {}, "element": {}, "elements": {}, "nelements": {}, "elems": {},
	"node": {}, "nodes": {}, "nnodes": {}, "points": {}, "npoints": {},
}

// Option configures Normalize.
type Option func(*Options)

// Options is the resolved normalizer configuration.
type Options struct {
	meshKey     string
	orientation Orientation // zero means infer from the mesh key
	dimension   int
	dupTol      float64
}

// WithMeshKey names the mesh column of a Table, or labels Sizes.
// Panics on an empty key.
func WithMeshKey(key string) Option {
	if key == "" {
		panic(panicMeshKeyEmpty)
	}

	return func(o *Options) { o.meshKey = key }
}

// WithOrientation fixes the mesh orientation instead of inferring it from the key.
func WithOrientation(or Orientation) Option {
	if or != Size && or != Density {
		panic(panicOrientationInvalid)
	}

	return func(o *Options) { o.orientation = or }
}

// WithDimension sets the spatial dimension d used for densities:
// spacing ∝ density^(-1/d). It has no effect on Size series.
func WithDimension(d int) Option {
	if d < 1 || d > 3 {
		panic(panicDimensionInvalid)
	}

	return func(o *Options) { o.dimension = d }
}

// WithDuplicateTolerance sets the relative tolerance for ErrDuplicateMeshSize.
func WithDuplicateTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.dupTol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		dimension: DefaultDimension,
		dupTol:    DefaultDuplicateTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// inferOrientation guesses the orientation from a mesh key. The key is split
// into lower-case words at punctuation and camelCase boundaries; any size
// word makes it a Size, otherwise any count word makes it a Density.
func inferOrientation(key string) Orientation {
	density := false
	for _, tok := range keyTokens(key) {
		if _, ok := sizeTokens[tok]; ok {
			return Size
		}
		if _, ok := densityTokens[tok]; ok {
			density = true
		}
	}
	if density {
		return Density
	}

	return Size
}

// keyTokens splits key into lower-case words, e.g. "nCells_total" gives
// [n cells total].
func keyTokens(key string) []string {
	var toks []string
	for _, part := range camelcase.Split(key) {
		if part == "" {
			continue
		}
		if r := []rune(part)[0]; !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		toks = append(toks, strings.ToLower(part))
	}

	return toks
}
