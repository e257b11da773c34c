// SPDX-License-Identifier: MIT

// Package mesh holds the canonical multi-resolution table of a grid study and
// the normalizer that builds it from loosely shaped input.
//
// A Series pairs N mesh indicators (sizes, or densities such as cell counts)
// with one or more response columns of the same length. Normalize accepts one
// of a small closed set of input shapes:
//
//	mesh input:     Sizes | Labeled | Table
//	response input: Values | Columns | nil (only with Table)
//
// validates them, and reorders every column with a single permutation so the
// coarsest level comes first and the finest level last. Every downstream
// formula relies on that order: level i+1 is a refinement of level i.
//
// Usage:
//
//	s, err := mesh.Normalize(
//		mesh.Sizes{0.00292402, 0.00414913, 0.00573555},
//		mesh.Values{100, 98, 95},
//	)
//	// s.Sizes() == [0.00573555 0.00414913 0.00292402]
//	// s.Values("System Response Quantity") == [95 98 100]
//
// A Series is immutable; accessors return copies.
package mesh
