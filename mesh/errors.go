// SPDX-License-Identifier: MIT

package mesh

import "errors"

// Sentinel errors returned by Normalize. Callers match them with errors.Is;
// returned errors may wrap them with the offending key or index.
var (
	// ErrNilInput indicates that no mesh input was supplied.
	ErrNilInput = errors.New("mesh: nil mesh input")

	// ErrShapeMismatch indicates columns of unequal length.
	ErrShapeMismatch = errors.New("mesh: sequences have different lengths")

	// ErrInsufficientLevels indicates fewer than MinLevels mesh levels.
	ErrInsufficientLevels = errors.New("mesh: at least two mesh levels are required")

	// ErrDuplicateMeshSize indicates two numerically equal mesh values.
	ErrDuplicateMeshSize = errors.New("mesh: duplicate mesh size")

	// ErrNonPositiveMesh indicates a zero or negative mesh value.
	ErrNonPositiveMesh = errors.New("mesh: mesh values must be positive")

	// ErrNaNInf indicates a NaN or ±Inf in the mesh or a response column.
	ErrNaNInf = errors.New("mesh: NaN or Inf encountered")

	// ErrMeshKeyNotFound indicates that a Table has no column named by the mesh key.
	ErrMeshKeyNotFound = errors.New("mesh: mesh key not found in table")

	// ErrNoResponses indicates that no response column was supplied.
	ErrNoResponses = errors.New("mesh: no response data")

	// ErrAmbiguousInput indicates a Table mesh input together with separate responses.
	ErrAmbiguousInput = errors.New("mesh: table input already carries responses")

	// ErrEmptyKey indicates a column with an empty label.
	ErrEmptyKey = errors.New("mesh: empty column key")

	// ErrDuplicateKey indicates two columns sharing one label.
	ErrDuplicateKey = errors.New("mesh: duplicate column key")

	// ErrUnknownKey indicates a lookup of a response key the series does not hold.
	ErrUnknownKey = errors.New("mesh: unknown response key")
)
