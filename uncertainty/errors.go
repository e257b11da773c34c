// SPDX-License-Identifier: MIT

package uncertainty

import "errors"

var (
	// ErrNilInput indicates Compute was called without a series, result or error table.
	ErrNilInput = errors.New("uncertainty: nil series, convergence result or error table")

	// ErrUnknownKey indicates a lookup of a key the table does not hold.
	ErrUnknownKey = errors.New("uncertainty: unknown response key")

	// ErrUndefinedOrder marks a key whose estimator needs an observed order
	// the convergence result did not produce.
	ErrUndefinedOrder = errors.New("uncertainty: observed order is undefined")

	// ErrZeroResponse marks a key a normalized GCI cannot divide by, because
	// one of its levels has a zero response.
	ErrZeroResponse = errors.New("uncertainty: zero response cannot normalize")
)
