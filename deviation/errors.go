// SPDX-License-Identifier: MIT

package deviation

import "errors"

var (
	// ErrNilInput indicates Compute was called without a series or a result.
	ErrNilInput = errors.New("deviation: nil series or convergence result")

	// ErrUnknownKey indicates a lookup of a key the table does not hold.
	ErrUnknownKey = errors.New("deviation: unknown response key")

	// ErrDivisionByExtrapolatedZero marks a key whose extrapolated value was
	// too close to zero for a relative error; the reference magnitude was
	// used as the denominator instead.
	ErrDivisionByExtrapolatedZero = errors.New("deviation: extrapolated value is zero")
)
