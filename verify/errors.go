// SPDX-License-Identifier: MIT

package verify

import "errors"

var (
	// ErrNilSeries indicates New was called without a series.
	ErrNilSeries = errors.New("verify: nil series")

	// ErrIncompatibleStrategySet indicates that the error or uncertainty
	// estimator requires something the convergence model does not provide.
	ErrIncompatibleStrategySet = errors.New("verify: incompatible strategy set")

	// ErrUnknownKey indicates an accessor call with a key the model does not hold.
	ErrUnknownKey = errors.New("verify: unknown response key")

	// ErrStrictConvergence indicates that strict mode rejected a key whose
	// convergence fit carried a diagnostic.
	ErrStrictConvergence = errors.New("verify: convergence diagnostic in strict mode")
)
