// SPDX-License-Identifier: MIT

// Package deviation computes, per response key and mesh level, the error of
// the raw value against the extrapolated value of a convergence.Result.
//
// Estimators form a closed set behind the sealed Estimator interface:
//
//	Relative     (f_i − f0) / f0
//	AbsRelative  |f_i − f0| / |f0|
//	Absolute     f_i − f0
//
// When |f0| is below the zero threshold the relative variants divide by a
// reference magnitude instead, flag the key as Substituted and record
// ErrDivisionByExtrapolatedZero as its status. Estimators are pure and may be
// reused across series and results.
package deviation
