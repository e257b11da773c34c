// SPDX-License-Identifier: MIT

// Package uncertainty turns per-level errors into a non-negative numerical
// uncertainty band for every response key and mesh level.
//
// Estimators form a closed set behind the sealed Estimator interface:
//
//	FactorOfSafety        u_i = Fs·|e_i|
//	GridConvergenceIndex  u_i = Fs·|e_i| / (r_i^p − 1)
//	StudentT              u_i = t(n−1, 1−α/2)·s/√n, s the sample std of e
//
// FactorOfSafety either applies a fixed Fs or picks one by comparing the
// observed order with the theoretical order: a well-behaved factor inside
// the relative band, a marginal one outside it or when the order is undefined.
//
// GridConvergenceIndex needs an observed order. A key without one carries
// ErrUndefinedOrder as its status and has no values; the other keys are
// unaffected. r_i is the ratio between level i and its finer neighbour; the
// finest level reuses the finest pair.
//
// StudentT ignores the fit and reports the same band for every level.
package uncertainty
