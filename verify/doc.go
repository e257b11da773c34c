// SPDX-License-Identifier: MIT

// Package verify composes the verification pipeline into one immutable Model:
//
//	raw input → mesh.Normalize → convergence.Model → deviation.Estimator → uncertainty.Estimator
//
// Build normalizes raw input; New starts from an already normalized
// mesh.Series. Both check the strategy set with Compatible before any
// computation, then compute every stage eagerly. A Model never changes after
// construction and its accessors return copies, so it is safe for concurrent
// readers.
//
// Defaults: convergence.NewRichardson, deviation.NewRelative and
// uncertainty.NewGridConvergenceIndex.
//
// Structural problems (bad input, incompatible strategies) fail construction.
// Numeric degeneracies of individual keys are diagnostics: they are logged at
// warn level, reported by Status and Err, and leave the other keys intact.
// WithStrictConvergence turns convergence diagnostics into a construction
// failure instead.
package verify
