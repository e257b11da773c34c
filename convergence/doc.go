// SPDX-License-Identifier: MIT

// Package convergence fits discretization models to a mesh.Series and reports,
// per response key, an observed order of convergence and an extrapolated
// ("mesh-independent") value.
//
// Models form a closed set of variants behind the sealed Model interface:
//
//	Richardson    classic three-level estimate; order + extrapolation
//	PowerLaw      least-squares f = f0 + a·h^p over every level; order + extrapolation
//	Polynomial    least-squares f = f0 + a1·h + a2·h²; extrapolation only
//	FinestValue   finest-level value; extrapolation only
//	AverageValue  mean of all levels (Spread = sample std); extrapolation only
//	MaximumValue  largest value; extrapolation only
//	MinimumValue  smallest value; extrapolation only
//
// Each variant declares the Capability set it provides so that downstream
// estimators can be checked against it before anything is computed.
//
// Keys are fitted independently. A numerically degenerate key (oscillatory
// data, non-uniform refinement, a solve that does not converge) never fails
// the whole fit: its KeyFit carries a Status sentinel and documented fallback
// values, and the other keys are unaffected.
//
// Richardson, in detail, for the three finest levels f3 (coarse), f2, f1 (fine)
// with refinement ratios r32, r21:
//
//	uniform ratios:  p  = ln((f3−f2)/(f2−f1)) / ln r
//	otherwise:       p  = (ln((f3−f2)/(f2−f1)) + ln((r21^p − 1)/(r32^p − 1))) / ln r21  (fixed point)
//	extrapolation:   f0 = f1 + (f1 − f2)/(r21^p − 1)
//
// With only two levels the order is undefined and f0 falls back to the finest
// value; KeyFit.Fallback reports it.
package convergence
