// Package gridverify quantifies discretization error and numerical
// uncertainty of mesh refinement studies: a handful of simulation runs of the
// same problem at different mesh resolutions.
//
// 🚀 What is gridverify?
//
//	A small, pure-Go verification library that brings together:
//		• Normalization: sizes or densities, plain or labeled, one table or many columns
//		• Convergence: Richardson (uniform and generalized), power-law and polynomial fits,
//		  finest/average/maximum/minimum reference values
//		• Errors: relative, absolute-relative and absolute, per level
//		• Uncertainty: grid convergence index, factor of safety, Student-t band
//		• Composition: one immutable verify.Model, checked for compatibility up front
//
// Under the hood, everything is organized in leaf-first packages:
//
//	mesh/           input shapes, validation, canonical coarsest-first Series
//	convergence/    observed order and extrapolated value per response key
//	deviation/      per-level error against the extrapolated value
//	uncertainty/    per-level uncertainty band
//	verify/         the composed, immutable Model
//	config/         koanf settings for binaries
//	logger/         zap logger used through verify.WithLogger
//	cmd/gridverify  command line front end
//
// Quick example:
//
//	m, err := verify.Build(mesh.Sizes{0.00292402, 0.00414913, 0.00573555},
//		mesh.Columns{{Key: "pressure", Values: []float64{100, 98, 95}}})
//	p, _ := m.Order("pressure")         // ≈ 1.44
//	f0, _ := m.Extrapolated("pressure") // ≈ 103.06
//
//	go get github.com/katalvlaran/gridverify/verify
package gridverify
