// SPDX-License-Identifier: MIT

// Package config loads gridverify settings for binaries and turns them into
// verify options. The library itself is configured only through functional
// options; this package is the file and environment layer on top of them.
//
// Sources, lowest priority first:
//
//  1. Defaults (the Default* constants of each package).
//  2. A YAML file, if a path is given.
//  3. Environment variables prefixed with GRIDVERIFY_. Sections are separated
//     by a double underscore, e.g. GRIDVERIFY_CONVERGENCE__RATIO_TOLERANCE=0.02
//     sets convergence.ratio_tolerance.
//
// The merged settings are validated with struct tags before use.
package config
