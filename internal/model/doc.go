// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the shared data model of a toy measurement: energies,
// distribution templates and their bins, beam polarization states and the
// sharing configurations built from them, luminosity systematics,
// normalization overrides, the immutable LinkedSetup produced by a finalized
// setup, and the ToyResult records produced from it.
//
// # Core Concepts
//
//   - Distribution: a named, binned template at one energy. Bin values are
//     opaque to the setup pipeline and are only interpreted by a data connector.
//
//   - PolarizationConfig: a named electron/positron polarization pairing with
//     helicity signs and a share of the total luminosity. For a fixed energy
//     the shares of all configs add up to one.
//
//   - LinkedSetup: the read-only result of finalizing a setup. It is safe to
//     share between goroutines.
//
// Errors returned across the module are *OpError values wrapping one of the
// sentinels declared in errors.go, so callers can match with errors.Is or
// classify with IsKind.
package model
