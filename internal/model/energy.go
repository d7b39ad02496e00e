// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"math"
	"sort"
	"strconv"
)

// Energy is a center-of-mass energy in GeV. It partitions every registry.
type Energy float64

// Valid reports whether e is a finite, strictly positive energy.
func (e Energy) Valid() bool {
	f := float64(e)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// String renders the energy in its shortest decimal form (250, 91.2).
func (e Energy) String() string {
	return strconv.FormatFloat(float64(e), 'f', -1, 64)
}

// SortEnergies sorts energies in ascending order in place and returns them.
func SortEnergies(es []Energy) []Energy {
	sort.Slice(es, func(i, j int) bool { return es[i] < es[j] })
	return es
}
