// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "sort"

// ToyResult is the expected (unfluctuated) distribution for one
// distribution and one polarization config at one energy.
type ToyResult struct {
	Distribution string
	PolConfig    string
	Energy       Energy
	Dim          int
	Centers      [][]float64
	Values       []float64
}

// NBins returns the number of bins.
func (r ToyResult) NBins() int {
	return len(r.Values)
}

// Integral sums all bin values strictly above minValue.
func (r ToyResult) Integral(minValue float64) float64 {
	sum := 0.0
	for _, v := range r.Values {
		if v > minValue {
			sum += v
		}
	}
	return sum
}

// Projection sums bin values onto one axis. Bins at or below minValue add
// nothing but still make their center appear with a zero entry. The
// returned coordinates are sorted ascending.
func (r ToyResult) Projection(axis int, minValue float64) ([]float64, []float64, error) {
	if axis < 0 || axis >= r.Dim {
		return nil, nil, Errorf("toyresult.projection", ErrInvalidValue, "axis %d out of range for dimension %d", axis, r.Dim)
	}

	sums := make(map[float64]float64)
	for i, v := range r.Values {
		if i >= len(r.Centers) || axis >= len(r.Centers[i]) {
			continue
		}
		x := r.Centers[i][axis]
		if v > minValue {
			sums[x] += v
		} else if _, ok := sums[x]; !ok {
			sums[x] = 0
		}
	}

	xs := make([]float64, 0, len(sums))
	for x := range sums {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = sums[x]
	}
	return xs, ys, nil
}
