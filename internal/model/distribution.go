// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines distribution templates as delivered by source readers.
// Bin values are carried through the setup untouched and only interpreted by
// the data connector that computes expected values.
package model

// SourceRef points at one input source registered for one energy.
type SourceRef struct {
	Path   string
	Energy Energy
}

// BinValue is the value container of a bin. Components holds optional named
// contributions, e.g. per-helicity cross-sections keyed "LR", "RL", "LL", "RR".
type BinValue struct {
	Nominal     float64
	Uncertainty float64
	Components  map[string]float64
}

// Bin is one cell of a distribution.
type Bin struct {
	Centers []float64
	Value   BinValue
}

// Distribution is a named, binned template over Dim observables.
type Distribution struct {
	Name   string
	Energy Energy
	Source string
	Dim    int
	Bins   []Bin
}

// NBins returns the number of bins.
func (d Distribution) NBins() int {
	return len(d.Bins)
}

// Centers returns a copy of the bin centers in bin order.
func (d Distribution) Centers() [][]float64 {
	out := make([][]float64, len(d.Bins))
	for i, b := range d.Bins {
		out[i] = append([]float64(nil), b.Centers...)
	}
	return out
}

// Clone returns a deep copy of the distribution.
func (d Distribution) Clone() Distribution {
	out := d
	out.Bins = make([]Bin, len(d.Bins))
	for i, b := range d.Bins {
		cb := Bin{
			Centers: append([]float64(nil), b.Centers...),
			Value: BinValue{
				Nominal:     b.Value.Nominal,
				Uncertainty: b.Value.Uncertainty,
			},
		}
		if b.Value.Components != nil {
			cb.Value.Components = make(map[string]float64, len(b.Value.Components))
			for k, v := range b.Value.Components {
				cb.Value.Components[k] = v
			}
		}
		out.Bins[i] = cb
	}
	return out
}
