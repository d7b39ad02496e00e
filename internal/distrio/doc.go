// Package distrio reads and writes toy results in the flat block format
// consumed by downstream fitting:
//
//	Energy = 250
//
//	<=====DISTR-BEGIN=====>
//	Name: Z
//	PolConfig: e-p+
//	NBins: 2
//	Dim: 1
//	Bin-ID d0  val
//	B0 -0.500000 1.000000
//	B1 0.500000 2.000000
//	<=====DISTR-END=======>
//
// The energy line appears once per file. Floating point values carry six
// fixed decimals.
package distrio

const (
	// BeginMarker opens a distribution block.
	BeginMarker = "<=====DISTR-BEGIN=====>"
	// EndMarker closes a distribution block.
	EndMarker = "<=====DISTR-END=======>"
)
