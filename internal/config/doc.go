// Package config defines the format-agnostic description of a measurement
// setup, the Loader interface implemented by concrete formats (see the hcl
// package), and Apply, which feeds a loaded Model into a setup.
//
// The Model carries what would otherwise be hard-coded in a driver: the
// energy of every input, the sources, the selected distribution names, the
// systematics values, the polarization configs, the normalization overrides
// and the output path.
package config
