// Package app wires the measurement pipeline together: it loads a setup
// file, populates and finalizes a MeasurementSetup, generates the expected
// distributions and writes them out. It is decoupled from any specific
// entrypoint like the CLI.
package app
