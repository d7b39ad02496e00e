// Package setup aggregates distribution sources, systematics, polarization
// configs and normalization overrides into a MeasurementSetup.
//
// A setup starts Open and accepts mutations. Finalize validates everything
// in a fixed order and, on success, freezes the setup and produces an
// immutable model.LinkedSetup:
//
//  1. every selected distribution resolves to exactly one template per energy
//  2. polarization fractions sum to one at every energy
//  3. every energy with distributions has a luminosity
//  4. every normalization override targets a selected distribution
//
// A failed Finalize leaves the setup Open so the caller can fix it and retry.
package setup
