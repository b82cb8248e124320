// Package kernelerr defines the sentinel errors shared across Goupil's
// packages, one per error kind of the transport engine's error design:
// configuration, table build, geometry, and runtime numerical failures.
package kernelerr

import "errors"

var (
	// ErrConfig marks an inconsistent settings error (e.g. energy_min >=
	// energy_max, ENERGY_CONSTRAINT requested without source energies).
	ErrConfig = errors.New("goupil: configuration error")

	// ErrTable marks a physics-table build failure (missing atomic data,
	// empty composition, grid overflow).
	ErrTable = errors.New("goupil: table build error")

	// ErrGeometry marks a tracer reporting an inconsistent state (negative
	// or NaN trace length, sector index out of range).
	ErrGeometry = errors.New("goupil: geometry error")

	// ErrNumerical marks a runtime invariant violation (non-finite weight,
	// non-unit direction after renormalization fails).
	ErrNumerical = errors.New("goupil: numerical error")
)
