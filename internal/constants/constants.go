// Package constants holds the physical and numerical constants shared by
// the element, material and physics-table packages.
package constants

// Avogadro's number, mol^-1.
const AvogadroNumber float64 = 6.02214076e23

// Electron rest mass energy, MeV.
const ElectronMass float64 = 0.51099895000

// Classical electron radius, cm.
const ClassicalElectronRadius float64 = 2.8179403262e-13

// Fine structure constant.
const FineStructureConstant float64 = 7.2973525693e-3

// Speed of light in vacuum, cm/s.
const SpeedOfLight float64 = 2.99792458e10

// DefaultGridNodes is the default number of grid nodes per axis for
// tabulated physics tables (spec §4.1).
const DefaultGridNodes = 128

// Quantile95 is the two-sided 95% confidence quantile.
const Quantile95 = 1.96
