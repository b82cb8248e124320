// Package absorption implements the photoelectric absorption cross
// section of spec.md §4.1/§4.3, a simple Z^5/E^3.5-scaling approximation
// (the standard low-energy photoelectric scaling law) tabulated like every
// other cross section by the material registry.
package absorption

import (
	"math"

	"github.com/goupil-mc/goupil/internal/physics"
)

// Model is the absorption cross-section model for a material of effective
// atomic number z.
type Model struct {
	z float64
}

// New builds an absorption model for effective atomic number z.
func New(z float64) Model { return Model{z: z} }

// referenceEnergy and referenceSigma anchor the Z^5/E^3.5 scaling law at a
// reference point (Z=1, E=0.1 MeV) so CrossSection returns sane magnitudes
// without a full photoelectric cross-section table.
const (
	referenceEnergy float64 = 0.1  // MeV
	referenceSigma  float64 = 1e-24 // cm^2, per electron at Z=1, E=referenceEnergy
)

// CrossSection returns the (per-electron) photoelectric absorption cross
// section at energy, scaling as Z^5/E^3.5 below ~1 MeV and falling off
// faster above it as the photoelectric channel becomes negligible next to
// Compton.
func (m Model) CrossSection(energy float64) float64 {
	if energy <= 0 {
		return 0
	}
	z5 := math.Pow(m.z, 5)
	scale := math.Pow(referenceEnergy/energy, 3.5)
	sigma := referenceSigma * z5 * scale
	if energy > 1.0 {
		sigma *= math.Pow(1.0/energy, 2) // extra high-energy suppression
	}
	return sigma
}

var _ physics.Absorption = Model{}
