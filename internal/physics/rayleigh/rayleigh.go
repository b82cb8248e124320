// Package rayleigh implements coherent (Rayleigh) scattering: a form-factor
// weighted angular DCS and total cross section, per spec.md §4.2's mention
// of "Rayleigh form factors" and §4.3 step 6 ("sample cosθ from Rayleigh
// DCS; rotate direction; energy unchanged").
package rayleigh

import (
	"math"

	"github.com/goupil-mc/goupil/internal/constants"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/sample"
)

// Model is the Rayleigh scattering model for a material of effective atomic
// number z.
type Model struct {
	z float64
}

// New builds a Rayleigh model for effective atomic number z.
func New(z float64) Model { return Model{z: z} }

// formFactor is a simple monotonically-decreasing screened form factor
// F(q,Z), q in MeV/c, normalized to F(0,Z) = Z.
func formFactor(q, z float64) float64 {
	if z <= 0 {
		return 0
	}
	a := 0.08 * math.Cbrt(z) // MeV/c, screening scale
	return z / (1 + (q/a)*(q/a))
}

// dcsOmega is the Thomson DCS weighted by the squared form factor, at fixed
// photon energy (Rayleigh scattering is elastic: no energy-dependence in
// the Compton-formula sense, only through q(energy, cosTheta)).
func (m Model) dcsOmega(energy, cosTheta float64) float64 {
	q := energy * math.Sqrt(2*(1-cosTheta)) // momentum transfer, forward photon momenta p=E
	f := formFactor(q, m.z)
	re2 := constants.ClassicalElectronRadius * constants.ClassicalElectronRadius
	return 0.5 * re2 * (1 + cosTheta*cosTheta) * f * f / (m.z * m.z)
}

// CrossSection integrates the angular DCS over the full solid angle via the
// trapezoid rule.
func (m Model) CrossSection(energy float64) float64 {
	const n = 256
	sum := 0.0
	step := 2.0 / n
	for i := 0; i <= n; i++ {
		cosTheta := -1 + float64(i)*step
		w := step
		if i == 0 || i == n {
			w *= 0.5
		}
		sum += w * m.dcsOmega(energy, cosTheta)
	}
	return 2 * math.Pi * sum
}

// Sample draws a scattering cosine by rejection against the angular DCS;
// Rayleigh scattering does not change the photon energy (spec §4.3 step 6).
func (m Model) Sample(energy float64, u physics.Sampler) (cosTheta float64) {
	f := func(c float64) float64 { return m.dcsOmega(energy, c) }
	majorant := sample.Majorant(f, -1, 1, 1e-4)
	return sample.Rejection(f, -1, 1, majorant*1.0001, u)
}

var _ physics.Rayleigh = Model{}
