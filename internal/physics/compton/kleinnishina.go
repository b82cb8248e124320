// Package compton implements the three Compton scattering models of
// spec.md §4.2: Klein-Nishina (free electron), Scattering Function
// (Klein-Nishina x atomic S(q,Z)), and Penelope/impulse approximation
// (per-shell Compton profiles). Each exposes physics.Compton, and the
// backward-capable models additionally implement physics.AdjointCompton.
//
// Dispatch is resolved once by the caller (the material registry) and
// never branches per-step, the way the teacher resolves a single
// ScatteringFunction closure in NewModel rather than switching on a model
// tag inside the hot loop.
package compton

import (
	"math"

	"github.com/goupil-mc/goupil/internal/constants"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/sample"
)

const mc2 = constants.ElectronMass // MeV

// energyAfter returns ν_f given ν_i and the scattering cosine, via the
// Compton formula.
func energyAfter(energyIn, cosTheta float64) float64 {
	return energyIn / (1 + (energyIn/mc2)*(1-cosTheta))
}

// cosThetaFor inverts the Compton formula for the scattering cosine given
// ν_i and ν_f.
func cosThetaFor(energyIn, energyOut float64) float64 {
	return 1 - mc2*(1/energyOut-1/energyIn)
}

// CosThetaFor inverts the Compton formula for the scattering cosine given
// ν_i and ν_f; exported for samplers outside this package (e.g. the inverse-
// transform adjoint sampler) that recover a scattering angle from a pair of
// energies rather than from the DCS directly.
func CosThetaFor(energyIn, energyOut float64) float64 {
	return cosThetaFor(energyIn, energyOut)
}

// KleinNishina is the free-electron Compton model: analytic total cross
// section and differential cross section, per-electron.
type KleinNishina struct{}

// NewKleinNishina constructs a free-electron Compton model.
func NewKleinNishina() KleinNishina { return KleinNishina{} }

// CrossSection is the analytic Klein-Nishina total cross section per
// electron (Evans' form), cm².
func (KleinNishina) CrossSection(energy float64) float64 {
	a := energy / mc2
	if a <= 0 {
		return 0
	}
	l := math.Log1p(2 * a)
	re2 := constants.ClassicalElectronRadius * constants.ClassicalElectronRadius
	term1 := (1 + a) / (a * a * a) * (2*a*(1+a)/(1+2*a) - l)
	term2 := l / (2 * a)
	term3 := (1 + 3*a) / ((1 + 2*a) * (1 + 2*a))
	return 2 * math.Pi * re2 * (term1 + term2 - term3)
}

// dcsOmega is dσ/dΩ at (ν_i, cosθ), the Klein-Nishina angular DCS.
func dcsOmega(energyIn, cosTheta float64) float64 {
	ratio := energyAfter(energyIn, cosTheta) / energyIn
	sin2 := 1 - cosTheta*cosTheta
	re2 := constants.ClassicalElectronRadius * constants.ClassicalElectronRadius
	return 0.5 * re2 * ratio * ratio * (ratio + 1/ratio - sin2)
}

// DCS returns dσ/dν_f at (ν_i, ν_f), converting the angular DCS via the
// Jacobian dcosθ/dν_f = mc²/ν_f².
func (KleinNishina) DCS(energyIn, energyOut float64) float64 {
	min, max := KleinNishina{}.DCSSupport(energyIn)
	if energyOut < min || energyOut > max {
		return 0
	}
	cosTheta := cosThetaFor(energyIn, energyOut)
	jacobian := mc2 / (energyOut * energyOut)
	return 2 * math.Pi * dcsOmega(energyIn, cosTheta) * jacobian
}

// DCSSupport returns the (ν_min, ν_max) outgoing-energy support at ν_i:
// backscatter (cosθ=-1) gives ν_min, forward scatter (cosθ=1, no energy
// loss) gives ν_max = ν_i.
func (KleinNishina) DCSSupport(energyIn float64) (min, max float64) {
	return energyAfter(energyIn, -1), energyIn
}

// Sample draws (ν_f, cosθ) by rejection against a ternary-search majorant of
// the angular DCS, then computes the analog weight (always 1, spec §8
// property 6).
func (m KleinNishina) Sample(energyIn float64, u physics.Sampler) physics.Sample {
	f := func(cosTheta float64) float64 { return dcsOmega(energyIn, cosTheta) }
	majorant := sample.Majorant(f, -1, 1, 1e-4)
	cosTheta := sample.Rejection(f, -1, 1, majorant*1.0001, u)
	return physics.Sample{
		Energy:   energyAfter(energyIn, cosTheta),
		CosTheta: cosTheta,
		Weight:   1,
	}
}
