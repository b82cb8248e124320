// Package physics declares the model interfaces the material registry
// compiles against and the transport kernel dispatches through: Compton,
// Rayleigh, and absorption cross sections and samplers (spec.md §4.2).
// Concrete models live in the compton, rayleigh, and absorption
// subpackages; dispatch is resolved once per transport call and hoisted out
// of the kernel's inner loop (spec.md §9 "polymorphism over physics
// models"), the same way the teacher resolves a `ScatteringFunction`
// variant once in `NewModel` rather than branching on it every step.
package physics

import "fmt"

// Sampler is the minimal random-draw surface the physics models need; an
// *rng.Stream satisfies it without this package importing internal/rng,
// keeping the model interfaces free of a concrete RNG dependency.
type Sampler interface {
	Float64() float64
}

// Sample is the outcome of a forward Compton scattering event: the outgoing
// photon energy, scattering cosine, and generation weight (1 for analog
// sampling, spec §4.2/§4.7).
type Sample struct {
	Energy float64 // ν_f, MeV
	CosTheta float64
	Weight   float64
}

// AdjointSample is the outcome of a backward (adjoint or inverse) Compton
// event: the reconstructed incoming energy, scattering cosine, and the
// adjoint weight factor to accumulate multiplicatively (spec §4.2/§4.4).
type AdjointSample struct {
	Energy   float64 // ν_i, MeV
	CosTheta float64
	Weight   float64
}

// Compton is implemented by every forward Compton model: Klein-Nishina,
// Scattering Function, and Penelope/impulse approximation.
type Compton interface {
	// CrossSection returns the total Compton cross section σ(ν) per
	// electron, cm².
	CrossSection(energy float64) float64
	// DCS returns dσ/dν_f at (ν_i, ν_f).
	DCS(energyIn, energyOut float64) float64
	// DCSSupport returns the (ν_min, ν_max) support of the DCS at ν_i.
	DCSSupport(energyIn float64) (min, max float64)
	// Sample draws an outgoing energy and scattering cosine from the DCS.
	Sample(energyIn float64, u Sampler) Sample
}

// AdjointCompton is implemented by Compton models that support backward
// (adjoint or inverse-transform) sampling.
type AdjointCompton interface {
	Compton
	// SampleAdjoint draws an incoming energy and scattering cosine given
	// the (backward-walked) outgoing energy, plus the adjoint weight of
	// spec §4.2.
	SampleAdjoint(energyOut float64, u Sampler) AdjointSample
}

// Rayleigh is implemented by the Rayleigh (coherent) scattering model.
type Rayleigh interface {
	CrossSection(energy float64) float64
	// Sample draws a scattering cosine from the Rayleigh DCS; energy is
	// unchanged by Rayleigh scattering (spec §4.3 step 6).
	Sample(energy float64, u Sampler) (cosTheta float64)
}

// Absorption is implemented by the absorption (photoelectric) model.
type Absorption interface {
	CrossSection(energy float64) float64
}

// Mode selects which table subsets the registry compiles (spec §4.1).
type Mode int

const (
	Forward Mode = iota
	Backward
	Both
)

func (m Mode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// AbsorptionMode selects how absorption is applied during transport.
type AbsorptionMode int

const (
	Discrete AbsorptionMode = iota
	Continuous
	Off
)

// ComptonModelKind selects which Compton model a material's tables use.
type ComptonModelKind int

const (
	KleinNishina ComptonModelKind = iota
	ScatteringFunction
	Penelope
)

// ComptonMethod selects the backward sampling strategy.
type ComptonMethod int

const (
	Rejection ComptonMethod = iota
	InverseTransform
)
