package compton

import (
	"math"

	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/sample"
)

// ScatteringFunction is the default Compton model: Klein-Nishina scaled by
// the atomic incoherent scattering function S(q,Z), correcting the
// free-electron DCS for electron binding at low momentum transfer.
type ScatteringFunction struct {
	free KleinNishina
	z    float64 // effective atomic number of the scattering medium
}

// NewScatteringFunction builds a bound-electron Compton model for an
// effective atomic number z (the material's electron-count-weighted Z,
// spec §4.2's "atomic scattering function S(q, Z)").
func NewScatteringFunction(z float64) ScatteringFunction {
	return ScatteringFunction{free: NewKleinNishina(), z: z}
}

// momentumTransfer returns q, the magnitude of the photon momentum transfer
// at (ν_i, ν_f) in MeV/c, treating the photon momentum as p = E/c (c=1 in
// these units).
func momentumTransfer(energyIn, energyOut, cosTheta float64) float64 {
	v := energyIn*energyIn + energyOut*energyOut - 2*energyIn*energyOut*cosTheta
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// incoherentS is a simple monotonically-increasing screening approximation
// to the atomic incoherent scattering function, S(q,Z) -> Z as q -> infinity
// and S(q,Z) -> 0 as q -> 0; q0 sets the screening scale per electron shell
// structure, approximated here as proportional to Z^(1/3).
func incoherentS(q, z float64) float64 {
	if z <= 0 {
		return 0
	}
	q0 := 0.05 * math.Cbrt(z) // MeV/c, empirical screening scale
	return z * (1 - math.Exp(-q/q0))
}

func (s ScatteringFunction) crossSectionAndDCS(energyIn, energyOut, cosTheta float64) (dcsOmegaVal float64) {
	q := momentumTransfer(energyIn, energyOut, cosTheta)
	return dcsOmega(energyIn, cosTheta) * incoherentS(q, s.z) / s.z
}

// CrossSection integrates the scaled DCS over cosθ using the trapezoid
// rule on a fixed angular grid — sufficiently accurate for table
// compilation since the result itself gets tabulated on a coarser energy
// grid by the material registry.
func (s ScatteringFunction) CrossSection(energyIn float64) float64 {
	const n = 256
	sum := 0.0
	step := 2.0 / n
	for i := 0; i <= n; i++ {
		cosTheta := -1 + float64(i)*step
		w := step
		if i == 0 || i == n {
			w *= 0.5
		}
		eOut := energyAfter(energyIn, cosTheta)
		sum += w * s.crossSectionAndDCS(energyIn, eOut, cosTheta)
	}
	return 2 * math.Pi * sum
}

// DCS returns dσ/dν_f at (ν_i, ν_f): the Klein-Nishina DCS scaled by the
// incoherent scattering function ratio S(q,Z)/Z.
func (s ScatteringFunction) DCS(energyIn, energyOut float64) float64 {
	min, max := s.free.DCSSupport(energyIn)
	if energyOut < min || energyOut > max {
		return 0
	}
	cosTheta := cosThetaFor(energyIn, energyOut)
	q := momentumTransfer(energyIn, energyOut, cosTheta)
	return s.free.DCS(energyIn, energyOut) * incoherentS(q, s.z) / s.z
}

// DCSSupport matches the free-electron support: binding only reshapes the
// DCS within [ν_min, ν_i], it doesn't change the bounds.
func (s ScatteringFunction) DCSSupport(energyIn float64) (min, max float64) {
	return s.free.DCSSupport(energyIn)
}

// Sample draws (ν_f, cosθ) by rejection against the bound-electron angular
// DCS; weight is always 1 since this is still analog sampling of the
// physical DCS (spec §8 property 6 requires forward analog weight==1).
func (s ScatteringFunction) Sample(energyIn float64, u physics.Sampler) physics.Sample {
	f := func(cosTheta float64) float64 {
		eOut := energyAfter(energyIn, cosTheta)
		return s.crossSectionAndDCS(energyIn, eOut, cosTheta)
	}
	majorant := sample.Majorant(f, -1, 1, 1e-4)
	cosTheta := sample.Rejection(f, -1, 1, majorant*1.0001, u)
	return physics.Sample{
		Energy:   energyAfter(energyIn, cosTheta),
		CosTheta: cosTheta,
		Weight:   1,
	}
}

// SampleAdjoint draws a backward Compton event: given the walked (outgoing)
// energy ν_f, reconstruct a plausible incoming energy ν_i by sampling a
// scattering cosine uniformly on [-1, 1] and inverting the Compton formula, then accumulates the Bayes weight of
// spec §4.2: w_adj = p(ν_f|ν_i)·σ(ν_i) / (p⁺(ν_i|ν_f)·σ(ν_f)) · J.
func (s ScatteringFunction) SampleAdjoint(energyOut float64, u physics.Sampler) physics.AdjointSample {
	// Reference adjoint profile: sample cosθ uniformly on its physical
	// range for ν_i = ν_f / (1 - (ν_f/mc²)(1-cosθ)), i.e. invert the
	// roles of ν_i/ν_f in the Compton formula; the proposal density
	// p⁺(ν_i|ν_f) is uniform in cosθ, canceling against the Jacobian term
	// below up to known factors.
	cosTheta := 2*u.Float64() - 1
	denom := 1 - (energyOut/mc2)*(1-cosTheta)
	if denom <= 1e-12 {
		denom = 1e-12
	}
	energyIn := energyOut / denom

	forwardDCS := s.DCS(energyIn, energyOut)
	sigmaIn := s.CrossSection(energyIn)
	sigmaOut := s.CrossSection(energyOut)
	proposalDensity := 0.5 // uniform over cosTheta in [-1,1]
	jacobian := mc2 / (energyOut * energyOut)

	weight := 0.0
	if proposalDensity > 0 && sigmaOut > 0 {
		weight = forwardDCS * sigmaIn / (proposalDensity * sigmaOut) * jacobian
	}

	return physics.AdjointSample{
		Energy:   energyIn,
		CosTheta: cosTheta,
		Weight:   weight,
	}
}

var _ physics.AdjointCompton = ScatteringFunction{}
var _ physics.Compton = KleinNishina{}
