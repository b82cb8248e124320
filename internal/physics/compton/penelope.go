package compton

import (
	"math"

	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/physics"
)

// Penelope is the impulse-approximation Compton model: each electron shell
// contributes a Compton profile (binding energy threshold, Doppler
// broadening from the shell's mean momentum) weighted by its occupancy, per
// spec §4.2.
type Penelope struct {
	base   ScatteringFunction
	shells []elements.Shell
	weight []float64 // per-shell activation weight, occupancy-normalized
	total  float64
}

// NewPenelope builds an impulse-approximation Compton model from the
// effective atomic number z (binding the Klein-Nishina baseline) and the
// material's abundance-weighted shell list.
func NewPenelope(z float64, shells []elements.Shell) Penelope {
	p := Penelope{base: NewScatteringFunction(z), shells: shells}
	p.weight = make([]float64, len(shells))
	for i, sh := range shells {
		p.weight[i] = float64(sh.Occupancy)
		p.total += p.weight[i]
	}
	return p
}

func (p Penelope) CrossSection(energyIn float64) float64 { return p.base.CrossSection(energyIn) }

func (p Penelope) DCS(energyIn, energyOut float64) float64 { return p.base.DCS(energyIn, energyOut) }

func (p Penelope) DCSSupport(energyIn float64) (min, max float64) {
	return p.base.DCSSupport(energyIn)
}

// activeShell picks a shell proportional to occupancy, honoring the binding
// energy threshold: a shell with binding energy above the photon energy
// cannot be ionized and is excluded from the draw.
func (p Penelope) activeShell(energyIn float64, u physics.Sampler) (elements.Shell, bool) {
	if p.total <= 0 || len(p.shells) == 0 {
		return elements.Shell{}, false
	}
	target := u.Float64() * p.total
	acc := 0.0
	for i, sh := range p.shells {
		acc += p.weight[i]
		if acc >= target {
			if sh.BindingEnergy >= energyIn {
				return elements.Shell{}, false
			}
			return sh, true
		}
	}
	return elements.Shell{}, false
}

// Sample draws (ν_f, cosθ) from the free-electron DCS, then applies Doppler
// broadening from the activated shell's Compton profile (a Gaussian
// perturbation of width proportional to the shell's mean momentum), the
// impulse-approximation correction to the Klein-Nishina kinematics.
func (p Penelope) Sample(energyIn float64, u physics.Sampler) physics.Sample {
	base := p.base.Sample(energyIn, u)

	shell, ok := p.activeShell(energyIn, u)
	if !ok {
		return base
	}

	// Box-Muller normal draw, scaled by the shell's profile momentum
	// converted to a fractional energy spread.
	u1, u2 := u.Float64(), u.Float64()
	for u1 <= 1e-12 {
		u1 = u.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	spread := (shell.Momentum / mc2) * base.Energy
	energy := base.Energy + z*spread
	if energy < 1e-6 {
		energy = 1e-6
	}
	if energy > energyIn {
		energy = energyIn
	}
	return physics.Sample{
		Energy:   energy,
		CosTheta: base.CosTheta,
		Weight:   1,
	}
}

// SampleAdjoint falls back to the base Scattering Function adjoint sampler:
// Penelope has no closed-form adjoint profile (spec §4.2 "Inverse sampling
// ... not available for models without a closed-form adjoint profile,
// Penelope falls back to rejection").
func (p Penelope) SampleAdjoint(energyOut float64, u physics.Sampler) physics.AdjointSample {
	return p.base.SampleAdjoint(energyOut, u)
}

var _ physics.AdjointCompton = Penelope{}
