package compton

import (
	"math"
	"math/rand"
	"testing"

	"github.com/goupil-mc/goupil/internal/elements"
)

// rngAdapter lets math/rand.Rand satisfy physics.Sampler in tests without
// pulling in internal/rng.
type rngAdapter struct{ *rand.Rand }

func (r rngAdapter) Float64() float64 { return r.Rand.Float64() }

func TestKleinNishinaEnergyConservation(t *testing.T) {
	kn := NewKleinNishina()
	u := rngAdapter{rand.New(rand.NewSource(1))}
	for _, e := range []float64{0.1, 0.3, 0.6, 1.2, 3.0} {
		for i := 0; i < 100; i++ {
			s := kn.Sample(e, u)
			if s.Energy > e+1e-9 {
				t.Fatalf("energyIn=%v: sampled energyOut=%v exceeds input", e, s.Energy)
			}
			if s.Energy <= 0 {
				t.Fatalf("energyIn=%v: sampled non-positive energyOut=%v", e, s.Energy)
			}
			if s.Weight != 1 {
				t.Fatalf("Klein-Nishina analog sample should have weight 1, got %v", s.Weight)
			}
			if s.CosTheta < -1 || s.CosTheta > 1 {
				t.Fatalf("cosTheta out of range: %v", s.CosTheta)
			}
		}
	}
}

func TestKleinNishinaCrossSectionPositive(t *testing.T) {
	kn := NewKleinNishina()
	for _, e := range []float64{0.01, 0.1, 1.0, 10.0} {
		if sigma := kn.CrossSection(e); sigma <= 0 {
			t.Errorf("CrossSection(%v) = %v, want > 0", e, sigma)
		}
	}
}

func TestDCSSupportBracketsCompton(t *testing.T) {
	kn := NewKleinNishina()
	min, max := kn.DCSSupport(0.6)
	if max != 0.6 {
		t.Errorf("DCSSupport max = %v, want energyIn", max)
	}
	if min <= 0 || min >= max {
		t.Errorf("DCSSupport min = %v, want in (0, max)", min)
	}
}

func TestScatteringFunctionApproachesKleinNishinaAtHighQ(t *testing.T) {
	sf := NewScatteringFunction(82) // lead, high Z: binding correction smallest at large q
	kn := NewKleinNishina()
	// At large ν_i, momentum transfer is large across most of the angular
	// range, so total cross sections should be close.
	e := 2.0
	if math.Abs(sf.CrossSection(e)-kn.CrossSection(e))/kn.CrossSection(e) > 0.5 {
		t.Errorf("ScatteringFunction(%v) = %v diverges too far from KleinNishina %v", e, sf.CrossSection(e), kn.CrossSection(e))
	}
}

func TestPenelopeShellThresholdExcludesBoundShells(t *testing.T) {
	shells := []elements.Shell{{BindingEnergy: 0.088, Momentum: 0.09, Occupancy: 2}}
	p := NewPenelope(82, shells)
	u := rngAdapter{rand.New(rand.NewSource(2))}
	// Photon energy below the shell's binding energy: shell cannot activate.
	_, ok := p.activeShell(0.01, u)
	if ok {
		t.Error("activeShell should reject a shell whose binding energy exceeds the photon energy")
	}
}

func TestAdjointWeightFinite(t *testing.T) {
	sf := NewScatteringFunction(14)
	u := rngAdapter{rand.New(rand.NewSource(3))}
	for i := 0; i < 50; i++ {
		a := sf.SampleAdjoint(0.3, u)
		if math.IsNaN(a.Weight) || math.IsInf(a.Weight, 0) {
			t.Fatalf("adjoint weight not finite: %v", a.Weight)
		}
		if a.Weight < 0 {
			t.Fatalf("adjoint weight negative: %v", a.Weight)
		}
		if a.Energy <= 0.3-1e-9 {
			t.Fatalf("adjoint energyIn=%v should be >= walked energy 0.3", a.Energy)
		}
	}
}
