package material

import (
	"testing"

	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/rng"
)

func airDefinition(t *testing.T) Definition {
	t.Helper()
	n := elements.MustLookup("N")
	o := elements.MustLookup("O")
	def, err := NewDefinition("air", []ComponentFraction{
		{Element: n, Fraction: 0.78},
		{Element: o, Fraction: 0.22},
	}, true)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	return def
}

func TestDefinitionDerivedQuantities(t *testing.T) {
	def := airDefinition(t)
	if molar := def.MolarMass(); molar < 14 || molar > 16 {
		t.Errorf("MolarMass() = %v, want ~air molar mass (~14.4)", molar)
	}
	total := 0.0
	for _, f := range def.MassFractions() {
		total += f
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("mass fractions sum to %v, want 1", total)
	}
	if z := def.EffectiveElectronCount(); z < 7 || z > 8 {
		t.Errorf("EffectiveElectronCount() = %v, want ~7.2 for air", z)
	}
}

func TestRegistryComputeIdempotent(t *testing.T) {
	reg := NewRegistry()
	idx, err := reg.Register(airDefinition(t))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	settings := Settings{
		Mode:         physics.Forward,
		ComptonModel: physics.ScatteringFunction,
		EnergyMin:    0.1,
		EnergyMax:    3.0,
		GridNodes:    32,
		Rayleigh:     true,
	}
	if err := reg.Compute(settings); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	rec, err := reg.Get(idx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	firstModel := rec.Compton()
	if err := reg.Compute(settings); err != nil {
		t.Fatalf("second Compute: %v", err)
	}
	if rec.Compton() != firstModel {
		t.Error("Compute with unchanged settings should not rebuild the compton model")
	}

	sigma := rec.MacroscopicCrossSection(0.5, 1.205e-3, true, true)
	if sigma <= 0 {
		t.Errorf("MacroscopicCrossSection = %v, want > 0", sigma)
	}
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Register(airDefinition(t)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := reg.Register(airDefinition(t)); err == nil {
		t.Error("expected an error re-registering the same material name")
	}
}

func TestAdjointComptonForInverseTransform(t *testing.T) {
	reg := NewRegistry()
	idx, err := reg.Register(airDefinition(t))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	settings := Settings{
		Mode:          physics.Backward,
		ComptonModel:  physics.KleinNishina, // no native adjoint sampler
		ComptonMethod: physics.InverseTransform,
		EnergyMin:     0.1,
		EnergyMax:     3.0,
		GridNodes:     32,
	}
	if err := reg.Compute(settings); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	rec, err := reg.Get(idx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if rec.AdjointComptonFor(physics.Rejection) != nil {
		t.Error("Klein-Nishina has no native adjoint sampler; AdjointComptonFor(Rejection) should be nil")
	}

	adjoint := rec.AdjointComptonFor(physics.InverseTransform)
	if adjoint == nil {
		t.Fatal("AdjointComptonFor(InverseTransform) returned nil, want the inverse-CDF sampler")
	}

	stream := rng.New(rng.NewSeed(1), 0)
	energyOut := 0.3
	for i := 0; i < 20; i++ {
		sample := adjoint.SampleAdjoint(energyOut, stream)
		if sample.Energy < energyOut || sample.Energy > settings.EnergyMax {
			t.Fatalf("SampleAdjoint returned energy %v outside [%v, %v]", sample.Energy, energyOut, settings.EnergyMax)
		}
		if sample.CosTheta < -1 || sample.CosTheta > 1 {
			t.Fatalf("SampleAdjoint returned cosTheta %v outside [-1, 1]", sample.CosTheta)
		}
		if sample.Weight < 0 {
			t.Fatalf("SampleAdjoint returned negative weight %v", sample.Weight)
		}
	}
}

func TestComputeRejectsInvalidEnergyRange(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Register(airDefinition(t))
	err := reg.Compute(Settings{Mode: physics.Forward, ComptonModel: physics.ScatteringFunction, EnergyMin: 1, EnergyMax: 0.5, GridNodes: 16})
	if err == nil {
		t.Fatal("expected an error for energy_min >= energy_max")
	}
	if _, gErr := reg.Get(idx); gErr != nil {
		t.Fatalf("Get should still succeed after a failed Compute: %v", gErr)
	}
}
