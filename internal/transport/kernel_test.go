package transport

import (
	"math"
	"testing"

	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/geometry"
	"github.com/goupil-mc/goupil/internal/material"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/rng"
	"github.com/goupil-mc/goupil/internal/state"
)

func airRegistry(t *testing.T) *material.Registry {
	t.Helper()
	n := elements.MustLookup("N")
	o := elements.MustLookup("O")
	def, err := material.NewDefinition("air", []material.ComponentFraction{
		{Element: n, Fraction: 0.78},
		{Element: o, Fraction: 0.22},
	}, true)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	reg := material.NewRegistry()
	if _, err := reg.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	settings := material.Settings{
		Mode:         physics.Forward,
		ComptonModel: physics.ScatteringFunction,
		EnergyMin:    0.01,
		EnergyMax:    3.0,
		GridNodes:    64,
		Rayleigh:     true,
	}
	if err := reg.Compute(settings); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return reg
}

// caco3AirRegistry compiles the two materials of scenario S4: a dense CaCO3
// slab and an air half-space, both compiled backward so their adjoint
// Compton models are available.
func caco3AirRegistry(t *testing.T) *material.Registry {
	t.Helper()
	ca := elements.MustLookup("Ca")
	c := elements.MustLookup("C")
	o := elements.MustLookup("O")
	caco3, err := material.NewDefinition("caco3", []material.ComponentFraction{
		{Element: ca, Fraction: 1},
		{Element: c, Fraction: 1},
		{Element: o, Fraction: 3},
	}, true)
	if err != nil {
		t.Fatalf("NewDefinition(caco3): %v", err)
	}

	n := elements.MustLookup("N")
	oAir := elements.MustLookup("O")
	air, err := material.NewDefinition("air", []material.ComponentFraction{
		{Element: n, Fraction: 0.78},
		{Element: oAir, Fraction: 0.22},
	}, true)
	if err != nil {
		t.Fatalf("NewDefinition(air): %v", err)
	}

	reg := material.NewRegistry()
	if _, err := reg.Register(caco3); err != nil {
		t.Fatalf("Register(caco3): %v", err)
	}
	if _, err := reg.Register(air); err != nil {
		t.Fatalf("Register(air): %v", err)
	}

	settings := material.Settings{
		Mode:         physics.Backward,
		ComptonModel: physics.ScatteringFunction,
		EnergyMin:    0.01,
		EnergyMax:    3.0,
		GridNodes:    64,
		Rayleigh:     true,
	}
	if err := reg.Compute(settings); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return reg
}

// s4Geometry is scenario S4: a lower CaCO3 slab (z<0) under an air
// half-space (z>=0).
func s4Geometry() *geometry.Stratified {
	sectors := []geometry.Sector{
		{MaterialIndex: 0, Density: geometry.Uniform(2.8), Description: "caco3"},
		{MaterialIndex: 1, Density: geometry.Uniform(1.205e-3), Description: "air"},
	}
	return geometry.NewStratified(sectors, []float64{0, 1e7})
}

// TestS4BackwardEnergyConstraint exercises scenario S4: backward transport
// from a 0.5 MeV detector state above the CaCO3/air interface, with a
// volume source at 1.0 MeV. Every photon whose adjoint Compton walk crosses
// the source energy must terminate ENERGY_CONSTRAINT with its energy
// snapped exactly to the source line, its weight carrying units cm·MeV⁻¹
// (spec's terminal-weight-unit convention for ν_f < ν_i).
func TestS4BackwardEnergyConstraint(t *testing.T) {
	reg := caco3AirRegistry(t)
	geo := s4Geometry()

	settings := baseSettings()
	settings.Mode = physics.Backward
	settings.VolumeSources = true
	settings.SourceEnergies = []float64{1.0}

	k := &Kernel{Materials: reg, Geometry: geo, Settings: settings}

	batch := state.NewBatch(100, rng.NewSeed(2468))
	for i := range batch.Photons {
		batch.Photons[i] = state.Photon{
			Energy:    0.5,
			Position:  geometry.Vec3{0, 0, 100},
			Direction: geometry.Vec3{0, 0, 1},
			Weight:    1.0,
		}
	}

	if err := k.Run(batch); err != nil {
		t.Fatalf("Run: %v", err)
	}

	constrained := 0
	for i := 0; i < batch.Len(); i++ {
		if batch.Status[i] != state.EnergyConstraint {
			continue
		}
		constrained++
		ph := batch.Photons[i]
		if ph.Energy != 1.0 {
			t.Errorf("state %d: energy = %v, want exactly 1.0", i, ph.Energy)
		}
		if ph.Weight <= 0 || ph.Weight != ph.Weight || math.IsInf(ph.Weight, 0) {
			t.Errorf("state %d: weight = %v, want a finite positive cm*MeV^-1 value", i, ph.Weight)
		}
	}
	if constrained == 0 {
		t.Error("expected at least one photon to terminate ENERGY_CONSTRAINT at the 1.0 MeV source line")
	}
}

// s1Geometry is scenario S1: a single uniform-density air sector large
// enough that most 0.5 MeV photons EXIT.
func s1Geometry() *geometry.Stratified {
	sectors := []geometry.Sector{
		{MaterialIndex: 0, Density: geometry.Uniform(1.205e-3), Description: "air"},
	}
	return geometry.NewStratified(sectors, []float64{1e7})
}

func baseSettings() Settings {
	return Settings{
		Mode:           physics.Forward,
		Absorption:     physics.Discrete,
		ComptonModel:   physics.ScatteringFunction,
		Rayleigh:       true,
		VolumeSources:  false,
		BoundarySector: -1,
		EnergyMin:      0.01,
		EnergyMax:      3.0,
		LengthMax:      1e8,
	}
}

func newBatch(n int, seed uint64) *state.Batch {
	b := state.NewBatch(n, rng.NewSeed(seed))
	for i := range b.Photons {
		b.Photons[i] = state.Photon{
			Energy:    0.5,
			Position:  geometry.Vec3{0, 0, 0},
			Direction: geometry.Vec3{0, 0, 1},
			Weight:    1.0,
		}
	}
	return b
}

func TestS1AirSectorAnalogWeight(t *testing.T) {
	reg := airRegistry(t)
	k := &Kernel{Materials: reg, Geometry: s1Geometry(), Settings: baseSettings()}

	batch := newBatch(100, 123456789)
	if err := k.Run(batch); err != nil {
		t.Fatalf("Run: %v", err)
	}

	exits := 0
	for i := 0; i < batch.Len(); i++ {
		if batch.Status[i] == state.Exit {
			exits++
			if batch.Photons[i].Weight != 1.0 {
				t.Errorf("state %d: EXIT weight = %v, want exactly 1.0 (analog forward)", i, batch.Photons[i].Weight)
			}
		}
		if batch.Photons[i].Length < 0 {
			t.Errorf("state %d: negative path length", i)
		}
	}
	if exits == 0 {
		t.Error("expected at least some photons to EXIT the air sector")
	}
}

func TestS5InnerBoundaryTermination(t *testing.T) {
	reg := airRegistry(t)
	sectors := []geometry.Sector{
		{MaterialIndex: 0, Density: geometry.Uniform(1.205e-3), Description: "air"},
		{MaterialIndex: 0, Density: geometry.Uniform(1.205e-3), Description: "Detector"},
	}
	geo := geometry.NewStratified(sectors, []float64{10, 1e7})

	settings := baseSettings()
	settings.BoundarySector = 1

	k := &Kernel{Materials: reg, Geometry: geo, Settings: settings}
	batch := newBatch(50, 42)
	if err := k.Run(batch); err != nil {
		t.Fatalf("Run: %v", err)
	}

	boundaryHits := 0
	for i := 0; i < batch.Len(); i++ {
		if batch.Status[i] == state.Boundary {
			boundaryHits++
		}
	}
	if boundaryHits == 0 {
		t.Error("expected at least one photon to terminate with BOUNDARY at the detector sector")
	}
}

func TestS6Determinism(t *testing.T) {
	reg := airRegistry(t)

	run := func() *state.Batch {
		k := &Kernel{Materials: reg, Geometry: s1Geometry(), Settings: baseSettings()}
		batch := newBatch(30, 123456789)
		if err := k.Run(batch); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return batch
	}

	a := run()
	b := run()

	for i := 0; i < a.Len(); i++ {
		if a.Status[i] != b.Status[i] {
			t.Fatalf("state %d: status diverged between runs: %v vs %v", i, a.Status[i], b.Status[i])
		}
		if a.Photons[i] != b.Photons[i] {
			t.Fatalf("state %d: photon state diverged between runs", i)
		}
	}
}

func TestDirectionStaysUnitNorm(t *testing.T) {
	reg := airRegistry(t)
	k := &Kernel{Materials: reg, Geometry: s1Geometry(), Settings: baseSettings()}
	batch := newBatch(20, 7)
	if err := k.Run(batch); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < batch.Len(); i++ {
		d := batch.Photons[i].Direction
		norm := d.Dot(d)
		if norm < 0.999999999 || norm > 1.000000001 {
			t.Errorf("state %d: |direction|^2 = %v, want ~1", i, norm)
		}
	}
}
