package geometry

import (
	"math"
	"testing"
)

func twoLayerGeometry() *Stratified {
	sectors := []Sector{
		{MaterialIndex: 0, Density: Uniform(1.0), Description: "ground"},
		{MaterialIndex: 1, Density: Uniform(1.2e-3), Description: "air"},
	}
	return NewStratified(sectors, []float64{0, 1e6})
}

func TestStratifiedSectorByPosition(t *testing.T) {
	geo := twoLayerGeometry()
	tr := geo.NewTracer()

	tr.Reset(Vec3{0, 0, -1}, Vec3{0, 0, 1})
	if tr.Sector() != 0 {
		t.Errorf("Sector() = %d, want 0 below the first interface", tr.Sector())
	}

	tr.Reset(Vec3{0, 0, 10}, Vec3{0, 0, 1})
	if tr.Sector() != 1 {
		t.Errorf("Sector() = %d, want 1 above the first interface", tr.Sector())
	}
}

func TestStratifiedTraceCrossesInterface(t *testing.T) {
	geo := twoLayerGeometry()
	tr := geo.NewTracer()
	tr.Reset(Vec3{0, 0, -1}, Vec3{0, 0, 1})

	d := tr.Trace(100)
	if math.Abs(d-1) > 1e-9 {
		t.Fatalf("Trace() = %v, want 1 (distance to z=0)", d)
	}

	tr.Update(d, Vec3{0, 0, 1})
	if tr.Sector() != 1 {
		t.Errorf("after crossing, Sector() = %d, want 1", tr.Sector())
	}
}

func TestStratifiedExitsOuterDomain(t *testing.T) {
	geo := twoLayerGeometry()
	tr := geo.NewTracer()
	tr.Reset(Vec3{0, 0, 1e6 - 1}, Vec3{0, 0, 1})

	d := tr.Trace(100)
	tr.Update(d, Vec3{0, 0, 1})
	if !tr.Outside() {
		t.Error("expected Outside() after crossing the outermost interface")
	}
}

func TestStratifiedDensityAt(t *testing.T) {
	geo := twoLayerGeometry()
	tr := geo.NewTracer()
	if rho := tr.DensityAt(1, Vec3{0, 0, 10}); math.Abs(rho-1.2e-3) > 1e-12 {
		t.Errorf("DensityAt(1, ...) = %v, want 1.2e-3", rho)
	}
}

func TestExponentialDensity(t *testing.T) {
	e := Exponential{Reference: Vec3{0, 0, 0}, Normal: Vec3{0, 0, 1}, Rho0: 1.205e-3, Scale: 1e6}
	if rho := e.At(Vec3{0, 0, 0}); math.Abs(rho-e.Rho0) > 1e-12 {
		t.Errorf("At(reference) = %v, want rho0 = %v", rho, e.Rho0)
	}
	if rho := e.At(Vec3{0, 0, 1e6}); rho <= e.Rho0 {
		t.Errorf("density should increase along +normal, got %v <= rho0", rho)
	}
}

func TestSphereBoundaryDistanceAndInside(t *testing.T) {
	sphere := SphereBoundary{Center: Vec3{0, 0, 0}, Radius: 1}

	if !sphere.Inside(Vec3{0, 0, 0}) {
		t.Error("origin should be inside a unit sphere centered at origin")
	}
	if sphere.Inside(Vec3{2, 0, 0}) {
		t.Error("(2,0,0) should be outside a unit sphere centered at origin")
	}

	d := sphere.Distance(Vec3{-2, 0, 0}, Vec3{1, 0, 0})
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("Distance() = %v, want 1 (from x=-2 to the near surface at x=-1)", d)
	}

	dMiss := sphere.Distance(Vec3{-2, 2, 0}, Vec3{1, 0, 0})
	if !math.IsInf(dMiss, 1) {
		t.Errorf("Distance() for a missing ray = %v, want +Inf", dMiss)
	}

	dBehind := sphere.Distance(Vec3{2, 0, 0}, Vec3{1, 0, 0})
	if !math.IsInf(dBehind, 1) {
		t.Errorf("Distance() for a ray pointing away from the sphere = %v, want +Inf", dBehind)
	}
}
