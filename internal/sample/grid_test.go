package sample

import "testing"

func TestLogGridAtLocate(t *testing.T) {
	g, err := NewLogGrid(0.1, 3.0, 64)
	if err != nil {
		t.Fatalf("NewLogGrid: %v", err)
	}
	if got := g.At(0); got != 0.1 {
		t.Errorf("At(0) = %v, want 0.1", got)
	}
	if got := g.At(63); got < 2.999 || got > 3.001 {
		t.Errorf("At(last) = %v, want ~3.0", got)
	}
	i, frac := g.Locate(0.1)
	if i != 0 || frac != 0 {
		t.Errorf("Locate(min) = (%d, %v), want (0, 0)", i, frac)
	}
	i, frac = g.Locate(3.0)
	if i != 62 || frac != 1 {
		t.Errorf("Locate(max) = (%d, %v), want (62, 1)", i, frac)
	}
}

func TestTable1DInterpolatesIdentity(t *testing.T) {
	g, _ := NewLogGrid(0.1, 3.0, 32)
	tbl := NewTable1D(g, func(e float64) float64 { return e })
	for _, e := range []float64{0.1, 0.5, 1.0, 2.9, 3.0} {
		if got := tbl.At(e); got < e-1e-2 || got > e+1e-2 {
			t.Errorf("At(%v) = %v, want ~%v", e, got, e)
		}
	}
}

func TestTable2DBilinearMatchesNodes(t *testing.T) {
	g, _ := NewLogGrid(0.1, 3.0, 8)
	tbl := NewTable2D(g, 5, func(energy, x float64) float64 { return energy * x })

	for i := 0; i < g.Nodes; i++ {
		e := g.At(i)
		for j := 0; j < 5; j++ {
			x := float64(j) / 4
			want := e * x
			if got := tbl.Bilinear(e, x); got < want-1e-9 || got > want+1e-9 {
				t.Errorf("Bilinear(%v, %v) = %v, want %v", e, x, got, want)
			}
		}
	}

	// Bilinear should be monotonically increasing in x for a fixed energy,
	// the property the adjoint Compton sampler's bisection relies on.
	prev := -1.0
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		got := tbl.Bilinear(1.0, x)
		if got < prev {
			t.Fatalf("Bilinear not monotonic in x at x=%v: got %v after %v", x, got, prev)
		}
		prev = got
	}
}

func TestInvalidLogGrid(t *testing.T) {
	if _, err := NewLogGrid(-1, 2, 8); err == nil {
		t.Error("expected error for non-positive min")
	}
	if _, err := NewLogGrid(1, 2, 1); err == nil {
		t.Error("expected error for too few nodes")
	}
}
