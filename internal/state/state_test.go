package state

import (
	"testing"

	"github.com/goupil-mc/goupil/internal/rng"
)

func TestNewBatchAllRunning(t *testing.T) {
	b := NewBatch(8, rng.NewSeed(1))
	for i := 0; i < b.Len(); i++ {
		if !b.Active(i) {
			t.Errorf("state %d should start Running", i)
		}
	}
}

func TestStreamDependsOnlyOnIndex(t *testing.T) {
	b1 := NewBatch(4, rng.NewSeed(42))
	b2 := NewBatch(4, rng.NewSeed(42))

	for i := 0; i < 4; i++ {
		u1 := b1.Stream(i).Float64()
		u2 := b2.Stream(i).Float64()
		if u1 != u2 {
			t.Errorf("state %d: substreams diverge across identically-seeded batches", i)
		}
	}
}

func TestStatusHistogram(t *testing.T) {
	b := NewBatch(3, rng.NewSeed(7))
	b.Status[0] = Exit
	b.Status[1] = Absorbed
	b.Status[2] = Exit

	hist := b.StatusHistogram()
	if hist["EXIT"] != 2 || hist["ABSORBED"] != 1 {
		t.Errorf("StatusHistogram() = %v, want EXIT:2 ABSORBED:1", hist)
	}
}

func TestStatusString(t *testing.T) {
	if Running.String() != "RUNNING" || EnergyConstraint.String() != "ENERGY_CONSTRAINT" {
		t.Error("unexpected Status.String() output")
	}
}
