// Package state holds the photon batch: the contiguous state array the
// kernel advances and the terminal status it assigns each photon, matching
// the external record layout of spec.md §6 (so a host process can fill or
// read the array in place), grounded on
// _examples/sbinet-tmvl/pumas/pumas.go's State/Recorder shape.
package state

import (
	"fmt"

	"github.com/goupil-mc/goupil/internal/geometry"
	"github.com/goupil-mc/goupil/internal/rng"
)

// Photon is one transport state: energy (MeV), position and direction
// (cm, unit vector), accumulated path length (cm) and statistical weight.
// Field order matches spec.md §6's photon-state record layout.
type Photon struct {
	Energy    float64
	Position  geometry.Vec3
	Direction geometry.Vec3
	Length    float64
	Weight    float64
}

// Status is a terminal status code, spec.md §6's "stable integer codes".
type Status int32

const (
	Running Status = iota - 1
	Absorbed
	Boundary
	EnergyConstraint
	EnergyMax
	EnergyMin
	Exit
	LengthMax
)

func (s Status) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Absorbed:
		return "ABSORBED"
	case Boundary:
		return "BOUNDARY"
	case EnergyConstraint:
		return "ENERGY_CONSTRAINT"
	case EnergyMax:
		return "ENERGY_MAX"
	case EnergyMin:
		return "ENERGY_MIN"
	case Exit:
		return "EXIT"
	case LengthMax:
		return "LENGTH_MAX"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// Batch is a contiguous array of photon states advanced in place by the
// transport kernel, plus the per-state terminal status and RNG substream
// (spec.md §4.6: "each state in a batch draws from an independent,
// reproducible substream, keyed by its position in the array").
type Batch struct {
	Photons []Photon
	Status  []Status
	seed    rng.Seed
}

// NewBatch allocates a batch of n photon slots, all Running, keyed off the
// given master seed (spec.md §4.6's per-state substream derivation: state i
// draws from rng.New(seed, uint64(i))).
func NewBatch(n int, seed rng.Seed) *Batch {
	b := &Batch{
		Photons: make([]Photon, n),
		Status:  make([]Status, n),
		seed:    seed,
	}
	for i := range b.Status {
		b.Status[i] = Running
	}
	return b
}

// Len returns the number of states in the batch.
func (b *Batch) Len() int { return len(b.Photons) }

// Stream returns state i's independent, reproducible RNG substream. Two
// batches built from the same seed and size draw byte-identical substreams
// regardless of worker scheduling order (spec.md §8's determinism property).
func (b *Batch) Stream(i int) *rng.Stream {
	return rng.New(b.seed, uint64(i))
}

// StatusHistogram counts how many states ended in each terminal status,
// keyed by its string form (spec.md §6's "the enum's string form is part of
// the external interface").
func (b *Batch) StatusHistogram() map[string]int {
	counts := make(map[string]int)
	for _, s := range b.Status {
		counts[s.String()]++
	}
	return counts
}

// Active reports whether state i is still Running.
func (b *Batch) Active(i int) bool { return b.Status[i] == Running }
