package transport

import (
	"fmt"
	"math"
	"sync"

	"github.com/goupil-mc/goupil/internal/geometry"
	"github.com/goupil-mc/goupil/internal/kernelerr"
	"github.com/goupil-mc/goupil/internal/material"
	"github.com/goupil-mc/goupil/internal/numeric"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/rng"
	"github.com/goupil-mc/goupil/internal/state"
)

// Geometry is what the kernel needs from a concrete geometry back-end: a
// queryable sector list, and a per-worker tracer constructor (spec.md §4.5,
// §5's "each worker owns ... a tracer").
type Geometry interface {
	Sector(i int) (geometry.Sector, error)
	NewTracer() geometry.Tracer
}

// Kernel runs the forward or backward transport state machine over a
// photon-state batch against one Geometry and material.Registry, both
// treated as immutable, read-only, and shared across workers (spec.md §5).
type Kernel struct {
	Materials *material.Registry
	Geometry  Geometry
	Settings  Settings
}

// Run advances every Running state in batch to a terminal status, splitting
// the batch into workers independent slices the way
// _examples/wildstyl3r-stmc/model.go's run() fans particles out across a
// worker pool — except the partition here is static (spec.md §5: "the
// photon-state batch is partitioned across workers; each worker writes only
// its assigned slice"), since the batch size is known up front. Run uses one
// worker per photon state.
func (k *Kernel) Run(batch *state.Batch) error {
	workers := len(batch.Photons)
	return k.RunWorkers(batch, workers)
}

// RunWorkers is Run with an explicit worker count, for tests and tuning;
// workers <= 0 defaults to 1.
func (k *Kernel) RunWorkers(batch *state.Batch, workers int) error {
	n := batch.Len()
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return nil
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			tracer := k.Geometry.NewTracer()
			for i := start; i < end; i++ {
				if !batch.Active(i) {
					continue
				}
				status, err := k.step(tracer, &batch.Photons[i], batch.Stream(i))
				if err != nil {
					errs[w] = err
					return
				}
				batch.Status[i] = status
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// step runs one photon to completion, implementing spec.md §4.3 (forward)
// or §4.4 (backward).
func (k *Kernel) step(tracer geometry.Tracer, ph *state.Photon, stream *rng.Stream) (state.Status, error) {
	backward := k.Settings.Mode == physics.Backward

	// travelDirection tracks the direction the tracer actually moves along;
	// in backward mode that is the negative of the photon's recorded
	// momentum direction, which is what rotate() updates on a scattering
	// event (spec.md §4.4: "a backward step moves the state against its
	// recorded momentum direction. Tracer calls continue to take
	// 'direction'; the kernel passes the negated direction.").
	travelDirectionOf := func() geometry.Vec3 {
		if !backward {
			return ph.Direction
		}
		return geometry.Vec3{-ph.Direction[0], -ph.Direction[1], -ph.Direction[2]}
	}
	travelDirection := travelDirectionOf()
	tracer.Reset(ph.Position, travelDirection)

	if backward && k.Settings.VolumeSources {
		if _, ok := crossedSourceEnergy(k.Settings.SourceEnergies, ph.Energy, ph.Energy); ok {
			return state.EnergyConstraint, nil
		}
	}

	for {
		travelDirection = travelDirectionOf()
		sector := tracer.Sector()
		sec, err := k.Geometry.Sector(sector)
		if err != nil {
			return state.Absorbed, fmt.Errorf("%w: %v", kernelerr.ErrGeometry, err)
		}
		rec, err := k.Materials.Get(sec.MaterialIndex)
		if err != nil {
			return state.Absorbed, err
		}

		position := tracer.Position()
		densityHere := tracer.DensityAt(sector, position)

		remaining := k.Settings.LengthMax - ph.Length
		if remaining <= 0 {
			return state.LengthMax, nil
		}
		lookahead := remaining
		const maxLookahead = 1e4 // cm; bounds the Woodcock look-ahead probe
		if lookahead > maxLookahead {
			lookahead = maxLookahead
		}
		densityAhead := tracer.DensityAt(sector, position.Add(lookahead, travelDirection))
		densityMajorant := math.Max(densityHere, densityAhead) * k.Settings.safetyMajorant()
		if densityMajorant <= 0 {
			densityMajorant = densityHere
		}

		sigmaCompton, sigmaRayleigh, sigmaAbsorption := rec.ComponentCrossSections(ph.Energy)
		if !k.Settings.Rayleigh {
			sigmaRayleigh = 0
		}
		absorptionDiscrete := !backward && k.Settings.Absorption == physics.Discrete
		absorptionContinuous := k.Settings.Absorption == physics.Continuous
		if !absorptionDiscrete {
			sigmaAbsorption = 0 // excluded from the reaction pool; continuous case (if enabled) is a survival factor below, and backward mode never terminates on absorption (spec.md §4.4)
		}

		sigmaMajorant := sigmaCompton + sigmaRayleigh + sigmaAbsorption
		numberDensityMajorant := rec.NumberDensity(densityMajorant)
		bigSigmaMajorant := numberDensityMajorant * sigmaMajorant
		if bigSigmaMajorant <= 0 {
			return state.Absorbed, fmt.Errorf("%w: non-positive majorant cross section", kernelerr.ErrNumerical)
		}

		dInt := stream.Exponential() / bigSigmaMajorant
		dGeo := tracer.Trace(dInt)

		if dGeo < dInt {
			ph.Position = ph.Position.Add(dGeo, travelDirection)
			ph.Length += dGeo
			if absorptionContinuous {
				ph.Weight *= math.Exp(-rec.NumberDensity(densityHere) * sigmaAbsorptionContinuous(rec, ph.Energy) * dGeo)
			}
			tracer.Update(dGeo, travelDirection)

			if tracer.Outside() {
				return state.Exit, nil
			}
			if k.Settings.hasBoundary() && tracer.Sector() == k.Settings.BoundarySector {
				return state.Boundary, nil
			}
			if status, ok := k.checkCutoffs(ph); ok {
				return status, nil
			}
			continue
		}

		// Candidate collision point.
		ph.Position = ph.Position.Add(dInt, travelDirection)
		ph.Length += dInt
		if absorptionContinuous {
			ph.Weight *= math.Exp(-rec.NumberDensity(densityHere) * sigmaAbsorptionContinuous(rec, ph.Energy) * dInt)
		}
		tracer.Update(dInt, travelDirection)
		if status, ok := k.checkCutoffs(ph); ok {
			return status, nil
		}

		actualDensity := tracer.DensityAt(tracer.Sector(), tracer.Position())
		numberDensityActual := rec.NumberDensity(actualDensity)
		bigSigmaActual := numberDensityActual * sigmaMajorant
		if stream.Float64() > bigSigmaActual/bigSigmaMajorant {
			continue // null collision: resume sampling from step 3
		}

		status, terminal, err := k.interact(rec, ph, stream, sigmaCompton, sigmaRayleigh, sigmaAbsorption, backward)
		if err != nil {
			return state.Absorbed, err
		}
		if terminal {
			return status, nil
		}
		if status, ok := k.checkCutoffs(ph); ok {
			return status, nil
		}
	}
}

// sigmaAbsorptionContinuous looks up σ_abs(ν) for the continuous survival
// factor, independent of whether absorption is in the discrete reaction pool.
func sigmaAbsorptionContinuous(rec *material.Record, energy float64) float64 {
	return rec.AbsorptionCrossSectionAt(energy)
}

// checkCutoffs applies spec.md §4.3 step 7's energy/length cutoffs.
func (k *Kernel) checkCutoffs(ph *state.Photon) (state.Status, bool) {
	if !numeric.IsFiniteNonNegative(ph.Weight) {
		return state.Absorbed, true
	}
	if ph.Energy < k.Settings.EnergyMin {
		return state.EnergyMin, true
	}
	if ph.Energy > k.Settings.EnergyMax {
		return state.EnergyMax, true
	}
	if ph.Length > k.Settings.LengthMax {
		return state.LengthMax, true
	}
	return state.Running, false
}

// interact samples the reaction channel at a real (non-null) collision and
// applies its effect to ph; the bool return reports whether the event
// itself was terminal (ABSORBED or, backward-only, ENERGY_CONSTRAINT).
func (k *Kernel) interact(rec *material.Record, ph *state.Photon, stream *rng.Stream, sigmaCompton, sigmaRayleigh, sigmaAbsorption float64, backward bool) (state.Status, bool, error) {
	total := sigmaCompton + sigmaRayleigh + sigmaAbsorption
	u := stream.Float64() * total

	switch {
	case u < sigmaAbsorption:
		return state.Absorbed, true, nil
	case u < sigmaAbsorption+sigmaRayleigh:
		rayleighModel := rec.Rayleigh()
		phi := 2 * math.Pi * stream.Float64()
		cosTheta := rayleighModel.Sample(ph.Energy, stream)
		ph.Direction = rotate(ph.Direction, cosTheta, phi)
		return state.Running, false, nil
	default:
		phi := 2 * math.Pi * stream.Float64()
		if !backward {
			sample := rec.Compton().Sample(ph.Energy, stream)
			ph.Energy = sample.Energy
			ph.Weight *= sample.Weight
			ph.Direction = rotate(ph.Direction, sample.CosTheta, phi)
			return state.Running, false, nil
		}

		adjoint := rec.AdjointComptonFor(k.Settings.ComptonMethod)
		if adjoint == nil {
			return state.Absorbed, true, fmt.Errorf("%w: backward Compton requested with no adjoint model compiled", kernelerr.ErrConfig)
		}
		oldEnergy := ph.Energy
		sample := adjoint.SampleAdjoint(oldEnergy, stream)
		ph.Energy = sample.Energy
		ph.Weight *= sample.Weight
		ph.Direction = rotate(ph.Direction, sample.CosTheta, phi)

		if k.Settings.VolumeSources {
			if matched, ok := crossedSourceEnergy(k.Settings.SourceEnergies, oldEnergy, sample.Energy); ok {
				dcs := math.Abs(adjoint.DCS(sample.Energy, oldEnergy))
				if dcs > 0 {
					ph.Weight *= 1 / dcs
				}
				ph.Energy = matched
				return state.EnergyConstraint, true, nil
			}
		}
		return state.Running, false, nil
	}
}
