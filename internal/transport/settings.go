// Package transport implements the Monte Carlo transport kernel of
// spec.md §4.3/§4.4: the per-photon state machine, Woodcock/null-collision
// free-flight sampling, and the data-parallel batch runner of §5, grounded
// on _examples/wildstyl3r-stmc/model.go's worker-pool Run loop.
package transport

import "github.com/goupil-mc/goupil/internal/physics"

// Settings is the resolved subset of internal/config.TransportConfig the
// kernel consumes at every step.
type Settings struct {
	Mode           physics.Mode
	Absorption     physics.AbsorptionMode
	ComptonModel   physics.ComptonModelKind
	ComptonMethod  physics.ComptonMethod
	Rayleigh       bool
	VolumeSources  bool
	BoundarySector int // -1 if no inner boundary is configured
	EnergyMin      float64
	EnergyMax      float64
	LengthMax      float64
	SourceEnergies []float64

	// SafetyMajorant scales the Woodcock look-ahead density bound; must be
	// >= 1. Defaults to 1.05 when zero.
	SafetyMajorant float64
}

func (s Settings) safetyMajorant() float64 {
	if s.SafetyMajorant > 0 {
		return s.SafetyMajorant
	}
	return 1.05
}

func (s Settings) hasBoundary() bool { return s.BoundarySector >= 0 }
