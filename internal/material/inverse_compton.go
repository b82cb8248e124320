package material

import (
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/physics/compton"
	"github.com/goupil-mc/goupil/internal/sample"
)

// inverseAdjointCompton answers backward Compton draws by inverting a
// tabulated CDF instead of rejection sampling — the "inverse sampling
// (backward alternative)" of spec §4.1/§4.2/§9, usable with any forward
// Compton model regardless of whether it has a native adjoint sampler.
//
// For a fixed outgoing energy ν_f, the table holds the cumulative DCS mass
// dσ/dν_i(ν_i, ν_f) over ν_i ∈ [ν_f, EnergyMax], mapped onto x ∈ [0,1) and
// normalized to a CDF — the (ν_f, x) grid spec §9 calls for — bilinearly
// interpolated across both axes at sample time so the query's exact ν_f
// (not just the nearest grid node) shapes the draw. Because the row is
// built directly from the forward DCS, the adjoint weight reduces exactly
// to Norm(ν_f)·σ(ν_i)/σ(ν_f), with no importance-sampling residual.
type inverseAdjointCompton struct {
	physics.Compton
	cdf  sample.Table2D
	norm sample.Table1D // Norm(ν_f): each row's pre-normalization total mass
	eMax float64
}

// newInverseAdjointCompton builds the adjoint CDF grid for base over the
// energy range [grid.Min, eMax], with xNodes samples per row.
func newInverseAdjointCompton(base physics.Compton, grid sample.LogGrid, eMax float64, xNodes int) *inverseAdjointCompton {
	if xNodes < 2 {
		xNodes = 2
	}
	values := make([][]float64, grid.Nodes)
	norm := make([]float64, grid.Nodes)
	for i := 0; i < grid.Nodes; i++ {
		energyOut := grid.At(i)
		row := make([]float64, xNodes)
		span := eMax - energyOut
		if span <= 0 {
			for j := range row {
				row[j] = 1
			}
			values[i] = row
			continue
		}
		step := span / float64(xNodes-1)
		prev := base.DCS(energyOut, energyOut)
		cum := 0.0
		for j := 1; j < xNodes; j++ {
			energyIn := energyOut + float64(j)*step
			cur := base.DCS(energyIn, energyOut)
			cum += 0.5 * (prev + cur) * step
			row[j] = cum
			prev = cur
		}
		total := row[xNodes-1]
		if total > 0 {
			for j := range row {
				row[j] /= total
			}
		} else {
			for j := range row {
				row[j] = float64(j) / float64(xNodes-1)
			}
		}
		values[i] = row
		norm[i] = total
	}
	return &inverseAdjointCompton{
		Compton: base,
		cdf:     sample.Table2D{Grid: grid, XNodes: xNodes, Values: values},
		norm:    sample.Table1D{Grid: grid, Values: norm},
		eMax:    eMax,
	}
}

// SampleAdjoint draws an incoming energy ν_i given the known outgoing energy
// ν_f, bisecting the bilinearly-interpolated CDF for the support fraction x,
// then recovers the scattering cosine from the Compton formula and weighs
// the draw by Norm(ν_f)·σ(ν_i)/σ(ν_f).
func (a *inverseAdjointCompton) SampleAdjoint(energyOut float64, u physics.Sampler) physics.AdjointSample {
	target := u.Float64()
	lo, hi := 0.0, 1.0
	for i := 0; i < 32; i++ {
		mid := 0.5 * (lo + hi)
		if a.cdf.Bilinear(energyOut, mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	x := 0.5 * (lo + hi)

	energyIn := energyOut + x*(a.eMax-energyOut)
	if energyIn < energyOut {
		energyIn = energyOut
	} else if energyIn > a.eMax {
		energyIn = a.eMax
	}

	cosTheta := compton.CosThetaFor(energyIn, energyOut)
	if cosTheta < -1 {
		cosTheta = -1
	} else if cosTheta > 1 {
		cosTheta = 1
	}

	weight := 0.0
	if sigmaOut := a.Compton.CrossSection(energyOut); sigmaOut > 0 {
		weight = a.norm.At(energyOut) * a.Compton.CrossSection(energyIn) / sigmaOut
	}

	return physics.AdjointSample{Energy: energyIn, CosTheta: cosTheta, Weight: weight}
}
