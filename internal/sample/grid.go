// Package sample provides the table sampler of spec.md §4.1/§9: a
// logarithmic energy grid, bilinear interpolation over the (ln ν_i, x)
// Compton CDF grid, and the rejection sampler built on top of it. Grounded on the teacher's generic root/extremum finders
// (internal/numeric), repurposed from gas-discharge lookup tables to the
// log-mapped energy/CDF grids spec §9 calls for.
package sample

import (
	"fmt"
	"math"

	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// LogGrid is a logarithmically spaced 1-D grid over [min, max], the energy
// axis of every physics table (spec §4.1).
type LogGrid struct {
	Min, Max float64
	Nodes    int

	logMin, logStep float64
}

// NewLogGrid builds a LogGrid with n nodes spanning [min, max]; both bounds
// must be strictly positive (energies, never zero or negative).
func NewLogGrid(min, max float64, n int) (LogGrid, error) {
	if min <= 0 || max <= min {
		return LogGrid{}, fmt.Errorf("%w: invalid log grid bounds [%g, %g]", kernelerr.ErrTable, min, max)
	}
	if n < 2 {
		return LogGrid{}, fmt.Errorf("%w: log grid needs at least 2 nodes, got %d", kernelerr.ErrTable, n)
	}
	logMin := math.Log(min)
	logMax := math.Log(max)
	return LogGrid{
		Min: min, Max: max, Nodes: n,
		logMin:  logMin,
		logStep: (logMax - logMin) / float64(n-1),
	}, nil
}

// At returns the abscissa of node i; the end nodes return Min and Max exactly.
func (g LogGrid) At(i int) float64 {
	if i == 0 {
		return g.Min
	}
	if i == g.Nodes-1 {
		return g.Max
	}
	return math.Exp(g.logMin + float64(i)*g.logStep)
}

// Locate returns the bracketing node index i and the fractional position
// frac ∈ [0,1) between nodes i and i+1 in log-space, clamped to the grid.
func (g LogGrid) Locate(x float64) (i int, frac float64) {
	if x <= g.Min {
		return 0, 0
	}
	if x >= g.Max {
		return g.Nodes - 2, 1
	}
	pos := (math.Log(x) - g.logMin) / g.logStep
	i = int(pos)
	if i > g.Nodes-2 {
		i = g.Nodes - 2
	}
	frac = pos - float64(i)
	return
}

// Table1D is a function tabulated on a LogGrid (e.g. a total cross section
// σ(ν)), linearly interpolated between nodes.
type Table1D struct {
	Grid   LogGrid
	Values []float64
}

// NewTable1D tabulates f at every node of grid.
func NewTable1D(grid LogGrid, f func(energy float64) float64) Table1D {
	values := make([]float64, grid.Nodes)
	for i := range values {
		values[i] = f(grid.At(i))
	}
	return Table1D{Grid: grid, Values: values}
}

// At linearly interpolates the table at energy.
func (t Table1D) At(energy float64) float64 {
	i, frac := t.Grid.Locate(energy)
	return t.Values[i]*(1-frac) + t.Values[i+1]*frac
}

// Table2D is a function tabulated on (energy node, x ∈ [0,1)) — the (ν_i, x)
// CDF grid of spec §4.1, where x maps the DCS support onto (0,1).
type Table2D struct {
	Grid    LogGrid
	XNodes  int
	Values  [][]float64 // Values[energyNode][xNode]
}

// NewTable2D tabulates f(energy, x) over grid × [0,1) with xNodes samples.
func NewTable2D(grid LogGrid, xNodes int, f func(energy, x float64) float64) Table2D {
	values := make([][]float64, grid.Nodes)
	for i := range values {
		row := make([]float64, xNodes)
		e := grid.At(i)
		for j := range row {
			x := float64(j) / float64(xNodes-1)
			row[j] = f(e, x)
		}
		values[i] = row
	}
	return Table2D{Grid: grid, XNodes: xNodes, Values: values}
}

// Bilinear interpolates the table at (energy, x).
func (t Table2D) Bilinear(energy, x float64) float64 {
	i, ef := t.Grid.Locate(energy)
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	xpos := x * float64(t.XNodes-1)
	j := int(xpos)
	if j > t.XNodes-2 {
		j = t.XNodes - 2
	}
	xf := xpos - float64(j)

	v00 := t.Values[i][j]
	v01 := t.Values[i][j+1]
	v10 := t.Values[i+1][j]
	v11 := t.Values[i+1][j+1]

	v0 := v00*(1-xf) + v01*xf
	v1 := v10*(1-xf) + v11*xf
	return v0*(1-ef) + v1*ef
}

