// Package material implements the material registry of spec.md §2/§4.1:
// composites element records into a per-material electronic structure,
// builds the physics tables the transport kernel consumes, and recompiles
// them whenever the settings that shaped them change.
package material

import (
	"fmt"

	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// ComponentFraction is one element's abundance within a material, as a mole
// fraction (spec.md §3: "composition as a set of (element, mole or mass
// fraction) pairs").
type ComponentFraction struct {
	Element  elements.Element
	Fraction float64 // mole fraction, 0 < Fraction <= 1
}

// Definition is the immutable composition of a material: its name and its
// normalized set of component element fractions (spec.md §3 MaterialDefinition).
type Definition struct {
	Name        string
	Composition []ComponentFraction
}

// NewDefinition validates and mole-fraction-normalizes components into a
// Definition. byMole selects whether fractions are given as mole or mass
// fractions; mass fractions are converted to mole fractions via each
// element's atomic mass.
func NewDefinition(name string, components []ComponentFraction, byMole bool) (Definition, error) {
	if name == "" {
		return Definition{}, fmt.Errorf("%w: material has no name", kernelerr.ErrConfig)
	}
	if len(components) == 0 {
		return Definition{}, fmt.Errorf("%w: material %q has empty composition", kernelerr.ErrTable, name)
	}

	fractions := make([]float64, len(components))
	total := 0.0
	for i, c := range components {
		if c.Fraction <= 0 {
			return Definition{}, fmt.Errorf("%w: material %q has non-positive fraction for %s", kernelerr.ErrConfig, name, c.Element.Symbol)
		}
		f := c.Fraction
		if !byMole {
			f = c.Fraction / c.Element.A
		}
		fractions[i] = f
		total += f
	}

	composition := make([]ComponentFraction, len(components))
	for i, c := range components {
		composition[i] = ComponentFraction{Element: c.Element, Fraction: fractions[i] / total}
	}

	return Definition{Name: name, Composition: composition}, nil
}

// MolarMass returns the mole-fraction-weighted molar mass, g/mol.
func (d Definition) MolarMass() float64 {
	m := 0.0
	for _, c := range d.Composition {
		m += c.Fraction * c.Element.A
	}
	return m
}

// MassFractions returns the mass fraction of each composition entry, in the
// same order as d.Composition.
func (d Definition) MassFractions() []float64 {
	molar := d.MolarMass()
	out := make([]float64, len(d.Composition))
	for i, c := range d.Composition {
		out[i] = c.Fraction * c.Element.A / molar
	}
	return out
}

// EffectiveElectronCount returns the mole-fraction-weighted electron count
// per formula unit, Z_eff = Σ x_i Z_i.
func (d Definition) EffectiveElectronCount() float64 {
	z := 0.0
	for _, c := range d.Composition {
		z += c.Fraction * float64(c.Element.Z)
	}
	return z
}

// AggregatedShell is one electron shell's contribution to a material's
// electronic structure, abundance-weighted across its composition.
type AggregatedShell struct {
	BindingEnergy float64 // MeV
	Momentum      float64 // MeV/c
	Weight        float64 // electrons per formula unit contributed by this shell
}

// ElectronicStructure aggregates every element's shells, weighted by mole
// fraction and shell occupancy, plus the effective Z (spec.md §3
// MaterialDefinition "derives ... an ElectronicStructure aggregating shells
// weighted by abundance").
type ElectronicStructure struct {
	Shells     []AggregatedShell
	EffectiveZ float64
}

// ElectronicStructure builds the material's aggregated shell list.
func (d Definition) ElectronicStructure() ElectronicStructure {
	var shells []AggregatedShell
	for _, c := range d.Composition {
		for _, sh := range c.Element.Shells {
			shells = append(shells, AggregatedShell{
				BindingEnergy: sh.BindingEnergy,
				Momentum:      sh.Momentum,
				Weight:        c.Fraction * float64(sh.Occupancy),
			})
		}
	}
	return ElectronicStructure{Shells: shells, EffectiveZ: d.EffectiveElectronCount()}
}
