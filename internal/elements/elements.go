// Package elements holds the prebuilt atomic element table consumed by the
// material registry. Atomic-data ingestion from external files is out of
// scope; the table below is a fixed, in-process literal, the same shape as
// the teacher's own hardcoded element table.
package elements

import "fmt"

// Shell describes one electron shell's contribution to the impulse
// approximation and scattering-function Compton models: its binding energy,
// the mean momentum of its Compton profile, and its occupancy.
type Shell struct {
	BindingEnergy float64 // MeV
	Momentum      float64 // MeV/c, mean |p| of the shell's Compton profile
	Occupancy     int     // electrons in this shell
}

// Element is an immutable atomic record: atomic number, symbol, atomic mass,
// and the full list of electron shells ordered from innermost (K) outward.
type Element struct {
	Z      int
	Symbol string
	A      float64 // g/mol
	Shells []Shell
}

// ElectronCount returns Z, the number of electrons per neutral atom.
func (e Element) ElectronCount() int { return e.Z }

var table = map[string]Element{
	"H": {Z: 1, Symbol: "H", A: 1.00794, Shells: []Shell{
		{BindingEnergy: 1.36e-5, Momentum: 1.98e-3, Occupancy: 1},
	}},
	"C": {Z: 6, Symbol: "C", A: 12.0107, Shells: []Shell{
		{BindingEnergy: 2.88e-4, Momentum: 6.85e-3, Occupancy: 2},
		{BindingEnergy: 1.39e-5, Momentum: 2.59e-3, Occupancy: 4},
	}},
	"N": {Z: 7, Symbol: "N", A: 14.0067, Shells: []Shell{
		{BindingEnergy: 4.10e-4, Momentum: 7.85e-3, Occupancy: 2},
		{BindingEnergy: 1.53e-5, Momentum: 2.75e-3, Occupancy: 5},
	}},
	"O": {Z: 8, Symbol: "O", A: 15.9994, Shells: []Shell{
		{BindingEnergy: 5.43e-4, Momentum: 8.78e-3, Occupancy: 2},
		{BindingEnergy: 1.63e-5, Momentum: 2.89e-3, Occupancy: 6},
	}},
	"Na": {Z: 11, Symbol: "Na", A: 22.98977, Shells: []Shell{
		{BindingEnergy: 1.0721e-3, Momentum: 1.288e-2, Occupancy: 2},
		{BindingEnergy: 6.38e-5, Momentum: 4.76e-3, Occupancy: 8},
		{BindingEnergy: 5.14e-6, Momentum: 1.35e-3, Occupancy: 1},
	}},
	"Mg": {Z: 12, Symbol: "Mg", A: 24.3050, Shells: []Shell{
		{BindingEnergy: 1.3050e-3, Momentum: 1.376e-2, Occupancy: 2},
		{BindingEnergy: 8.89e-5, Momentum: 5.19e-3, Occupancy: 8},
		{BindingEnergy: 7.65e-6, Momentum: 1.63e-3, Occupancy: 2},
	}},
	"Al": {Z: 13, Symbol: "Al", A: 26.98154, Shells: []Shell{
		{BindingEnergy: 1.5596e-3, Momentum: 1.462e-2, Occupancy: 2},
		{BindingEnergy: 1.1778e-4, Momentum: 5.61e-3, Occupancy: 8},
		{BindingEnergy: 5.99e-6, Momentum: 1.58e-3, Occupancy: 3},
	}},
	"Si": {Z: 14, Symbol: "Si", A: 28.0855, Shells: []Shell{
		{BindingEnergy: 1.8389e-3, Momentum: 1.546e-2, Occupancy: 2},
		{BindingEnergy: 1.4965e-4, Momentum: 6.01e-3, Occupancy: 8},
		{BindingEnergy: 8.15e-6, Momentum: 1.77e-3, Occupancy: 4},
	}},
	"Ar": {Z: 18, Symbol: "Ar", A: 39.948, Shells: []Shell{
		{BindingEnergy: 3.2029e-3, Momentum: 1.936e-2, Occupancy: 2},
		{BindingEnergy: 3.2659e-4, Momentum: 7.80e-3, Occupancy: 2},
		{BindingEnergy: 2.4064e-4, Momentum: 7.40e-3, Occupancy: 6},
		{BindingEnergy: 1.521e-5, Momentum: 2.14e-3, Occupancy: 8},
	}},
	"K": {Z: 19, Symbol: "K", A: 39.0983, Shells: []Shell{
		{BindingEnergy: 3.6074e-3, Momentum: 2.032e-2, Occupancy: 2},
		{BindingEnergy: 3.7956e-4, Momentum: 8.23e-3, Occupancy: 8},
		{BindingEnergy: 2.9318e-4, Momentum: 7.80e-3, Occupancy: 8},
		{BindingEnergy: 4.34e-6, Momentum: 1.15e-3, Occupancy: 1},
	}},
	"Ca": {Z: 20, Symbol: "Ca", A: 40.078, Shells: []Shell{
		{BindingEnergy: 4.0381e-3, Momentum: 2.126e-2, Occupancy: 2},
		{BindingEnergy: 4.3823e-4, Momentum: 8.64e-3, Occupancy: 8},
		{BindingEnergy: 3.4561e-4, Momentum: 8.18e-3, Occupancy: 8},
		{BindingEnergy: 6.11e-6, Momentum: 1.39e-3, Occupancy: 2},
	}},
	"Fe": {Z: 26, Symbol: "Fe", A: 55.845, Shells: []Shell{
		{BindingEnergy: 7.1120e-3, Momentum: 2.61e-2, Occupancy: 2},
		{BindingEnergy: 8.4578e-4, Momentum: 1.10e-2, Occupancy: 2},
		{BindingEnergy: 7.2100e-4, Momentum: 1.05e-2, Occupancy: 6},
		{BindingEnergy: 9.13e-5, Momentum: 4.34e-3, Occupancy: 2},
		{BindingEnergy: 5.61e-5, Momentum: 3.66e-3, Occupancy: 6},
		{BindingEnergy: 8.1e-6, Momentum: 1.47e-3, Occupancy: 8},
	}},
	"Pb": {Z: 82, Symbol: "Pb", A: 207.2, Shells: []Shell{
		{BindingEnergy: 8.8005e-2, Momentum: 8.94e-2, Occupancy: 2},
		{BindingEnergy: 1.5200e-2, Momentum: 3.63e-2, Occupancy: 2},
		{BindingEnergy: 1.3035e-2, Momentum: 3.35e-2, Occupancy: 2},
		{BindingEnergy: 1.1544e-2, Momentum: 3.15e-2, Occupancy: 4},
		{BindingEnergy: 3.066e-3, Momentum: 1.62e-2, Occupancy: 2},
		{BindingEnergy: 2.586e-3, Momentum: 1.49e-2, Occupancy: 2},
		{BindingEnergy: 2.484e-3, Momentum: 1.46e-2, Occupancy: 4},
		{BindingEnergy: 1.78e-3, Momentum: 1.23e-2, Occupancy: 10},
		{BindingEnergy: 7.15e-4, Momentum: 7.78e-3, Occupancy: 2},
		{BindingEnergy: 6.45e-4, Momentum: 7.39e-3, Occupancy: 2},
		{BindingEnergy: 4.13e-4, Momentum: 5.91e-3, Occupancy: 14},
		{BindingEnergy: 1.41e-4, Momentum: 3.45e-3, Occupancy: 14},
		{BindingEnergy: 8.7e-5, Momentum: 2.71e-3, Occupancy: 8},
		{BindingEnergy: 2.0e-5, Momentum: 1.30e-3, Occupancy: 10},
		{BindingEnergy: 7.4e-6, Momentum: 7.9e-4, Occupancy: 4},
	}},
}

// ErrUnknown is returned by Lookup for a symbol absent from the table.
var ErrUnknown = fmt.Errorf("elements: unknown symbol")

// Lookup returns the Element for the given chemical symbol.
func Lookup(symbol string) (Element, error) {
	e, ok := table[symbol]
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknown, symbol)
	}
	return e, nil
}

// MustLookup is Lookup but panics on an unknown symbol, for use with
// compile-time-known symbols (e.g. in tests or static material tables).
func MustLookup(symbol string) Element {
	e, err := Lookup(symbol)
	if err != nil {
		panic(err)
	}
	return e
}
