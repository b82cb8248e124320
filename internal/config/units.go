package config

import (
	"fmt"

	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// UnitClass groups convertible units of the same physical dimension.
type UnitClass int

const (
	Length UnitClass = iota
	Density
	Energy
)

// unitToCGS maps a unit symbol to its multiplicative factor into Goupil's
// canonical CGS unit for its class (cm, g/cm3, MeV), matching the way the
// teacher's unitToSI table multiplies a config value into SI.
var unitToCGS = map[string]float64{
	"cm": 1,
	"m":  1e2,
	"mm": 1e-1,
	"km": 1e5,

	"g/cm3": 1,
	"kg/m3": 1e-3,

	"MeV": 1,
	"keV": 1e-3,
	"eV":  1e-6,
	"GeV": 1e3,
}

var classesOfUnits = map[string]UnitClass{
	"cm": Length, "m": Length, "mm": Length, "km": Length,
	"g/cm3": Density, "kg/m3": Density,
	"MeV": Energy, "keV": Energy, "eV": Energy, "GeV": Energy,
}

var defaultUnit = map[UnitClass]string{
	Length:  "cm",
	Density: "g/cm3",
	Energy:  "MeV",
}

// ToCGS converts v, expressed in unit, to Goupil's canonical CGS unit for
// unit's class. An empty unit is treated as already-CGS.
func ToCGS(v float64, unit string) (float64, error) {
	if unit == "" {
		return v, nil
	}
	factor, ok := unitToCGS[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", kernelerr.ErrConfig, unit)
	}
	return v * factor, nil
}

// Canonical returns the default unit symbol for class, the unit config
// values are assumed to already be expressed in when no unit is given.
func Canonical(class UnitClass) string {
	return defaultUnit[class]
}
