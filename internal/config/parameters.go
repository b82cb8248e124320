// Package config loads Goupil batch-run files: TOML documents describing
// materials, sectors, and named transport models, with the same
// defined/default/derived layering the teacher's config loader uses for its
// ModelParameters, adapted from gas-discharge parameters to Goupil's
// material/settings model.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// ElementFraction is one (symbol, fraction) component of a material
// composition, as written in a [Materials.<name>] table.
type ElementFraction struct {
	Symbol   string
	Fraction float64
	ByMole   bool // fraction is a mole fraction rather than a mass fraction
}

// MaterialConfig is the TOML shape of one [Materials.<name>] table.
type MaterialConfig struct {
	Composition []ElementFraction
}

// SectorConfig is the TOML shape of one sector entry in a model's geometry.
// Sectors are listed bottom to top along z; Top is the sector's upper z
// interface (cm). The last sector's Top is the outer domain boundary —
// crossing it is reported as EXIT (spec.md §4.3).
type SectorConfig struct {
	Material     string
	Top          float64    // cm, upper z interface of this layer
	Density      float64    // g/cm3, or the reference density for DensityModel != "uniform"
	DensityUnit  string     `toml:"density_unit"`
	DensityModel string     `toml:"density_model"` // "uniform" (default) or "exponential"
	Gradient     [3]float64 // unit vector n̂, exponential model only
	Scale        float64    // λ, cm, exponential model only
	Description  string
}

// TransportConfig is the TOML shape of a model's [Models.<name>.Transport]
// settings table, mirroring spec.md §3's TransportSettings.
type TransportConfig struct {
	Mode            string // "forward" or "backward"
	Absorption      string // "discrete" (default), "continuous", or "off"
	ComptonModel    string `toml:"compton_model"`    // "klein_nishina", "scattering_function" (default), "penelope"
	ComptonMethod   string `toml:"compton_method"`   // "rejection" (default) or "inverse_transform"
	Rayleigh        *bool  // default true
	VolumeSources   *bool  `toml:"volume_sources"` // default true
	BoundarySector  string `toml:"boundary_sector"`
	EnergyMin       float64 `toml:"energy_min"`
	EnergyMax       float64 `toml:"energy_max"`
	LengthMax       float64 `toml:"length_max"`
	SourceEnergies  []float64 `toml:"source_energies"`
	GridNodes       int       `toml:"grid_nodes"`
}

// SourceConfig describes the initial photon batch a CLI run generates. This
// is a host/CLI convenience only — spec.md §1 is explicit that the engine
// itself is "not a source sampler"; Goupil's kernel consumes whatever states
// a caller supplies, this is just one way of supplying them for a
// stand-alone run.
type SourceConfig struct {
	Count        int
	Energy       float64    // MeV, a single monoenergetic line
	SpectrumFile string     `toml:"spectrum_file"` // optional two-column energy/weight file, overrides Energy
	Position     [3]float64
	Direction    [3]float64 // ignored if Isotropic
	Isotropic    bool
}

// ModelConfig is the TOML shape of one [Models.<name>] table: a geometry
// (ordered sectors), transport settings, an RNG seed, and the initial
// photon batch a CLI run should generate.
type ModelConfig struct {
	Seed      uint64
	Sectors   []SectorConfig
	Transport TransportConfig
	Source    SourceConfig
}

// Run is the top-level TOML document: global defaults, a material library,
// and the set of models to run.
type Run struct {
	OutputDir string `toml:"output_dir"`
	Verbose   bool

	Transport TransportConfig // global defaults, layered under each model's own Transport

	Materials map[string]MaterialConfig
	Models    map[string]ModelConfig
}

// Load decodes filename as a Run document and applies default/derived
// resolution (§9's default TransportSettings: forward, discrete absorption,
// Rayleigh on, volume sources on) to every model's transport settings.
func Load(filename string) (*Run, error) {
	var run Run
	meta, err := toml.DecodeFile(filename, &run)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", kernelerr.ErrConfig, filename, err)
	}
	if len(run.Models) == 0 {
		return nil, fmt.Errorf("%w: %s declares no [Models]", kernelerr.ErrConfig, filename)
	}
	for name, model := range run.Models {
		resolved := resolveTransport(run.Transport, model.Transport, &meta, name)
		model.Transport = resolved
		run.Models[name] = model
	}
	return &run, nil
}

// resolveTransport layers a model's own [Models.<name>.Transport] table over
// the run's global [Transport] defaults, then over the engine defaults of
// spec.md §3: field priority is local > global > engine-default, exactly the
// teacher's local/global/default priority order in CheckAndUnify.
func resolveTransport(global, local TransportConfig, meta *toml.MetaData, modelName string) TransportConfig {
	path := []string{"Models", modelName, "Transport"}

	result := local
	if result.Mode == "" {
		if global.Mode != "" {
			result.Mode = global.Mode
		} else {
			result.Mode = "forward"
		}
	}
	if result.Absorption == "" {
		if global.Absorption != "" {
			result.Absorption = global.Absorption
		} else {
			result.Absorption = "discrete"
		}
	}
	if result.ComptonModel == "" {
		if global.ComptonModel != "" {
			result.ComptonModel = global.ComptonModel
		} else {
			result.ComptonModel = "scattering_function"
		}
	}
	if result.ComptonMethod == "" {
		if global.ComptonMethod != "" {
			result.ComptonMethod = global.ComptonMethod
		} else {
			result.ComptonMethod = "rejection"
		}
	}
	if result.Rayleigh == nil {
		if global.Rayleigh != nil {
			result.Rayleigh = global.Rayleigh
		} else {
			t := true
			result.Rayleigh = &t
		}
	}
	if result.VolumeSources == nil {
		if global.VolumeSources != nil {
			result.VolumeSources = global.VolumeSources
		} else {
			t := true
			result.VolumeSources = &t
		}
	}
	if result.GridNodes == 0 {
		if global.GridNodes != 0 {
			result.GridNodes = global.GridNodes
		} else {
			result.GridNodes = 128
		}
	}
	if result.SourceEnergies == nil {
		result.SourceEnergies = global.SourceEnergies
	}
	if !meta.IsDefined(append(path, "energy_min")...) && global.EnergyMin != 0 {
		result.EnergyMin = global.EnergyMin
	}
	if !meta.IsDefined(append(path, "energy_max")...) && global.EnergyMax != 0 {
		result.EnergyMax = global.EnergyMax
	}
	if !meta.IsDefined(append(path, "length_max")...) && global.LengthMax != 0 {
		result.LengthMax = global.LengthMax
	}
	return result
}

// Validate checks the configuration-error kinds of spec §7: inconsistent
// settings detected before table compilation or transport starts.
func (t TransportConfig) Validate() error {
	if t.EnergyMin > 0 && t.EnergyMax > 0 && t.EnergyMin >= t.EnergyMax {
		return fmt.Errorf("%w: energy_min (%g) >= energy_max (%g)", kernelerr.ErrConfig, t.EnergyMin, t.EnergyMax)
	}
	if t.Mode == "backward" && len(t.SourceEnergies) == 0 && t.BoundarySector == "" {
		return fmt.Errorf("%w: backward mode requires source_energies or a boundary_sector", kernelerr.ErrConfig)
	}
	switch t.Absorption {
	case "discrete", "continuous", "off":
	default:
		return fmt.Errorf("%w: unknown absorption mode %q", kernelerr.ErrConfig, t.Absorption)
	}
	switch t.ComptonModel {
	case "klein_nishina", "scattering_function", "penelope":
	default:
		return fmt.Errorf("%w: unknown compton model %q", kernelerr.ErrConfig, t.ComptonModel)
	}
	return nil
}
