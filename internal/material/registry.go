package material

import (
	"fmt"
	"sync"

	"github.com/goupil-mc/goupil/internal/constants"
	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/kernelerr"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/physics/absorption"
	"github.com/goupil-mc/goupil/internal/physics/compton"
	"github.com/goupil-mc/goupil/internal/physics/rayleigh"
	"github.com/goupil-mc/goupil/internal/sample"
)

// Settings is the subset of spec.md §3's TransportSettings that shapes
// which tables a MaterialRecord builds (spec §4.1).
type Settings struct {
	Mode          physics.Mode
	ComptonModel  physics.ComptonModelKind
	ComptonMethod physics.ComptonMethod
	EnergyMin     float64
	EnergyMax     float64
	GridNodes     int
	Rayleigh      bool
}

func (s Settings) gridNodes() int {
	if s.GridNodes > 0 {
		return s.GridNodes
	}
	return constants.DefaultGridNodes
}

// Record is a material with its compiled physics tables, owned by the
// Registry and referenced by index from sectors (spec.md §3 MaterialRecord).
type Record struct {
	Definition Definition

	mu       sync.Mutex
	compiled Settings
	built    bool

	comptonModel   physics.Compton
	adjointCompton physics.AdjointCompton // nil unless the compton model supports it natively
	inverseAdjoint *inverseAdjointCompton // nil unless ComptonMethod == InverseTransform
	rayleighModel  physics.Rayleigh
	absorptionModel physics.Absorption

	comptonCrossSection   sample.Table1D
	rayleighCrossSection  sample.Table1D
	absorptionCrossSection sample.Table1D
}

// newRecord constructs an uncompiled Record for a definition.
func newRecord(def Definition) *Record {
	return &Record{Definition: def}
}

// Compute builds (or rebuilds, if settings changed since the last call) the
// table subset the given settings require; idempotent for identical
// settings (spec.md §3 "Lifecycle": "compute is idempotent").
func (r *Record) Compute(settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built && r.compiled == settings {
		return nil
	}

	structure := r.Definition.ElectronicStructure()
	z := structure.EffectiveZ
	if z <= 0 {
		return fmt.Errorf("%w: material %q has non-positive effective Z", kernelerr.ErrTable, r.Definition.Name)
	}

	switch settings.ComptonModel {
	case physics.KleinNishina:
		r.comptonModel = compton.NewKleinNishina()
		r.adjointCompton = nil
	case physics.Penelope:
		shells := make([]elements.Shell, 0, len(structure.Shells))
		for _, s := range structure.Shells {
			shells = append(shells, elements.Shell{
				BindingEnergy: s.BindingEnergy,
				Momentum:      s.Momentum,
				Occupancy:     int(s.Weight + 0.5),
			})
		}
		model := compton.NewPenelope(z, shells)
		r.comptonModel = model
		if settings.Mode != physics.Forward {
			r.adjointCompton = model
		}
	default: // physics.ScatteringFunction
		model := compton.NewScatteringFunction(z)
		r.comptonModel = model
		if settings.Mode != physics.Forward {
			r.adjointCompton = model
		}
	}

	r.rayleighModel = rayleigh.New(z)
	r.absorptionModel = absorption.New(z)

	emin, emax := settings.EnergyMin, settings.EnergyMax
	if emin <= 0 || emax <= emin {
		return fmt.Errorf("%w: material %q invalid energy range [%g, %g]", kernelerr.ErrConfig, r.Definition.Name, emin, emax)
	}
	grid, err := sample.NewLogGrid(emin, emax, settings.gridNodes())
	if err != nil {
		return err
	}

	r.comptonCrossSection = sample.NewTable1D(grid, r.comptonModel.CrossSection)
	r.rayleighCrossSection = sample.NewTable1D(grid, r.rayleighModel.CrossSection)
	r.absorptionCrossSection = sample.NewTable1D(grid, r.absorptionModel.CrossSection)

	r.inverseAdjoint = nil
	if settings.Mode != physics.Forward && settings.ComptonMethod == physics.InverseTransform {
		r.inverseAdjoint = newInverseAdjointCompton(r.comptonModel, grid, emax, settings.gridNodes())
	}

	r.compiled = settings
	r.built = true
	return nil
}

// Compton returns the compiled forward Compton model.
func (r *Record) Compton() physics.Compton { return r.comptonModel }

// AdjointComptonFor returns the compiled backward-capable Compton model for
// the requested sampling method (spec §9's rejection vs. inverse-transform
// choice), or nil if the current settings compiled neither.
func (r *Record) AdjointComptonFor(method physics.ComptonMethod) physics.AdjointCompton {
	r.mu.Lock()
	defer r.mu.Unlock()
	if method == physics.InverseTransform && r.inverseAdjoint != nil {
		return r.inverseAdjoint
	}
	return r.adjointCompton
}

// Rayleigh returns the compiled Rayleigh model.
func (r *Record) Rayleigh() physics.Rayleigh { return r.rayleighModel }

// Absorption returns the compiled absorption model.
func (r *Record) Absorption() physics.Absorption { return r.absorptionModel }

// MacroscopicCrossSection returns Σ(ν) at the given local density, per
// spec.md §4.3 step 2: ρ·N_A/M·(σ_Compton + σ_Rayleigh·[rayleigh] +
// σ_abs·[absorption=Discrete]).
func (r *Record) MacroscopicCrossSection(energy, density float64, rayleighOn, absorptionOn bool) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	sigma := r.comptonCrossSection.At(energy)
	if rayleighOn {
		sigma += r.rayleighCrossSection.At(energy)
	}
	if absorptionOn {
		sigma += r.absorptionCrossSection.At(energy)
	}
	numberDensity := density * constants.AvogadroNumber / r.Definition.MolarMass()
	return numberDensity * sigma
}

// AbsorptionCrossSectionAt returns σ_abs(ν), used for the continuous
// absorption survival factor of spec.md §4.3/§4.7.
func (r *Record) AbsorptionCrossSectionAt(energy float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.absorptionCrossSection.At(energy)
}

// ComponentCrossSections returns the per-electron/per-atom microscopic
// cross sections at energy (Compton, Rayleigh, absorption), letting the
// kernel combine them with a local or look-ahead density itself for
// Woodcock sampling (spec.md §4.3 steps 2-6).
func (r *Record) ComponentCrossSections(energy float64) (compton, rayleigh, absorption float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.comptonCrossSection.At(energy), r.rayleighCrossSection.At(energy), r.absorptionCrossSection.At(energy)
}

// NumberDensity converts a local mass density (g/cm3) into a number
// density (cm^-3) for this material, per spec.md §4.3 step 2's
// ρ·N_A/M factor.
func (r *Record) NumberDensity(density float64) float64 {
	return density * constants.AvogadroNumber / r.Definition.MolarMass()
}

// Registry owns the set of materials referenced by a Geometry's sectors
// (spec.md §3 "Material registry"). Registration happens once at startup;
// Compute may be called repeatedly as settings are resolved.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Record
	ordered []*Record
}

// NewRegistry returns an empty material registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Record)}
}

// Register adds def to the registry, returning its material index.
func (reg *Registry) Register(def Definition) (int, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.byName[def.Name]; exists {
		return 0, fmt.Errorf("%w: material %q already registered", kernelerr.ErrConfig, def.Name)
	}
	rec := newRecord(def)
	reg.byName[def.Name] = rec
	reg.ordered = append(reg.ordered, rec)
	return len(reg.ordered) - 1, nil
}

// Get returns the Record at index i.
func (reg *Registry) Get(i int) (*Record, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if i < 0 || i >= len(reg.ordered) {
		return nil, fmt.Errorf("%w: material index %d out of range", kernelerr.ErrGeometry, i)
	}
	return reg.ordered[i], nil
}

// Index returns the material index registered under name.
func (reg *Registry) Index(name string) (int, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rec, ok := reg.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown material %q", kernelerr.ErrConfig, name)
	}
	for i, r := range reg.ordered {
		if r == rec {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: material %q not indexed", kernelerr.ErrConfig, name)
}

// Compute builds every registered material's tables for settings (spec.md
// §4.1: "for every registered material, build the subset of tables
// required by the settings").
func (reg *Registry) Compute(settings Settings) error {
	reg.mu.RLock()
	records := append([]*Record(nil), reg.ordered...)
	reg.mu.RUnlock()

	for _, rec := range records {
		if err := rec.Compute(settings); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of registered materials.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.ordered)
}
