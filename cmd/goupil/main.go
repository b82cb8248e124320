// Command goupil runs a Goupil transport batch from a TOML run file,
// mirroring the teacher's main.go: flag-driven, one TOML document describing
// every named model, CSV output per model via internal/report.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"sort"

	"github.com/goupil-mc/goupil/internal/config"
	"github.com/goupil-mc/goupil/internal/elements"
	"github.com/goupil-mc/goupil/internal/geometry"
	"github.com/goupil-mc/goupil/internal/material"
	"github.com/goupil-mc/goupil/internal/numeric"
	"github.com/goupil-mc/goupil/internal/physics"
	"github.com/goupil-mc/goupil/internal/report"
	"github.com/goupil-mc/goupil/internal/rng"
	"github.com/goupil-mc/goupil/internal/state"
	"github.com/goupil-mc/goupil/internal/transport"
)

func main() {
	runPath := flag.String("run", "", "path to a Goupil run file (TOML)")
	only := flag.String("model", "", "run only the named model (default: every model in the run file)")
	outputDir := flag.String("o", "", "override the run file's output_dir")
	workers := flag.Int("workers", runtime.NumCPU(), "number of transport worker goroutines per model")
	verbose := flag.Bool("v", false, "log per-model progress")
	flag.Parse()

	if *runPath == "" {
		fmt.Fprintln(os.Stderr, "usage: goupil -run <file.toml> [-model name] [-o dir] [-workers n] [-v]")
		os.Exit(2)
	}

	run, err := config.Load(*runPath)
	if err != nil {
		log.Fatalf("goupil: %v", err)
	}
	if *outputDir != "" {
		run.OutputDir = *outputDir
	}
	if run.OutputDir == "" {
		run.OutputDir = "."
	}
	if *verbose {
		run.Verbose = true
	}

	names := make([]string, 0, len(run.Models))
	for name := range run.Models {
		if *only != "" && name != *only {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		log.Fatalf("goupil: no matching model in %s", *runPath)
	}

	for _, name := range names {
		if run.Verbose {
			log.Printf("goupil: running model %q", name)
		}
		if err := runModel(run, name, *workers); err != nil {
			log.Fatalf("goupil: model %q: %v", name, err)
		}
	}
}

func runModel(run *config.Run, name string, workers int) error {
	model := run.Models[name]
	if err := model.Transport.Validate(); err != nil {
		return err
	}

	registry, sectorMaterial, err := buildMaterials(run, model)
	if err != nil {
		return err
	}

	geo, boundarySector, err := buildGeometry(model, sectorMaterial)
	if err != nil {
		return err
	}

	settings, err := buildKernelSettings(model.Transport, boundarySector)
	if err != nil {
		return err
	}

	if err := registry.Compute(material.Settings{
		Mode:          settings.Mode,
		ComptonModel:  settings.ComptonModel,
		ComptonMethod: settings.ComptonMethod,
		EnergyMin:     settings.EnergyMin,
		EnergyMax:     settings.EnergyMax,
		GridNodes:     model.Transport.GridNodes,
		Rayleigh:      settings.Rayleigh,
	}); err != nil {
		return err
	}

	batch, err := buildBatch(model)
	if err != nil {
		return err
	}

	kernel := &transport.Kernel{Materials: registry, Geometry: geo, Settings: settings}
	if err := kernel.RunWorkers(batch, workers); err != nil {
		return err
	}

	return writeReport(run.OutputDir, name, batch)
}

// buildMaterials registers every material the run file declares and returns
// a lookup from sector material name to registry index.
func buildMaterials(run *config.Run, model config.ModelConfig) (*material.Registry, map[string]int, error) {
	registry := material.NewRegistry()
	index := make(map[string]int, len(run.Materials))

	names := make([]string, 0, len(run.Materials))
	for n := range run.Materials {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		mat := run.Materials[n]
		components := make([]material.ComponentFraction, 0, len(mat.Composition))
		byMole := false
		for _, c := range mat.Composition {
			el, err := elements.Lookup(c.Symbol)
			if err != nil {
				return nil, nil, fmt.Errorf("material %q: %w", n, err)
			}
			components = append(components, material.ComponentFraction{Element: el, Fraction: c.Fraction})
			if c.ByMole {
				byMole = true
			}
		}
		def, err := material.NewDefinition(n, components, byMole)
		if err != nil {
			return nil, nil, fmt.Errorf("material %q: %w", n, err)
		}
		i, err := registry.Register(def)
		if err != nil {
			return nil, nil, err
		}
		index[n] = i
	}

	_ = model // materials are shared by the whole run; sectors are per-model
	return registry, index, nil
}

// buildGeometry builds the model's Stratified geometry, returning the
// resolved boundary sector index (-1 if none configured).
func buildGeometry(model config.ModelConfig, materialIndex map[string]int) (*geometry.Stratified, int, error) {
	sectors := make([]geometry.Sector, 0, len(model.Sectors))
	tops := make([]float64, 0, len(model.Sectors))
	boundary := -1

	for i, sc := range model.Sectors {
		matIdx, ok := materialIndex[sc.Material]
		if !ok {
			return nil, 0, fmt.Errorf("sector %d: unknown material %q", i, sc.Material)
		}

		rho0, err := config.ToCGS(sc.Density, sc.DensityUnit)
		if err != nil {
			return nil, 0, fmt.Errorf("sector %d: %w", i, err)
		}

		var density geometry.DensityModel
		switch sc.DensityModel {
		case "", "uniform":
			density = geometry.Uniform(rho0)
		case "exponential":
			density = geometry.Exponential{
				Reference: geometry.Vec3{0, 0, 0},
				Normal:    geometry.Vec3(sc.Gradient),
				Rho0:      rho0,
				Scale:     sc.Scale,
			}
		default:
			return nil, 0, fmt.Errorf("sector %d: unknown density_model %q", i, sc.DensityModel)
		}

		sectors = append(sectors, geometry.Sector{
			MaterialIndex: matIdx,
			Density:       density,
			Description:   sc.Description,
		})
		tops = append(tops, sc.Top)

		if sc.Description != "" && sc.Description == model.Transport.BoundarySector {
			boundary = i
		}
	}

	if model.Transport.BoundarySector != "" && boundary < 0 {
		return nil, 0, fmt.Errorf("boundary_sector %q does not match any sector description", model.Transport.BoundarySector)
	}

	return geometry.NewStratified(sectors, tops), boundary, nil
}

func buildKernelSettings(tc config.TransportConfig, boundarySector int) (transport.Settings, error) {
	settings := transport.Settings{
		BoundarySector: boundarySector,
		EnergyMin:      tc.EnergyMin,
		EnergyMax:      tc.EnergyMax,
		LengthMax:      tc.LengthMax,
		SourceEnergies: tc.SourceEnergies,
	}

	switch tc.Mode {
	case "forward":
		settings.Mode = physics.Forward
	case "backward":
		settings.Mode = physics.Backward
	default:
		return settings, fmt.Errorf("unknown transport mode %q", tc.Mode)
	}

	switch tc.Absorption {
	case "discrete":
		settings.Absorption = physics.Discrete
	case "continuous":
		settings.Absorption = physics.Continuous
	case "off":
		settings.Absorption = physics.Off
	}

	switch tc.ComptonModel {
	case "klein_nishina":
		settings.ComptonModel = physics.KleinNishina
	case "penelope":
		settings.ComptonModel = physics.Penelope
	default:
		settings.ComptonModel = physics.ScatteringFunction
	}

	switch tc.ComptonMethod {
	case "inverse_transform":
		settings.ComptonMethod = physics.InverseTransform
	default:
		settings.ComptonMethod = physics.Rejection
	}

	settings.Rayleigh = tc.Rayleigh == nil || *tc.Rayleigh
	settings.VolumeSources = tc.VolumeSources == nil || *tc.VolumeSources

	return settings, nil
}

// buildBatch generates the model's initial photon batch from its
// [Models.<name>.Source] table. Source generation is CLI plumbing, not
// kernel responsibility (spec.md §1: "not a source sampler"); it draws from
// a seed domain distinct from the transport batch's own substreams so the
// two never share a counter sequence.
func buildBatch(model config.ModelConfig) (*state.Batch, error) {
	src := model.Source
	n := src.Count
	if n <= 0 {
		return nil, fmt.Errorf("model has no [Source] (count <= 0)")
	}

	var spectrum [][2]float64
	if src.SpectrumFile != "" {
		var err error
		spectrum, err = report.ReadEnergySpectrum(src.SpectrumFile)
		if err != nil {
			return nil, err
		}
	}

	batch := state.NewBatch(n, rng.Seed{model.Seed, 0})
	sourceSeed := rng.Seed{model.Seed, 1}

	for i := 0; i < n; i++ {
		draw := rng.New(sourceSeed, uint64(i))

		energy := src.Energy
		if spectrum != nil {
			energy = sampleSpectrum(spectrum, draw.Float64())
		}

		direction := geometry.Vec3(src.Direction)
		if src.Isotropic || direction.Norm2() == 0 {
			// Marsaglia's method: a point drawn uniformly on the unit disk by
			// rejection lifts to a point uniform on the unit sphere.
			a, b := numeric.UniformOnDisk(draw, 1)
			s := a*a + b*b
			lift := 2 * math.Sqrt(1-s)
			direction = geometry.Vec3{a * lift, b * lift, 1 - 2*s}
		} else {
			norm := math.Sqrt(direction.Norm2())
			direction = geometry.Vec3{direction[0] / norm, direction[1] / norm, direction[2] / norm}
		}

		batch.Photons[i] = state.Photon{
			Energy:    energy,
			Position:  geometry.Vec3(src.Position),
			Direction: direction,
			Weight:    1.0,
		}
	}
	return batch, nil
}

// sampleSpectrum inverts a small (energy, weight) table by linear scan over
// its cumulative weight, adequate for the modest line counts a CLI run
// supplies (a compiled table sampler lives in internal/sample for the
// kernel's own per-material grids).
func sampleSpectrum(spectrum [][2]float64, u float64) float64 {
	total := 0.0
	for _, line := range spectrum {
		total += line[1]
	}
	if total <= 0 {
		return spectrum[0][0]
	}
	target := u * total
	cum := 0.0
	for _, line := range spectrum {
		cum += line[1]
		if cum >= target {
			return line[0]
		}
	}
	return spectrum[len(spectrum)-1][0]
}

func writeReport(outputDir, modelName string, batch *state.Batch) error {
	statuses := make([]string, batch.Len())
	for i := range statuses {
		statuses[i] = batch.Status[i].String()
	}
	if err := report.WriteTable(outputDir, modelName, "status_histogram", []string{"status", "count"}, report.StatusHistogram(statuses)); err != nil {
		return err
	}

	rows := make(report.Table, batch.Len())
	weights := make([]float64, batch.Len())
	for i := 0; i < batch.Len(); i++ {
		ph := batch.Photons[i]
		weights[i] = ph.Weight
		rows[i] = []string{
			batch.Status[i].String(),
			fmt.Sprintf("%g", ph.Energy),
			fmt.Sprintf("%g", ph.Position[0]),
			fmt.Sprintf("%g", ph.Position[1]),
			fmt.Sprintf("%g", ph.Position[2]),
			fmt.Sprintf("%g", ph.Length),
			fmt.Sprintf("%g", ph.Weight),
		}
	}
	header := []string{"status", "energy_MeV", "x_cm", "y_cm", "z_cm", "length_cm", "weight"}
	if err := report.WriteTable(outputDir, modelName, "states", header, rows); err != nil {
		return err
	}

	mean, stderr := report.WeightStatistics(weights)
	summary := report.Table{{"weight", fmt.Sprintf("%g", mean), fmt.Sprintf("%g", stderr)}}
	return report.WriteTable(outputDir, modelName, "weight_statistics", []string{"quantity", "mean", "stderr"}, summary)
}
