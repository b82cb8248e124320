// Package abi loads the spec §6 geometry plug-in shared library: a
// dynamically loaded, self-contained host geometry reachable without cgo,
// via github.com/ebitengine/purego, the way _examples/Mikko-Finell-mad-ca's
// UI module reaches native platform code from pure Go.
//
// The upstream Python bindings (original_source/src/python/geometry.rs)
// expose a single `goupil_initialise()` entry point returning a value-type
// table of constructors. purego cannot receive a struct-of-function-pointers
// return value without cgo, so this package instead resolves each table
// entry by its own exported symbol name (`goupil_geometry_definition_new`,
// `goupil_geometry_tracer_reset`, ...); the flattening is documented in
// DESIGN.md as a deliberate simplification of the ABI's description.
package abi

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/goupil-mc/goupil/internal/geometry"
	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// Float3 mirrors goupil_float3: three CGS components (cm, or a unit
// direction).
type Float3 = geometry.Vec3

// WeightedElement mirrors goupil_weighted_element.
type WeightedElement struct {
	Weight float64
	Z      int32
}

// MaterialDefinition mirrors goupil_material_definition, read out of the
// plug-in into native Go values.
type MaterialDefinition struct {
	Name        string
	Composition []WeightedElement
}

// Library is a loaded geometry plug-in shared library.
type Library struct {
	handle uintptr

	newDefinition     func() uintptr
	destroyDefinition func(uintptr)
	materialsLen      func(uintptr) int32
	sectorsLen        func(uintptr) int32
	getMaterialName   func(uintptr, int32) string
	getMaterialLen    func(uintptr, int32) int32
	getMaterialElem   func(uintptr, int32, int32, *WeightedElement)
	getSector         func(uintptr, int32, *int32, *float64, *string)

	newTracer     func(uintptr) uintptr
	destroyTracer func(uintptr)
	reset         func(uintptr, Float3, Float3)
	sector        func(uintptr) int32
	position      func(uintptr) Float3
	trace         func(uintptr, float64) float64
	update        func(uintptr, float64, Float3)
}

// Open dlopens path and binds every goupil_* entry point. The returned
// Library remains valid until Close.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%w: opening geometry plug-in %q: %v", kernelerr.ErrGeometry, path, err)
	}

	lib := &Library{handle: handle}
	bind := func(target any, name string) {
		purego.RegisterLibFunc(target, handle, name)
	}

	bind(&lib.newDefinition, "goupil_geometry_definition_new")
	bind(&lib.destroyDefinition, "goupil_geometry_definition_destroy")
	bind(&lib.materialsLen, "goupil_geometry_definition_materials_len")
	bind(&lib.sectorsLen, "goupil_geometry_definition_sectors_len")
	bind(&lib.getMaterialName, "goupil_material_definition_name")
	bind(&lib.getMaterialLen, "goupil_material_definition_composition_len")
	bind(&lib.getMaterialElem, "goupil_material_definition_get_composition")
	bind(&lib.getSector, "goupil_geometry_definition_get_sector")

	bind(&lib.newTracer, "goupil_geometry_tracer_new")
	bind(&lib.destroyTracer, "goupil_geometry_tracer_destroy")
	bind(&lib.reset, "goupil_geometry_tracer_reset")
	bind(&lib.sector, "goupil_geometry_tracer_sector")
	bind(&lib.position, "goupil_geometry_tracer_position")
	bind(&lib.trace, "goupil_geometry_tracer_trace")
	bind(&lib.update, "goupil_geometry_tracer_update")

	return lib, nil
}

// Definition is a geometry plug-in's opaque, immutable definition handle
// (goupil_geometry_definition). It stays alive for as long as any Tracer
// built from it is in use; the caller owns Close.
type Definition struct {
	lib    *Library
	handle uintptr
}

// NewDefinition constructs a plug-in definition.
func (lib *Library) NewDefinition() *Definition {
	return &Definition{lib: lib, handle: lib.newDefinition()}
}

// Close releases the definition's native resources.
func (d *Definition) Close() {
	d.lib.destroyDefinition(d.handle)
}

// MaterialsLen returns the number of distinct materials the definition
// references.
func (d *Definition) MaterialsLen() int { return int(d.lib.materialsLen(d.handle)) }

// SectorsLen returns the number of sectors the definition describes.
func (d *Definition) SectorsLen() int { return int(d.lib.sectorsLen(d.handle)) }

// Material reads out material i's definition.
func (d *Definition) Material(i int) MaterialDefinition {
	n := int(d.lib.getMaterialLen(d.handle, int32(i)))
	composition := make([]WeightedElement, n)
	for k := 0; k < n; k++ {
		d.lib.getMaterialElem(d.handle, int32(i), int32(k), &composition[k])
	}
	return MaterialDefinition{
		Name:        d.lib.getMaterialName(d.handle, int32(i)),
		Composition: composition,
	}
}

// Sector reads out sector i as an internal/geometry.Sector, with a constant
// density equal to the plug-in's reported value (plug-in geometries report
// a per-sector reference density rather than a continuous DensityModel;
// Tracer.DensityAt also returns this per-sector value, so density does not
// vary with position inside a plug-in sector).
func (d *Definition) Sector(i int) (geometry.Sector, error) {
	if i < 0 || i >= d.SectorsLen() {
		return geometry.Sector{}, fmt.Errorf("%w: sector index %d out of range", kernelerr.ErrGeometry, i)
	}
	var materialIndex int32
	var density float64
	var description string
	d.lib.getSector(d.handle, int32(i), &materialIndex, &density, &description)
	return geometry.Sector{
		MaterialIndex: int(materialIndex),
		Density:       geometry.Uniform(density),
		Description:   description,
	}, nil
}

// Tracer is a geometry plug-in's mutable ray-tracing cursor
// (goupil_geometry_tracer), implementing internal/geometry.Tracer.
type Tracer struct {
	lib        *Library
	handle     uintptr
	def        *Definition
	lastLength float64
	lastMax    float64
}

// NewTracer builds a plug-in tracer bound to def.
func (d *Definition) NewTracer() geometry.Tracer {
	return &Tracer{lib: d.lib, handle: d.lib.newTracer(d.handle), def: d}
}

// Close releases the tracer's native resources. The bound Definition must
// outlive the tracer.
func (t *Tracer) Close() { t.lib.destroyTracer(t.handle) }

func (t *Tracer) Reset(position, direction geometry.Vec3) {
	t.lib.reset(t.handle, Float3(position), Float3(direction))
}

func (t *Tracer) Sector() int { return int(t.lib.sector(t.handle)) }

func (t *Tracer) Position() geometry.Vec3 { return geometry.Vec3(t.lib.position(t.handle)) }

func (t *Tracer) Trace(maxLength float64) float64 {
	t.lastMax = maxLength
	t.lastLength = t.lib.trace(t.handle, maxLength)
	return t.lastLength
}

func (t *Tracer) Update(length float64, newDirection geometry.Vec3) {
	t.lib.update(t.handle, length, Float3(newDirection))
}

// Outside reports whether the plug-in tracer's current sector index is
// negative, i.e. the tracer has left the outermost domain.
func (t *Tracer) Outside() bool {
	return t.Sector() < 0
}

// DensityAt returns the density the plug-in definition reports for sector,
// independent of position (see Definition.Sector's note on reference
// densities).
func (t *Tracer) DensityAt(sector int, position geometry.Vec3) float64 {
	sec, err := t.def.Sector(sector)
	if err != nil {
		return 0
	}
	return sec.Density.At(position)
}

var _ geometry.Tracer = (*Tracer)(nil)
