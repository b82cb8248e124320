// Package geometry defines the Geometry/Tracer contract the transport
// kernel depends on (spec.md §4.5), plus one minimal concrete geometry
// (Stratified) and a SphereBoundary helper sufficient to exercise and test
// the kernel end to end. Concrete back-ends beyond Stratified are a host
// concern reached through internal/abi, per spec.md §1's explicit scoping.
package geometry

import (
	"math"

	"github.com/goupil-mc/goupil/internal/kernelerr"
)

// Vec3 is a CGS 3-vector: position in cm, direction a unit vector.
type Vec3 [3]float64

func (v Vec3) Add(s float64, d Vec3) Vec3 {
	return Vec3{v[0] + s*d[0], v[1] + s*d[1], v[2] + s*d[2]}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Norm2() float64 { return v.Dot(v) }

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Sector is (material_index, density_model, description); density is
// evaluated opaquely through DensityModel.At (spec.md §3 Sector).
type Sector struct {
	MaterialIndex int
	Density       DensityModel
	Description   string
}

// DensityModel answers density_at(position) -> g/cm3 for one sector.
type DensityModel interface {
	At(position Vec3) float64
}

// Uniform is a constant-density model, g/cm3.
type Uniform float64

func (u Uniform) At(Vec3) float64 { return float64(u) }

// Exponential is ρ(r) = ρ₀·exp((r−r₀)·n̂/λ), spec.md §3 Sector's example
// continuous density function.
type Exponential struct {
	Reference Vec3    // r0
	Normal    Vec3    // n̂, should be unit length
	Rho0      float64 // g/cm3
	Scale     float64 // λ, cm
}

func (e Exponential) At(position Vec3) float64 {
	d := position.Sub(e.Reference).Dot(e.Normal)
	return e.Rho0 * math.Exp(d/e.Scale)
}

// Definition is the immutable ordered list of materials and sectors a
// Geometry exposes (spec.md §3 "Geometry (definition)").
type Definition struct {
	Sectors []Sector
}

// Sector returns the sector at index i.
func (d *Definition) Sector(i int) (Sector, error) {
	if i < 0 || i >= len(d.Sectors) {
		return Sector{}, kernelerr.ErrGeometry
	}
	return d.Sectors[i], nil
}

// Tracer is the mutable ray-tracing cursor contract the kernel depends on
// (spec.md §4.5), implemented per concrete back-end.
type Tracer interface {
	// Reset seats the cursor at position with direction, setting the
	// current sector by point location.
	Reset(position, direction Vec3)
	// Sector returns the current sector index; defined after Reset and
	// after every Update that stays inside the domain.
	Sector() int
	// Position returns the cursor's current position.
	Position() Vec3
	// Trace returns the distance to the next interface along direction,
	// clipped to maxLength.
	Trace(maxLength float64) float64
	// Update advances by length and installs newDirection, recomputing
	// the current sector.
	Update(length float64, newDirection Vec3)
	// Outside reports whether the cursor has left the outermost domain
	// (only meaningful after an Update following a Trace that reached the
	// exit distance).
	Outside() bool
	// DensityAt returns the density of sector at position, g/cm3.
	DensityAt(sector int, position Vec3) float64
}
