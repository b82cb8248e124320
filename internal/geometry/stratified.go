package geometry

import "math"

// Stratified is a stack of parallel-plane layers along z, each with its own
// sector (material + density model), the minimal concrete geometry
// supplemented per spec.md's original Rust sources
// (src/transport/geometry/stratified.rs's layer-stack shape), sufficient to
// drive the kernel's test scenarios without the full DEM/topography
// machinery a host back-end would provide.
type Stratified struct {
	def Definition
	// Tops[i] is the upper z bound of layer i; Tops[len-1] is the domain's
	// outer boundary (EXIT beyond it). Layers are ordered bottom to top.
	Tops []float64
}

// NewStratified builds a Stratified geometry from layers ordered bottom to
// top, each with its own sector and top-z interface.
func NewStratified(sectors []Sector, tops []float64) *Stratified {
	return &Stratified{def: Definition{Sectors: sectors}, Tops: tops}
}

// Sector returns the sector at index i, as required by the transport
// kernel's Geometry contract.
func (s *Stratified) Sector(i int) (Sector, error) {
	return s.def.Sector(i)
}

func (s *Stratified) layerAt(z float64) int {
	for i, top := range s.Tops {
		if z < top {
			return i
		}
	}
	return len(s.Tops) // outside
}

// stratifiedTracer is the mutable cursor over a Stratified geometry.
type stratifiedTracer struct {
	geo       *Stratified
	position  Vec3
	direction Vec3
	sector    int
	outside   bool
}

// NewTracer returns a fresh Tracer bound to s; tracers are independent and
// safe for per-worker use (spec.md §4.5).
func (s *Stratified) NewTracer() Tracer {
	return &stratifiedTracer{geo: s}
}

func (t *stratifiedTracer) Reset(position, direction Vec3) {
	t.position = position
	t.direction = direction
	t.sector = t.geo.layerAt(position[2])
	t.outside = t.sector >= len(t.geo.Tops)
}

func (t *stratifiedTracer) Sector() int { return t.sector }

func (t *stratifiedTracer) Position() Vec3 { return t.position }

func (t *stratifiedTracer) Outside() bool { return t.outside }

// Trace returns the distance to the next z-interface along direction,
// clipped to maxLength; spec.md §4.5: "Crossing out of the outermost domain
// is reported by returning a length equal to the distance to the exit."
func (t *stratifiedTracer) Trace(maxLength float64) float64 {
	dz := t.direction[2]
	if math.Abs(dz) < 1e-15 {
		return maxLength
	}

	var target float64
	if t.sector >= len(t.geo.Tops) {
		// Outside the domain already; no further interface to cross.
		return maxLength
	}
	if dz > 0 {
		target = t.geo.Tops[t.sector]
	} else if t.sector == 0 {
		return maxLength // no lower bound below the bottom layer
	} else {
		target = t.geo.Tops[t.sector-1]
	}

	d := (target - t.position[2]) / dz
	if d < 0 {
		d = 0
	}
	if d > maxLength {
		return maxLength
	}
	return d
}

func (t *stratifiedTracer) Update(length float64, newDirection Vec3) {
	movedDown := t.direction[2] < 0
	t.position = t.position.Add(length, t.direction)
	t.direction = newDirection
	t.sector = t.geo.layerAt(t.position[2])
	// A downward step that ends exactly on an interface belongs to the layer
	// below it.
	if movedDown && t.sector > 0 && t.sector <= len(t.geo.Tops) && t.position[2] == t.geo.Tops[t.sector-1] {
		t.sector--
	}
	t.outside = t.sector >= len(t.geo.Tops)
}

func (t *stratifiedTracer) DensityAt(sector int, position Vec3) float64 {
	sec, err := t.geo.def.Sector(sector)
	if err != nil {
		return 0
	}
	return sec.Density.At(position)
}

// SphereBoundary is the supplemented outer spherical constraint of
// spec.md's original Rust sources (src/transport/boundary.rs's
// TransportBoundary::Sphere), usable by a test or host geometry as an
// additional outer boundary alongside the sector-indexed inner boundary
// spec.md §3/§4.3 requires. Purely additive: it does not change the
// Geometry/Tracer contract above.
type SphereBoundary struct {
	Center Vec3
	Radius float64
}

// Distance returns the distance to the sphere's surface along direction
// from position, or +Inf if the ray never reaches it.
func (s SphereBoundary) Distance(position, direction Vec3) float64 {
	v := s.Center.Sub(position)
	vu := v.Dot(direction)
	h2 := v.Norm2() - vu*vu
	r2 := s.Radius * s.Radius
	if h2 > r2 {
		return math.Inf(1)
	}
	if h2 == r2 {
		if vu > 0 {
			return vu
		}
		return math.Inf(1)
	}
	delta := math.Sqrt(r2 - h2)
	d0 := vu + delta
	if d0 > 0 {
		d1 := vu - delta
		if d1 > 0 {
			return d1
		}
		return d0
	}
	return math.Inf(1)
}

// Inside reports whether position lies within the sphere.
func (s SphereBoundary) Inside(position Vec3) bool {
	return position.Sub(s.Center).Norm2() < s.Radius*s.Radius
}
