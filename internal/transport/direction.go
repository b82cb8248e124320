package transport

import (
	"math"

	"github.com/goupil-mc/goupil/internal/geometry"
)

// rotate turns direction d by polar angle (cosTheta, sinTheta implied) and
// azimuth phi, generalizing _examples/wildstyl3r-stmc/particle.go's
// redirect(cosChi, cosPhi) (a 1D mu update) to the full 3D direction-cosine
// update spec.md §4.3 requires, switching to an alternate reference axis
// near the pole to avoid the |d_z| ≈ 1 degeneracy.
func rotate(d geometry.Vec3, cosTheta, phi float64) geometry.Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	var u1, u2 geometry.Vec3
	if math.Abs(d[2]) < 0.99999 {
		norm := 1 / math.Sqrt(d[0]*d[0]+d[1]*d[1])
		u1 = geometry.Vec3{-d[1] * norm, d[0] * norm, 0}
	} else {
		norm := 1 / math.Sqrt(d[1]*d[1]+d[2]*d[2])
		u1 = geometry.Vec3{0, -d[2] * norm, d[1] * norm}
	}
	u2 = geometry.Vec3{
		d[1]*u1[2] - d[2]*u1[1],
		d[2]*u1[0] - d[0]*u1[2],
		d[0]*u1[1] - d[1]*u1[0],
	}

	result := geometry.Vec3{
		cosTheta*d[0] + sinTheta*(cosPhi*u1[0]+sinPhi*u2[0]),
		cosTheta*d[1] + sinTheta*(cosPhi*u1[1]+sinPhi*u2[1]),
		cosTheta*d[2] + sinTheta*(cosPhi*u1[2]+sinPhi*u2[2]),
	}
	norm := math.Sqrt(result.Norm2())
	return geometry.Vec3{result[0] / norm, result[1] / norm, result[2] / norm}
}
