package sample

import "github.com/goupil-mc/goupil/internal/numeric"

// Sampler is the minimal random-draw surface rejection sampling needs.
type Sampler interface {
	Float64() float64
}

// Majorant finds an upper bound for f on [min, max] using ternary search,
// the same `TernarySearchMaxF` pattern the teacher uses to bound its
// collision majorant before a null-collision free-flight sampler.
func Majorant(f func(float64) float64, min, max, eps float64) float64 {
	return numeric.TernarySearchMaxF(f, min, max, eps)
}

// Rejection draws x uniformly on [min, max] with acceptance probability
// f(x)/majorant, the Kahn-style rejection sampler spec §4.2 allows as an
// alternative to inverse-CDF sampling for the Klein-Nishina DCS.
func Rejection(f func(float64) float64, min, max, majorant float64, u Sampler) float64 {
	for {
		x := min + u.Float64()*(max-min)
		if u.Float64()*majorant <= f(x) {
			return x
		}
	}
}
