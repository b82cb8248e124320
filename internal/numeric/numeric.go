// Package numeric collects small generic numerical helpers shared by the
// table-building and sampling packages: reductions over slices, root/extremum
// search, and a disk sampling primitive.
package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any scalar type the reduction helpers below can operate on.
type Number interface {
	constraints.Float | constraints.Integer
}

// Average returns the arithmetic mean of s.
func Average[T Number](s []T) (mean float64) {
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

// MeanAndVariance returns the mean and (biased or unbiased) variance of s.
func MeanAndVariance[T Number](s []T, unbiased bool) (mean, variance float64) {
	mean = Average(s)
	for i := range s {
		variance += (float64(s[i]) - mean) * (float64(s[i]) - mean)
	}
	if unbiased {
		variance /= float64(len(s) - 1)
	} else {
		variance /= float64(len(s))
	}
	return
}

// Variance returns the (biased or unbiased) variance of s.
func Variance[T Number](s []T, unbiased bool) float64 {
	_, v := MeanAndVariance(s, unbiased)
	return v
}

// UniformOnDisk draws a point uniformly on a disk of radius r, by rejection.
func UniformOnDisk(rng interface{ Float64() float64 }, r float64) (a, b float64) {
	a, b = 2.*rng.Float64()-1., 2.*rng.Float64()-1.
	for a*a+b*b > 1. {
		a, b = 2.*rng.Float64()-1., 2.*rng.Float64()-1.
	}
	a *= r
	b *= r
	return
}

// IsFiniteNonNegative reports whether v is finite and >= 0, the invariant
// required of the photon weight at every step (spec §4.7 / §8 property 4).
func IsFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
