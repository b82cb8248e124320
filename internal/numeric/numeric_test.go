package numeric

import (
	"math"
	"testing"
)

func TestMeanAndVarianceKnownSample(t *testing.T) {
	mean, variance := MeanAndVariance([]float64{2, 4, 4, 4, 5, 5, 7, 9}, true)
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(variance-32.0/7) > 1e-9 {
		t.Errorf("unbiased variance = %v, want 32/7", variance)
	}
}

func TestVarianceBiasedVsUnbiased(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	biased := Variance(s, false)
	unbiased := Variance(s, true)
	if unbiased <= biased {
		t.Errorf("unbiased variance (%v) should exceed biased variance (%v)", unbiased, biased)
	}
}

type constStream struct{ v float64 }

func (c constStream) Float64() float64 { return c.v }

type sequenceStream struct {
	values []float64
	i      int
}

func (s *sequenceStream) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestUniformOnDiskStaysWithinRadius(t *testing.T) {
	stream := &sequenceStream{values: []float64{0.1, 0.2, 0.9, 0.95, 0.5, 0.5}}
	a, b := UniformOnDisk(stream, 2.0)
	if a*a+b*b > 4.0+1e-9 {
		t.Errorf("UniformOnDisk point (%v, %v) lies outside the radius-2 disk", a, b)
	}
}

func TestIsFiniteNonNegative(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{1.5, true},
		{-0.001, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, c := range cases {
		if got := IsFiniteNonNegative(c.v); got != c.want {
			t.Errorf("IsFiniteNonNegative(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}
