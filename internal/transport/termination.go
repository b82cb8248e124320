package transport

import "math"

// crossedSourceEnergy reports whether a configured source energy lies
// between from and to (a backward Compton event's pre- and post-event
// energy), returning the nearest one by absolute distance when several
// qualify. Ties are broken toward the lower energy. This resolves
// spec.md §9's `source_energies` Open Question; see DESIGN.md.
func crossedSourceEnergy(sources []float64, from, to float64) (float64, bool) {
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}

	var best float64
	found := false
	bestDist := math.Inf(1)
	for _, e := range sources {
		if e < lo || e > hi {
			continue
		}
		dist := math.Min(math.Abs(e-from), math.Abs(e-to))
		if dist < bestDist || (dist == bestDist && e < best) {
			bestDist = dist
			best = e
			found = true
		}
	}
	return best, found
}
