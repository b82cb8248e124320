// Package report writes batch transport results to CSV, natural-sorted by
// row key, mirroring the teacher's flag-gated named-output export.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"sort"

	"github.com/facette/natsort"
	"github.com/goupil-mc/goupil/internal/numeric"
)

// Table is a CSV body (excluding header) whose rows sort by their first
// column using natural (non-lexicographic) order, so e.g. sector names
// "sector2" < "sector10" the way a human expects.
type Table [][]string

func (t Table) Len() int      { return len(t) }
func (t Table) Swap(i, j int) { t[i], t[j] = t[j], t[i] }
func (t Table) Less(i, j int) bool {
	return natsort.Compare(t[i][0], t[j][0])
}

// WriteTable writes header followed by the natural-sorted rows of body to
// outputDir/subdir/name.csv.
func WriteTable(outputDir, subdir, name string, header []string, body Table) error {
	f, err := CreateOutput(outputDir, subdir, name)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	sort.Sort(body)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}
	if err := w.WriteAll(body); err != nil {
		return fmt.Errorf("report: writing rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// StatusHistogram tallies terminal status codes across a batch, keyed by
// status name, for the CLI's summary CSV (spec §4.7's terminal status set).
func StatusHistogram(statuses []string) Table {
	counts := make(map[string]int, len(statuses))
	for _, s := range statuses {
		counts[s]++
	}
	rows := make(Table, 0, len(counts))
	for name, n := range counts {
		rows = append(rows, []string{name, fmt.Sprintf("%d", n)})
	}
	return rows
}

// WeightStatistics returns the sample mean and standard error of the mean of
// weights, the statistical-error figure a backward/forward estimator
// comparison is checked against (spec §8 property 8: "agrees ... within the
// combined 1σ statistical error"). Returns 0, 0 for an empty batch, and the
// single weight with a zero standard error for a single-sample batch.
func WeightStatistics(weights []float64) (mean, stderr float64) {
	if len(weights) < 2 {
		if len(weights) == 1 {
			return weights[0], 0
		}
		return 0, 0
	}
	mean, variance := numeric.MeanAndVariance(weights, true)
	stderr = math.Sqrt(variance / float64(len(weights)))
	return mean, stderr
}
