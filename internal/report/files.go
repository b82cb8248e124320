package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadEnergySpectrum reads a two-column (energy_MeV, weight) text file, one
// line per spectrum line, used by cmd/goupil to load the source spectrum file
// from which initial photon energies are sampled.
func ReadEnergySpectrum(filename string) ([][2]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("report: opening spectrum file: %w", err)
	}
	defer file.Close()

	var result [][2]float64

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Fields(line)

		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("report: invalid spectrum line %q: expected 2 columns, got %d", line, len(parts))
		}

		energy, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("report: parsing energy in %q: %w", line, err)
		}
		weight, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("report: parsing weight in %q: %w", line, err)
		}

		result = append(result, [2]float64{energy, weight})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("report: reading spectrum file: %w", err)
	}

	return result, nil
}

// BaseName strips directory components and the extension from filePath.
func BaseName(filePath string) string {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// CreateOutput creates the output file outputDir/subdir/name.csv, first
// creating the subdir directory when subdir is set, mirroring the teacher's
// per-model/per-output file layout.
func CreateOutput(outputDir, subdir, name string) (*os.File, error) {
	if subdir != "" && subdir != "." {
		dir := filepath.Join(outputDir, subdir)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("report: creating output dir %s: %w", dir, err)
		}
		return os.Create(filepath.Join(dir, name+".csv"))
	}
	return os.Create(filepath.Join(outputDir, name+".csv"))
}
