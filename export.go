package tov

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ExportConfig configures where and how sweep results are written.
type ExportConfig struct {
	Filename  string // base name without extension
	OutputDir string // created on demand
	AsCSV     bool
	AsJSON    bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return (!c.AsCSV && !c.AsJSON) || c.Filename == ""
}

// asStar unwraps the concrete background record of a Solution.
func asStar(sol Solution) (Star, bool) {
	switch s := sol.(type) {
	case Star:
		return s, true
	case TidalResult:
		return s.Star, true
	}
	return Star{}, false
}

func (c ExportConfig) create(suffix string) (*os.File, string, error) {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", errors.Wrapf(err, "creating output dir %s", dir)
	}
	path := filepath.Join(dir, c.Filename+suffix)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "creating %s", path)
	}
	return f, path, nil
}

// WriteStarsCSV writes one line per star: central pressure, radius, solar
// mass, then every auxiliary EOS column evaluated at the center. Returns
// the written path.
func WriteStarsCSV(conf ExportConfig, seq Sequence) (string, error) {
	f, path, err := conf.create("_stars.csv")
	if err != nil {
		return "", err
	}
	defer f.Close()

	var extraCols []string
	if len(seq.Entries) > 0 {
		if star, ok := asStar(seq.Entries[0]); ok && star.EOS != nil {
			for _, col := range star.EOS.ColNames() {
				if col != "p" {
					extraCols = append(extraCols, col)
				}
			}
		}
	}
	w := csv.NewWriter(f)
	header := []string{"p_c", "R", "M"}
	for _, col := range extraCols {
		header = append(header, col+"(pc)")
	}
	if err = w.Write(header); err != nil {
		return "", errors.Wrap(err, "writing header")
	}
	for _, sol := range seq.Entries {
		row := []string{
			fmt.Sprintf("%.6e", sol.CentralPressure()),
			fmt.Sprintf("%.6e", sol.Radius()),
			fmt.Sprintf("%.6e", sol.MassSolar()),
		}
		if star, ok := asStar(sol); ok {
			extras := star.InterpolateAtCenter()
			for _, col := range extraCols {
				row = append(row, fmt.Sprintf("%.6e", extras[col]))
			}
		}
		if err = w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing row")
		}
	}
	w.Flush()
	return path, errors.Wrap(w.Error(), "flushing CSV")
}

// WriteTidalCSV writes one line per star with the tidal surface values.
func WriteTidalCSV(conf ExportConfig, seq Sequence) (string, error) {
	f, path, err := conf.create("_tidal.csv")
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write([]string{"p_c", "R", "M_code", "M_solar", "Lambda", "k2"}); err != nil {
		return "", errors.Wrap(err, "writing header")
	}
	for _, sol := range seq.Entries {
		k2, lambda := sol.Love()
		row := []string{
			fmt.Sprintf("%.6e", sol.CentralPressure()),
			fmt.Sprintf("%.6e", sol.Radius()),
			fmt.Sprintf("%.6e", sol.Mass()),
			fmt.Sprintf("%.6e", sol.MassSolar()),
			fmt.Sprintf("%.6e", lambda),
			fmt.Sprintf("%.6e", k2),
		}
		if err = w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing row")
		}
	}
	w.Flush()
	return path, errors.Wrap(w.Error(), "flushing CSV")
}

// profileRecord is the JSON shape of one radial profile.
type profileRecord struct {
	Pc           float64              `json:"p_c"`
	R            float64              `json:"R"`
	M            float64              `json:"M"`
	RadialPoints int                  `json:"radial_points"`
	Radii        []float64            `json:"r"`
	MassProfile  []float64            `json:"M_r"`
	Columns      map[string][]float64 `json:"columns"`
}

// WriteProfilesJSON writes all radial profiles to a single JSON document
// plus a human-readable metadata file. Returns the JSON path.
func WriteProfilesJSON(conf ExportConfig, profiles []Profile) (string, error) {
	f, path, err := conf.create(".json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	records := make([]profileRecord, len(profiles))
	for i, prof := range profiles {
		records[i] = profileRecord{
			Pc:           prof.Star.Pc,
			R:            prof.Star.R,
			M:            prof.Star.M,
			RadialPoints: len(prof.R),
			Radii:        prof.R,
			MassProfile:  prof.M,
			Columns:      prof.Columns,
		}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(records); err != nil {
		return "", errors.Wrap(err, "encoding profiles")
	}

	meta, _, err := conf.create("_metadata.txt")
	if err != nil {
		return "", err
	}
	defer meta.Close()
	fmt.Fprintf(meta, "# Radial profiles for TOV stars in dimensionless code units\n")
	fmt.Fprintf(meta, "# Creation date (UTC): %s\n", time.Now().UTC())
	fmt.Fprintf(meta, "# Number of stars: %d\n\n", len(profiles))
	for i, prof := range profiles {
		fmt.Fprintf(meta, "=== Star %d ===\n", i)
		fmt.Fprintf(meta, "p_c = %.6e\n", prof.Star.Pc)
		fmt.Fprintf(meta, "R = %.4f (code units)\n", prof.Star.R)
		fmt.Fprintf(meta, "M = %.4f (code units)\n", prof.Star.M)
		fmt.Fprintf(meta, "Number of radial points: %d\n\n", len(prof.R))
	}
	return path, nil
}
