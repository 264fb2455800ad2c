package tov

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrLoad is the cause of every EOS load failure: malformed or insufficient
// table data. Check with IsLoadError.
var ErrLoad = errors.New("eos: invalid table")

// IsLoadError returns whether err stems from an EOS load failure.
func IsLoadError(err error) bool {
	return errors.Cause(err) == ErrLoad
}

// EOS holds a tabulated equation of state in dimensionless code units
// (G=c=1), sorted by strictly ascending pressure. The first column is the
// pressure "p", the second the energy density "e"; any further columns are
// named auxiliary quantities interpolated the same way.
// An EOS is immutable after construction apart from its bracket cursor, so
// concurrent integrations must each work on their own Clone.
type EOS struct {
	Name     string
	colNames []string
	cols     map[string][]float64
	p        []float64
	n        int
	cursor   int // last successful bracket index
}

// NewEOS builds an EOS from named columns. The input needs at least a "p"
// and an "e" column of equal length with two or more rows; rows are sorted
// by ascending pressure and duplicate pressures are rejected.
func NewEOS(name string, colNames []string, cols map[string][]float64) (*EOS, error) {
	pCol, found := cols["p"]
	if !found {
		return nil, errors.Wrap(ErrLoad, "no pressure column \"p\"")
	}
	if _, found := cols["e"]; !found {
		return nil, errors.Wrap(ErrLoad, "no energy density column \"e\"")
	}
	n := len(pCol)
	if n < 2 {
		return nil, errors.Wrapf(ErrLoad, "need at least 2 rows, got %d", n)
	}
	for _, col := range colNames {
		vals, found := cols[col]
		if !found {
			return nil, errors.Wrapf(ErrLoad, "column %q named but missing", col)
		}
		if len(vals) != n {
			return nil, errors.Wrapf(ErrLoad, "column %q has %d rows, pressure has %d", col, len(vals), n)
		}
	}
	// Sort all columns by ascending pressure.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pCol[order[i]] < pCol[order[j]] })
	sorted := make(map[string][]float64, len(cols))
	for _, col := range colNames {
		vals := make([]float64, n)
		for i, idx := range order {
			vals[i] = cols[col][idx]
		}
		sorted[col] = vals
	}
	p := sorted["p"]
	for i := 0; i < n-1; i++ {
		if p[i+1] <= p[i] {
			return nil, errors.Wrapf(ErrLoad, "duplicate or non-monotonic pressure %v at row %d", p[i+1], i+1)
		}
	}
	names := make([]string, len(colNames))
	copy(names, colNames)
	return &EOS{Name: name, colNames: names, cols: sorted, p: p, n: n}, nil
}

// LoadCSV reads an EOS table from a CSV file already expressed in code
// units. Comment lines (#) and blank lines are skipped. If the first data
// row is not numeric it is taken as a header; otherwise columns default to
// "p", "e", "col2", "col3", etc. Rows with non-numeric or missing cells are
// dropped. Rows may appear in any pressure order.
func LoadCSV(path string) (*EOS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening EOS file %s", path)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	eos, err := ReadEOS(name, f)
	return eos, errors.Wrapf(err, "loading %s", path)
}

// ReadEOS parses CSV rows from the given reader (see LoadCSV).
func ReadEOS(name string, r io.Reader) (*EOS, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV")
	}
	var header []string
	var rows [][]string
	for _, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if header == nil && rows == nil {
			if _, err0 := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err0 != nil {
				header = rec
				continue
			} else if len(rec) > 1 {
				if _, err1 := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64); err1 != nil {
					header = rec
					continue
				}
			}
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrLoad, "no data rows")
	}
	if header == nil {
		header = []string{"p", "e"}
		for i := 2; i < len(rows[0]); i++ {
			header = append(header, fmt.Sprintf("col%d", i))
		}
	} else {
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}
	cols := make(map[string][]float64, len(header))
	for _, h := range header {
		cols[h] = nil
	}
	for _, rec := range rows {
		if len(rec) < 2 {
			continue
		}
		vals := make([]float64, 0, len(header))
		valid := true
		for i := range header {
			if i >= len(rec) {
				valid = false
				break
			}
			v, errP := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if errP != nil {
				valid = false
				break
			}
			vals = append(vals, v)
		}
		if !valid {
			continue
		}
		for i, h := range header {
			cols[h] = append(cols[h], vals[i])
		}
	}
	return NewEOS(name, header, cols)
}

// Clone returns a copy sharing the (read-only) column data but owning its
// own bracket cursor. Each integration must use its own clone.
func (e *EOS) Clone() *EOS {
	clone := *e
	clone.cursor = 0
	return &clone
}

// Len returns the number of table rows.
func (e *EOS) Len() int { return e.n }

// ColNames returns the column names, pressure first.
func (e *EOS) ColNames() []string {
	names := make([]string, len(e.colNames))
	copy(names, e.colNames)
	return names
}

// PressureRange returns the lowest and highest tabulated pressures.
func (e *EOS) PressureRange() (float64, float64) {
	return e.p[0], e.p[e.n-1]
}

// bracket locates i such that p[i] <= p <= p[i+1], starting from the last
// successful index and walking, which is amortized O(1) for the monotonic
// query pattern of an outward integration. Callers clamp beforehand.
func (e *EOS) bracket(p float64) int {
	i := e.cursor
	if i > e.n-2 {
		i = e.n - 2
	}
	for i > 0 && p < e.p[i] {
		i--
	}
	for i < e.n-2 && p > e.p[i+1] {
		i++
	}
	e.cursor = i
	return i
}

// Value interpolates the named column at pressure p, clamping to the first
// or last row outside the tabulated range. Unknown columns are a
// programming error and panic.
func (e *EOS) Value(col string, p float64) float64 {
	vals, found := e.cols[col]
	if !found {
		panic(fmt.Errorf("eos: unknown column %q", col))
	}
	if p <= e.p[0] {
		return vals[0]
	}
	if p >= e.p[e.n-1] {
		return vals[e.n-1]
	}
	i := e.bracket(p)
	frac := (p - e.p[i]) / (e.p[i+1] - e.p[i])
	return vals[i] + frac*(vals[i+1]-vals[i])
}

// EnergyDensity returns the energy density at pressure p.
func (e *EOS) EnergyDensity(p float64) float64 {
	return e.Value("e", p)
}

// EnergyDensitySlope returns de/dp from the bracketing table interval, the
// inverse squared sound speed of the piecewise-linear representation. It is
// piecewise-constant between nodes; outside the table the slope of the
// first or last interval is used.
func (e *EOS) EnergyDensitySlope(p float64) float64 {
	vals := e.cols["e"]
	var i int
	switch {
	case p <= e.p[0]:
		i = 0
	case p >= e.p[e.n-1]:
		i = e.n - 2
	default:
		i = e.bracket(p)
	}
	return (vals[i+1] - vals[i]) / (e.p[i+1] - e.p[i])
}
