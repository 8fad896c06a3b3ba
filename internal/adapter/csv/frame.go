package csv

import (
	"fmt"
	"math"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingValues are the cell texts read as "no value", as pandas' read_csv does by default.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

func isMissing(raw string) bool {
	_, ok := missingValues[raw]
	return ok
}

// frame gives typed, validated access to the columns of one loaded table.
// Every column is held as the raw cell text; conversion happens per column on access.
type frame struct {
	name types.DatasetName
	df   dataframe.DataFrame
}

func (f frame) column(col string) (series.Series, error) {
	s := f.df.Col(col)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("%w: %s.%s", types.ErrMissingColumn, f.name, col)
	}
	return s, nil
}

// malformed reports a bad value at data row i; line numbers count the header as line 1.
func (f frame) malformed(col string, i int, raw string) error {
	return fmt.Errorf("%w: %s.%s line %d: %q", types.ErrMalformedValue, f.name, col, i+2, raw)
}

// strings returns the cells of col exactly as written.
func (f frame) strings(col string) ([]string, error) {
	s, err := f.column(col)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// labels returns the cells of col with missing values as "".
func (f frame) labels(col string) ([]string, error) {
	raw, err := f.strings(col)
	if err != nil {
		return nil, err
	}
	for i, r := range raw {
		if isMissing(r) {
			raw[i] = ""
		}
	}
	return raw, nil
}

// floats converts col to numbers. Missing cells become NaN; any other unparsable cell is malformed.
func (f frame) floats(col string) ([]float64, error) {
	raw, err := f.strings(col)
	if err != nil {
		return nil, err
	}

	conv := series.New(raw, series.Float, col)
	vals := make([]float64, len(raw))
	for i, r := range raw {
		if isMissing(r) {
			vals[i] = math.NaN()
			continue
		}
		e := conv.Elem(i)
		v := e.Float()
		if e.IsNA() || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, f.malformed(col, i, r)
		}
		vals[i] = v
	}
	return vals, nil
}

// ints requires a value in every cell, written either as "3" or "3.0".
func (f frame) ints(col string) ([]int, error) {
	raw, err := f.strings(col)
	if err != nil {
		return nil, err
	}
	vals, err := f.floats(col)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || v != math.Trunc(v) {
			return nil, f.malformed(col, i, raw[i])
		}
		out[i] = int(v)
	}
	return out, nil
}

// bools converts col to flags. A missing cell is false, any other unparsable cell is malformed.
func (f frame) bools(col string) ([]bool, error) {
	raw, err := f.strings(col)
	if err != nil {
		return nil, err
	}

	conv := series.New(raw, series.Bool, col)
	out := make([]bool, len(raw))
	for i, r := range raw {
		if isMissing(r) {
			continue
		}
		e := conv.Elem(i)
		if e.IsNA() {
			return nil, f.malformed(col, i, r)
		}
		if out[i], err = e.Bool(); err != nil {
			return nil, f.malformed(col, i, r)
		}
	}
	return out, nil
}
