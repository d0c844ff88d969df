package engine

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
)

// Column names of the rice production dataset.
const (
	ColCountry        = "Country"
	ColProduction     = "Rice Production (Tons)"
	ColProductionRank = "Rank of Rice Production"
	ColPerPerson      = "Rice Production Per Person (Kg)"
	ColPerPersonRank  = "Rank of Rice Production Per Person"
	ColAcreage        = "Rice Acreage (Hectare)"
	ColAcreageRank    = "Rank of Rice Acreage"
	ColYield          = "Rice Yield (Kg / Hectare)"
	ColYieldRank      = "Rank of Rice Yield"
)

var (
	ErrMissingColumn = errors.New("column not found")
	ErrNotNumeric    = errors.New("column is not numeric")
)

// Table is the cleaned dataset held as a single arrow record.
// It is read-only once Load returns and safe for concurrent readers.
type Table struct {
	rec       arrow.Record
	countries *array.String

	// row of the first occurrence of each distinct country, file order
	regions []int
}

func newTable(rec arrow.Record) (*Table, error) {
	idx := rec.Schema().FieldIndices(ColCountry)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColCountry)
	}
	countries, ok := rec.Column(idx[0]).(*array.String)
	if !ok {
		return nil, fmt.Errorf("column %q: expected utf8, got %s", ColCountry, rec.Column(idx[0]).DataType())
	}

	t := &Table{rec: rec, countries: countries}
	seen := make(map[string]struct{}, countries.Len())
	for i := 0; i < countries.Len(); i++ {
		if countries.IsNull(i) {
			continue
		}
		name := countries.Value(i)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		t.regions = append(t.regions, i)
	}
	return t, nil
}

// Release frees the arrow buffers. The table must not be used afterwards.
func (t *Table) Release() {
	if t != nil && t.rec != nil {
		t.rec.Release()
		t.rec = nil
	}
}

func (t *Table) NumRows() int { return int(t.rec.NumRows()) }

func (t *Table) Record() arrow.Record { return t.rec }

// Country returns the country name of a row.
func (t *Table) Country(row int) string { return t.countries.Value(row) }

// Regions returns one row index per distinct country, first occurrence wins.
func (t *Table) Regions() []int { return t.regions }

// Numeric reads a column as float64. valid[i] is false where the cell is null.
func (t *Table) Numeric(name string) (values []float64, valid []bool, err error) {
	idx := t.rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	col := t.rec.Column(idx[0])

	n := col.Len()
	values = make([]float64, n)
	valid = make([]bool, n)

	var at func(i int) float64
	switch arr := col.(type) {
	case *array.Float64:
		at = func(i int) float64 { return arr.Value(i) }
	case *array.Float32:
		at = func(i int) float64 { return float64(arr.Value(i)) }
	case *array.Int64:
		at = func(i int) float64 { return float64(arr.Value(i)) }
	case *array.Int32:
		at = func(i int) float64 { return float64(arr.Value(i)) }
	default:
		return nil, nil, fmt.Errorf("%w: %q has type %s", ErrNotNumeric, name, col.DataType())
	}

	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			continue
		}
		values[i] = at(i)
		valid[i] = true
	}
	return values, valid, nil
}
