package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

var ErrMalformedValue = errors.New("malformed numeric value")

// Parser turns one raw cell into a float64.
type Parser func(s string) (float64, error)

// ParseSuffixed parses "1.5M", "250K" or a plain number.
// A trailing K becomes e3 and a trailing M becomes e6 before parsing.
func ParseSuffixed(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "K"):
		s = strings.TrimSuffix(s, "K") + "e3"
	case strings.HasSuffix(s, "M"):
		s = strings.TrimSuffix(s, "M") + "e6"
	}
	return parseFinite(s)
}

// ParseSeparated parses "12,345" by dropping the thousands separators.
func ParseSeparated(s string) (float64, error) {
	return parseFinite(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	// ParseFloat accepts "NaN" and "Inf"
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	return v, nil
}

// cleanColumn parses every non-null cell of src; nulls stay null.
func cleanColumn(mem memory.Allocator, name string, src *array.String, parse Parser) (*array.Float64, error) {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Reserve(src.Len())

	for i := 0; i < src.Len(); i++ {
		if src.IsNull(i) {
			b.AppendNull()
			continue
		}
		v, err := parse(src.Value(i))
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
		b.Append(v)
	}
	return b.NewFloat64Array(), nil
}
