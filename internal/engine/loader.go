package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	arrowcsv "github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// cleaners lists the encoded columns and the rule that decodes each one.
// No other column is touched.
var cleaners = []struct {
	column string
	parse  Parser
}{
	{ColProduction, ParseSuffixed},
	{ColAcreage, ParseSuffixed},
	{ColYield, ParseSeparated},
}

// textColumns are read as utf8 whatever they hold. The encoded ones are
// decoded afterwards; every other column keeps the type sniffColumns finds.
var textColumns = map[string]bool{
	ColCountry:    true,
	ColProduction: true,
	ColAcreage:    true,
	ColYield:      true,
}

var nullValues = []string{"", "NA", "N/A"}

var utf8BOM = []byte("\ufeff")

type loadConfig struct {
	mem   memory.Allocator
	comma rune
}

type LoadOption func(*loadConfig)

func WithAllocator(mem memory.Allocator) LoadOption {
	return func(c *loadConfig) { c.mem = mem }
}

// WithComma sets the field delimiter of delimited inputs.
func WithComma(r rune) LoadOption {
	return func(c *loadConfig) { c.comma = r }
}

// Load reads the dataset at path once and returns the cleaned table.
// Any malformed value in a cleaned column fails the whole load.
func Load(path string, opts ...LoadOption) (*Table, error) {
	start := time.Now()
	cfg := loadConfig{mem: memory.DefaultAllocator, comma: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1. Read File (spreadsheets are converted to CSV first)
	var content []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		content, err = xlsxToCSV(path)
		cfg.comma = ','
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	log.Debugf("LOADER: read %s (%s)", path, gbytes.Format(int64(len(content))))

	// 2. Parse into one arrow record
	raw, err := readRecord(content, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer raw.Release()

	// 3. Clean the encoded columns
	rec, err := clean(raw, cfg.mem)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", path, err)
	}

	t, err := newTable(rec)
	if err != nil {
		rec.Release()
		return nil, err
	}

	log.Infof("LOADER: load complete. Rows: %d. Columns: %d. Countries: %d. Time: %v",
		t.NumRows(), rec.NumCols(), len(t.Regions()), time.Since(start))
	return t, nil
}

func readRecord(content []byte, cfg loadConfig) (arrow.Record, error) {
	schema, err := sniffColumns(content, cfg.comma)
	if err != nil {
		return nil, err
	}

	rd := arrowcsv.NewReader(bytes.NewReader(content), schema,
		arrowcsv.WithAllocator(cfg.mem),
		arrowcsv.WithComma(cfg.comma),
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(-1),
		arrowcsv.WithLazyQuotes(true),
		arrowcsv.WithNullReader(true, nullValues...),
	)
	defer rd.Release()

	// WithChunk(-1) yields one record, empty for a header-only file
	if !rd.Next() {
		if err := rd.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no record read")
	}
	rec := rd.Record()
	rec.Retain()

	if err := rd.Err(); err != nil {
		rec.Release()
		return nil, err
	}
	return rec, nil
}

// sniffColumns picks one type per column from every row: int64 when all
// values parse as integers, float64 when they parse as floats (or the
// column has no values), utf8 otherwise. textColumns are always utf8.
func sniffColumns(content []byte, comma rune) (*arrow.Schema, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = comma
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	isInt := make([]bool, len(header))
	isFloat := make([]bool, len(header))
	seen := make([]bool, len(header))
	for i := range header {
		isInt[i], isFloat[i] = true, true
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, val := range row {
			if slices.Contains(nullValues, val) {
				continue
			}
			seen[i] = true
			if isInt[i] {
				if _, err := strconv.ParseInt(val, 10, 64); err != nil {
					isInt[i] = false
				}
			}
			if isFloat[i] {
				if _, err := strconv.ParseFloat(val, 64); err != nil {
					isFloat[i] = false
				}
			}
		}
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		typ := arrow.DataType(arrow.BinaryTypes.String)
		switch {
		case textColumns[name]:
		case isInt[i] && seen[i]:
			typ = arrow.PrimitiveTypes.Int64
		case isFloat[i]:
			typ = arrow.PrimitiveTypes.Float64
		}
		fields[i] = arrow.Field{Name: name, Type: typ, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

// clean returns a new record with the encoded columns replaced by float64
// columns. The three columns are independent and are cleaned concurrently.
func clean(raw arrow.Record, mem memory.Allocator) (arrow.Record, error) {
	schema := raw.Schema()
	fields := append([]arrow.Field(nil), schema.Fields()...)
	cols := append([]arrow.Array(nil), raw.Columns()...)

	cleaned := make([]arrow.Array, len(cleaners))
	positions := make([]int, len(cleaners))

	for i, c := range cleaners {
		idx := schema.FieldIndices(c.column)
		if len(idx) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c.column)
		}
		positions[i] = idx[0]
	}

	var g errgroup.Group
	for i, c := range cleaners {
		g.Go(func() error {
			src, ok := cols[positions[i]].(*array.String)
			if !ok {
				return fmt.Errorf("column %q: expected utf8, got %s", c.column, cols[positions[i]].DataType())
			}
			out, err := cleanColumn(mem, c.column, src, c.parse)
			if err != nil {
				return err
			}
			cleaned[i] = out
			return nil
		})
	}
	err := g.Wait()
	defer func() {
		for _, arr := range cleaned {
			if arr != nil {
				arr.Release()
			}
		}
	}()
	if err != nil {
		return nil, err
	}

	for i, pos := range positions {
		fields[pos] = arrow.Field{Name: fields[pos].Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
		cols[pos] = cleaned[i]
	}

	md := schema.Metadata()
	return array.NewRecord(arrow.NewSchema(fields, &md), cols, raw.NumRows()), nil
}

// xlsxToCSV flattens the first sheet of a workbook into CSV text.
func xlsxToCSV(path string) ([]byte, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	width := len(rows[0])
	for _, row := range rows {
		// GetRows drops trailing empty cells
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row[:width]); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
