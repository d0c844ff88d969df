package report

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/xuri/excelize/v2"

	"ricemap/internal/engine"
)

const SheetName = "Rice Production"

// WriteWorkbook writes the cleaned table as a single-sheet xlsx workbook.
// Null cells are left empty.
func WriteWorkbook(w io.Writer, t *engine.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	rec := t.Record()
	header := make([]any, rec.NumCols())
	for i, field := range rec.Schema().Fields() {
		header[i] = field.Name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	row := make([]any, rec.NumCols())
	for r := 0; r < int(rec.NumRows()); r++ {
		for c, col := range rec.Columns() {
			row[c] = cellValue(col, r)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", r+1, err)
		}
	}

	return f.Write(w)
}

func cellValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch arr := col.(type) {
	case *array.String:
		return arr.Value(i)
	case *array.Float64:
		return arr.Value(i)
	case *array.Int64:
		return arr.Value(i)
	case *array.Boolean:
		return arr.Value(i)
	default:
		return col.ValueStr(i)
	}
}
