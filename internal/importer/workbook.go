package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

// ParseWorkbook reads the first sheet of an .xlsx workbook with the same
// header aliases and row rules as ParseSpreadsheet.
//
// Cells are read raw. Numeric amount cells are rewritten with a decimal
// comma and numeric date cells are converted from Excel serials, so typed
// and text cells end up in the same formats the CSV path understands.
func ParseWorkbook(r io.Reader) ([]model.ImportedTransaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if cols.date < len(row) && isNumericCell(f, sheet, cols.date, i) {
			row[cols.date] = serialToISO(row[cols.date])
		}
		if cols.amount < len(row) && isNumericCell(f, sheet, cols.amount, i) {
			row[cols.amount] = strings.Replace(row[cols.amount], ".", ",", 1)
		}
	}
	return spreadsheetRows(rows)
}

// isNumericCell reports whether the cell at zero-based (col, row) holds a
// number rather than text.
func isNumericCell(f *excelize.File, sheet string, col, row int) bool {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return false
	}
	return typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset
}

// serialToISO converts an Excel date serial such as "45352" to YYYY-MM-DD.
// Anything that is not a serial is returned unchanged.
func serialToISO(raw string) string {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !v.IsPositive() {
		return raw
	}
	serial, _ := v.Float64()
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return normalize.FormatISO(t)
}
