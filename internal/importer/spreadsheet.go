package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

// ErrMissingColumn is returned when a spreadsheet lacks a required header.
var ErrMissingColumn = errors.New("missing column")

// Header aliases, matched exactly after trimming.
var (
	dateHeaders   = []string{"Fecha", "FECHA", "date", "Date"}
	descHeaders   = []string{"Descripción", "DESCRIPCION", "Descripcion", "Desc", "description"}
	amountHeaders = []string{"Monto", "MONTO", "amount", "Amount"}
)

// ParseSpreadsheet reads a CSV export of a spreadsheet with date, description
// and amount columns. Every row is an ARS expense; incomplete rows and rows
// whose amount does not parse are skipped.
func ParseSpreadsheet(r io.Reader) ([]model.ImportedTransaction, error) {
	br := bufio.NewReader(r)
	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet CSV: %w", err)
	}
	return spreadsheetRows(records)
}

// spreadsheetRows maps a header row plus data rows to transactions. It is
// shared by the CSV and workbook readers.
func spreadsheetRows(records [][]string) ([]model.ImportedTransaction, error) {
	if len(records) <= 1 {
		return nil, nil
	}

	cols, err := locateColumns(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.ImportedTransaction
	for _, rec := range records[1:] {
		if txn, ok := parseSpreadsheetRow(rec, cols); ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

type spreadsheetColumns struct {
	date, desc, amount int
}

func locateColumns(header []string) (spreadsheetColumns, error) {
	find := func(name string, aliases []string) (int, error) {
		for i, h := range header {
			h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
			for _, a := range aliases {
				if h == a {
					return i, nil
				}
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}

	var cols spreadsheetColumns
	var err error
	if cols.date, err = find("date", dateHeaders); err != nil {
		return cols, err
	}
	if cols.desc, err = find("description", descHeaders); err != nil {
		return cols, err
	}
	if cols.amount, err = find("amount", amountHeaders); err != nil {
		return cols, err
	}
	return cols, nil
}

func parseSpreadsheetRow(rec []string, cols spreadsheetColumns) (model.ImportedTransaction, bool) {
	field := func(i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rawDate, desc, rawAmount := field(cols.date), field(cols.desc), field(cols.amount)
	if rawDate == "" || desc == "" || rawAmount == "" {
		return model.ImportedTransaction{}, false
	}

	date, ok := spreadsheetDate(rawDate)
	if !ok {
		return model.ImportedTransaction{}, false
	}

	amount, err := decimal.NewFromString(strings.Replace(strings.ReplaceAll(rawAmount, ".", ""), ",", ".", 1))
	if err != nil || amount.IsZero() {
		return model.ImportedTransaction{}, false
	}

	return model.ImportedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount.Abs().Neg(),
		Currency:    model.CurrencyARS,
	}, true
}

// spreadsheetDate accepts ISO dates and D/M/YYYY.
func spreadsheetDate(s string) (string, bool) {
	if len(s) == len(normalize.ISOLayout) && s[4] == '-' && s[7] == '-' {
		if iso, ok := normalize.SlashDate(s[8:10] + "/" + s[5:7] + "/" + s[0:4]); ok {
			return iso, true
		}
	}
	return normalize.SlashDate(s)
}

// sniffDelimiter picks ';' when the header line uses it and has no commas,
// which is how es-AR spreadsheet software exports CSV.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())
	first, _, _ := strings.Cut(string(peek), "\n")
	if strings.Contains(first, ";") && !strings.Contains(first, ",") {
		return ';'
	}
	return ','
}
