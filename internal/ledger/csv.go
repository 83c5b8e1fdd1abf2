package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,created_at,date,description,amount,currency,type,account_key,installment,receipt,batch_id"

const (
	numFields      = 11
	colID          = 0
	colCreatedAt   = 1
	colDate        = 2
	colDesc        = 3
	colAmount      = 4
	colCurrency    = 5
	colType        = 6
	colAccountKey  = 7
	colInstallment = 8
	colReceipt     = 9
	colBatchID     = 10
)

// ReadTransactions reads every row of a transactions.csv reader. Rows that
// cannot be parsed are skipped and counted in dropped.
func ReadTransactions(r io.Reader) (txs []model.Transaction, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	for _, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			dropped++
			continue
		}
		txs = append(txs, tx)
	}
	return txs, dropped, nil
}

// WriteTransactions writes txs to w, header first.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colCreatedAt] = tx.CreatedAt.UTC().Format(time.RFC3339Nano)
	row[colDate] = tx.Date
	row[colDesc] = tx.Description
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colCurrency] = string(tx.Currency)
	row[colType] = string(tx.Type)
	row[colAccountKey] = tx.AccountKey
	row[colInstallment] = tx.Installment
	row[colReceipt] = tx.Receipt
	row[colBatchID] = tx.BatchID
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction, repairing what
// can be repaired: a blank description, an unknown currency or type, a
// missing account and a signed amount all get safe defaults. A row without
// an ID, a date or a numeric amount is an error.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Transaction{}, fmt.Errorf("missing id")
	}
	if record[colDate] == "" {
		return model.Transaction{}, fmt.Errorf("missing date")
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, record[colCreatedAt])
	if err != nil {
		createdAt = time.Time{}
	}

	desc := record[colDesc]
	if strings.TrimSpace(desc) == "" {
		desc = NoDescription
	}

	currency := model.Currency(record[colCurrency])
	if !currency.Valid() {
		currency = model.CurrencyARS
	}
	typ := model.TxType(record[colType])
	if !typ.Valid() {
		typ = model.TxExpense
	}
	account := record[colAccountKey]
	if account == "" {
		account = DefaultAccountKey
	}

	return model.Transaction{
		ID:          record[colID],
		CreatedAt:   createdAt,
		Date:        record[colDate],
		Description: desc,
		Amount:      amount.Abs(),
		Currency:    currency,
		Type:        typ,
		AccountKey:  account,
		Installment: record[colInstallment],
		Receipt:     record[colReceipt],
		BatchID:     record[colBatchID],
	}, nil
}
