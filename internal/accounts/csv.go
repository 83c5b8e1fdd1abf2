package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fipe-dev/fipe/internal/model"
)

// Header is the CSV header for accounts.csv.
const Header = "key,name,currency,kind"

const (
	numFields   = 4
	colKey      = 0
	colName     = 1
	colCurrency = 2
	colKind     = 3
)

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colKey] = acct.Key
	row[colName] = acct.Name
	row[colCurrency] = string(acct.Currency)
	row[colKind] = string(acct.Kind)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	key := strings.TrimSpace(record[colKey])
	if key == "" {
		return model.Account{}, fmt.Errorf("missing key")
	}

	currency := model.Currency(record[colCurrency])
	if !currency.Valid() {
		return model.Account{}, fmt.Errorf("account %s: unknown currency %q", key, record[colCurrency])
	}

	return model.Account{
		Key:      key,
		Name:     record[colName],
		Currency: currency,
		Kind:     model.AccountKind(record[colKind]),
	}, nil
}
