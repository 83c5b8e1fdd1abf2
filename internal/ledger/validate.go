package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

// ValidationError describes one rejected field of one transaction.
type ValidationError struct {
	ID          string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.ID, e.Description)
}

// AccountChecker tests whether an account key exists in the catalogue.
type AccountChecker interface {
	Exists(key string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateTransactions checks every row before it is written.
func ValidateTransactions(txs []model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(tx model.Transaction, field, format string, args ...any) {
		errs = append(errs, ValidationError{ID: tx.ID, Field: field, Description: fmt.Sprintf(format, args...)})
	}

	for _, tx := range txs {
		if tx.ID == "" {
			add(tx, "id", "missing id")
		}
		if !tx.Amount.IsPositive() {
			add(tx, "amount", "amount %s must be positive", tx.Amount)
		} else if !tx.Amount.Mul(hundred).Equal(tx.Amount.Mul(hundred).Floor()) {
			add(tx, "amount", "amount %s has more than 2 decimal places", tx.Amount)
		}
		if _, ok := normalize.ParseISO(tx.Date); !ok {
			add(tx, "date", "date %q is not YYYY-MM-DD", tx.Date)
		}
		if !tx.Currency.Valid() {
			add(tx, "currency", "unknown currency %q", tx.Currency)
		}
		if !tx.Type.Valid() {
			add(tx, "type", "unknown type %q", tx.Type)
		}
		if accounts != nil && !accounts.Exists(tx.AccountKey) {
			add(tx, "account_key", "unknown account %q", tx.AccountKey)
		}
	}
	return errs
}
