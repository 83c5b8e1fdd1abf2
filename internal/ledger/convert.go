package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/fipe-dev/fipe/internal/model"
)

const (
	// NoDescription replaces blank descriptions read back from disk.
	NoDescription = "(sin descripción)"
	// DefaultAccountKey is used when a row names no account.
	DefaultAccountKey = "cash_ars"
)

// HintResolver maps an extractor's advisory account hint to an account key.
type HintResolver interface {
	KeyForHint(hint string) string
}

// FromImported turns an extracted statement row into a ledger record. The
// sign of the extracted amount becomes the type: negative is an expense.
func FromImported(t model.ImportedTransaction, accounts HintResolver, now time.Time) model.Transaction {
	typ := model.TxIncome
	if t.Amount.IsNegative() {
		typ = model.TxExpense
	}
	return model.Transaction{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.Abs(),
		Currency:    t.Currency,
		Type:        typ,
		AccountKey:  accounts.KeyForHint(t.AccountHint),
		Installment: t.Installment,
		Receipt:     t.Receipt,
	}
}

// FromQuick turns a parsed quick-entry line into a ledger record.
func FromQuick(q model.QuickEntry, now time.Time) model.Transaction {
	desc := q.Description
	if desc == "" {
		desc = NoDescription
	}
	return model.Transaction{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		Date:        q.Date,
		Description: desc,
		Amount:      q.Amount.Abs(),
		Currency:    q.Currency,
		Type:        q.Type,
		AccountKey:  q.AccountKey,
	}
}

// RowsFromDetection converts every extracted row of a detection.
func RowsFromDetection(det model.Detection, accounts HintResolver, now time.Time) []model.Transaction {
	rows := make([]model.Transaction, len(det.Transactions))
	for i, t := range det.Transactions {
		rows[i] = FromImported(t, accounts, now)
	}
	return rows
}
