package model

// AccountKind classifies accounts in the catalogue.
type AccountKind string

const (
	AccountKindCash    AccountKind = "cash"
	AccountKindCredit  AccountKind = "credit"
	AccountKindDebit   AccountKind = "debit"
	AccountKindSavings AccountKind = "savings"
)

// Account represents a row in accounts.csv.
type Account struct {
	Key      string
	Name     string
	Currency Currency
	Kind     AccountKind
}
