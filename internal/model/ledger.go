package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of a ledger record.
type TxType string

const (
	TxExpense TxType = "expense"
	TxIncome  TxType = "income"
)

// Valid reports whether t is a known direction.
func (t TxType) Valid() bool {
	return t == TxExpense || t == TxIncome
}

// Transaction is a row in the ledger. Amount is always stored unsigned.
type Transaction struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Type        TxType          `json:"type"`
	AccountKey  string          `json:"accountKey"`
	Installment string          `json:"installment,omitempty"`
	Receipt     string          `json:"receipt,omitempty"`
	BatchID     string          `json:"batchId,omitempty"`
}

// ImportBatch records one accepted import.
type ImportBatch struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	SourceName string    `json:"sourceName"`
	Detected   Label     `json:"detected"`
	Count      int       `json:"count"`
}
