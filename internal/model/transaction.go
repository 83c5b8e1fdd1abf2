package model

import "github.com/shopspring/decimal"

// Currency is the ISO code a row is tagged with. Rows are never converted.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}

// Label identifies which extractor produced a detection result.
type Label string

const (
	LabelGaliciaVisa Label = "Galicia Visa"
	LabelBBVAVisa    Label = "BBVA Visa"
	LabelUnknown     Label = "Unknown"
	LabelNoText      Label = "NoText(Scanned?)"
	LabelCSV         Label = "CSV"
	LabelXLSX        Label = "XLSX"
	LabelManual      Label = "Manual"
)

// ImportedTransaction is one row recovered from statement text.
type ImportedTransaction struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative = expense, positive = income
	Currency    Currency        `json:"currency"`
	AccountHint string          `json:"accountHint,omitempty"`
	Installment string          `json:"installment,omitempty"` // "05/06"
	Receipt     string          `json:"receipt,omitempty"`
	Raw         string          `json:"raw,omitempty"`
}

// Detection is the outcome of one statement import attempt.
type Detection struct {
	Transactions []ImportedTransaction `json:"transactions"`
	Detected     Label                 `json:"detected"`
}

// QuickEntry is a fully resolved quick-entry line.
type QuickEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // always a magnitude
	Currency    Currency        `json:"currency"`
	Date        string          `json:"date"`
	Type        TxType          `json:"type"`
	AccountKey  string          `json:"accountKey"`
}
