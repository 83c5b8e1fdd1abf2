package accounts

import "github.com/fipe-dev/fipe/internal/model"

// DefaultCatalogue returns the accounts written by `fipe init`.
func DefaultCatalogue() []model.Account {
	return []model.Account{
		{Key: "cash_ars", Name: "Efectivo ARS", Currency: model.CurrencyARS, Kind: model.AccountKindCash},
		{Key: "cash_usd", Name: "Efectivo USD", Currency: model.CurrencyUSD, Kind: model.AccountKindCash},

		{Key: "bbva_credit", Name: "BBVA Crédito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindCredit},
		{Key: "bbva_debit", Name: "BBVA Débito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindDebit},

		{Key: "santander_credit", Name: "Santander Crédito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindCredit},
		{Key: "santander_debit", Name: "Santander Débito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindDebit},
		{Key: "santander_usd", Name: "Santander Caja ahorro USD", Currency: model.CurrencyUSD, Kind: model.AccountKindSavings},

		{Key: "galicia_credit_visa", Name: "Galicia Crédito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindCredit},
		{Key: "galicia_credit_mc", Name: "Galicia Crédito (Mastercard)", Currency: model.CurrencyARS, Kind: model.AccountKindCredit},
		{Key: "galicia_debit", Name: "Galicia Débito (VISA)", Currency: model.CurrencyARS, Kind: model.AccountKindDebit},
		{Key: "galicia_usd", Name: "Galicia Caja ahorro USD", Currency: model.CurrencyUSD, Kind: model.AccountKindSavings},

		{Key: "carrefour_credit", Name: "Carrefour Banco Crédito", Currency: model.CurrencyARS, Kind: model.AccountKindCredit},
		{Key: "carrefour_debit", Name: "Carrefour Banco Débito", Currency: model.CurrencyARS, Kind: model.AccountKindDebit},

		{Key: "dolarapp_debit_usd", Name: "DolarApp Débito USD", Currency: model.CurrencyUSD, Kind: model.AccountKindDebit},
		{Key: "dolarapp_debit_ars", Name: "DolarApp Débito ARS", Currency: model.CurrencyARS, Kind: model.AccountKindDebit},
		{Key: "dolarapp_savings_usd", Name: "DolarApp Ahorro USD", Currency: model.CurrencyUSD, Kind: model.AccountKindSavings},
		{Key: "dolarapp_savings_ars", Name: "DolarApp Ahorro ARS", Currency: model.CurrencyARS, Kind: model.AccountKindSavings},
	}
}
