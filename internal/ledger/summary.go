package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

const (
	topN           = 5
	descriptionKey = 42
)

// Totals holds income, expense and their difference for one currency.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Ranked is one entry of a top-spending list.
type Ranked struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the dashboard view of the ledger.
type Summary struct {
	Days        int                       `json:"days"`
	From        string                    `json:"from"`
	WindowCount int                       `json:"windowCount"`
	AllTime     map[model.Currency]Totals `json:"allTime"`
	Window      map[model.Currency]Totals `json:"window"`
	// TopAccounts and TopDescriptions rank ARS expenses inside the window.
	TopAccounts     []Ranked `json:"topAccounts"`
	TopDescriptions []Ranked `json:"topDescriptions"`
}

// Summarize computes per-currency totals for all time and for the last days
// days ending today (inclusive), plus the five biggest ARS expense accounts
// and descriptions in that window. Descriptions are grouped by their first
// 42 characters.
func Summarize(txs []model.Transaction, now time.Time, days int) Summary {
	if days < 1 {
		days = 1
	}
	from := normalize.FormatISO(now.AddDate(0, 0, -(days - 1)))

	s := Summary{
		Days:    days,
		From:    from,
		AllTime: emptyTotals(),
		Window:  emptyTotals(),
	}

	byAccount := make(map[string]decimal.Decimal)
	byDesc := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		accumulate(s.AllTime, tx)
		if tx.Date < from {
			continue
		}
		s.WindowCount++
		accumulate(s.Window, tx)

		if tx.Currency != model.CurrencyARS || tx.Type != model.TxExpense {
			continue
		}
		byAccount[tx.AccountKey] = byAccount[tx.AccountKey].Add(tx.Amount)
		key := truncateRunes(tx.Description, descriptionKey)
		byDesc[key] = byDesc[key].Add(tx.Amount)
	}

	s.TopAccounts = rank(byAccount)
	s.TopDescriptions = rank(byDesc)
	return s
}

func emptyTotals() map[model.Currency]Totals {
	return map[model.Currency]Totals{
		model.CurrencyARS: {},
		model.CurrencyUSD: {},
	}
}

func accumulate(m map[model.Currency]Totals, tx model.Transaction) {
	t := m[tx.Currency]
	switch tx.Type {
	case model.TxIncome:
		t.Income = t.Income.Add(tx.Amount)
	case model.TxExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Net = t.Income.Sub(t.Expense)
	m[tx.Currency] = t
}

// rank sorts by amount descending, breaking ties by key, and keeps the top
// five.
func rank(m map[string]decimal.Decimal) []Ranked {
	out := make([]Ranked, 0, len(m))
	for k, v := range m {
		out = append(out, Ranked{Key: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
