// Package quickentry parses the one-line shorthand used to record a cash
// expense without a statement, e.g. "Verdulería 900 ayer efectivo".
package quickentry

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

var (
	// ErrEmptyInput is returned for a blank line.
	ErrEmptyInput = errors.New("quick entry is empty")
	// ErrNoAmount is returned when no token parses as a non-zero amount.
	ErrNoAmount = errors.New("quick entry has no amount")
)

// DefaultKeywords maps account words to account keys.
var DefaultKeywords = map[string]string{
	"bbva":     "bbva_credit",
	"galicia":  "galicia_credit_visa",
	"efectivo": "cash_ars",
}

// Parser turns a shorthand line into a model.QuickEntry.
type Parser struct {
	DefaultAccount string
	// DefaultDate (YYYY-MM-DD) is used when the line names no date. Empty
	// means today.
	DefaultDate   string
	Keywords      map[string]string
	YesterdayWord string
	Now           func() time.Time
}

// New returns a parser with the built-in keywords and "ayer" as the
// yesterday word.
func New(defaultAccount string) *Parser {
	return &Parser{
		DefaultAccount: defaultAccount,
		Keywords:       DefaultKeywords,
		YesterdayWord:  "ayer",
		Now:            time.Now,
	}
}

// state accumulates the fields assigned while scanning tokens.
type state struct {
	amount     decimal.Decimal
	date       string
	accountKey string
	words      []string
}

// rule consumes token and reports whether it did. Rules run in order; the
// first one to consume a token wins.
type rule struct {
	name  string
	apply func(p *Parser, st *state, token string) bool
}

var rules = []rule{
	{"amount", (*Parser).amountRule},
	{"yesterday", (*Parser).yesterdayRule},
	{"date", (*Parser).dateRule},
	{"account", (*Parser).accountRule},
	{"description", (*Parser).descriptionRule},
}

// Parse reads line token by token. The first non-zero number is the amount;
// a negative one records income. Nothing is returned on failure.
func (p *Parser) Parse(line string) (model.QuickEntry, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return model.QuickEntry{}, ErrEmptyInput
	}

	st := &state{
		date:       p.DefaultDate,
		accountKey: p.DefaultAccount,
	}
	if st.date == "" {
		st.date = normalize.FormatISO(p.now())
	}

	for _, tok := range tokens {
		for _, r := range rules {
			if r.apply(p, st, tok) {
				break
			}
		}
	}

	if st.amount.IsZero() {
		return model.QuickEntry{}, ErrNoAmount
	}

	typ := model.TxExpense
	if st.amount.IsNegative() {
		typ = model.TxIncome
	}
	return model.QuickEntry{
		Description: strings.Join(st.words, " "),
		Amount:      st.amount.Abs(),
		Currency:    model.CurrencyARS,
		Date:        st.date,
		Type:        typ,
		AccountKey:  st.accountKey,
	}, nil
}

func (p *Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// amountRule only fires while no non-zero amount has been seen. A zero token
// is consumed but leaves the slot open.
func (p *Parser) amountRule(st *state, token string) bool {
	if !st.amount.IsZero() {
		return false
	}
	v, ok := normalize.QuickAmount(token)
	if !ok {
		return false
	}
	st.amount = v
	return true
}

func (p *Parser) yesterdayRule(st *state, token string) bool {
	word := p.YesterdayWord
	if word == "" || !strings.EqualFold(token, word) {
		return false
	}
	st.date = normalize.FormatISO(p.now().AddDate(0, 0, -1))
	return true
}

func (p *Parser) dateRule(st *state, token string) bool {
	iso, ok := normalize.SlashDate(token)
	if !ok {
		return false
	}
	st.date = iso
	return true
}

func (p *Parser) accountRule(st *state, token string) bool {
	key, ok := p.Keywords[strings.ToLower(token)]
	if !ok {
		return false
	}
	st.accountKey = key
	return true
}

func (p *Parser) descriptionRule(st *state, token string) bool {
	st.words = append(st.words, token)
	return true
}
