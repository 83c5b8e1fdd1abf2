// Package normalize converts locale-formatted money and date tokens found in
// Argentine card statements into canonical values.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// 80.733,33 / 4.685,95 / 350,00
	localeAmountPattern = regexp.MustCompile(`^\d[\d.]*,\d{2}$`)
	// 900 / 12,5 / 12.50 / -300
	quickAmountPattern = regexp.MustCompile(`^[-+]?\d+(?:[.,]\d+)?$`)
)

// LocaleAmount parses a thousands-dot, decimal-comma token with exactly two
// decimal digits. Anything else is rejected rather than guessed.
func LocaleAmount(token string) (decimal.Decimal, bool) {
	t := strings.TrimSpace(token)
	if !localeAmountPattern.MatchString(t) {
		return decimal.Zero, false
	}
	t = strings.ReplaceAll(t, ".", "")
	t = strings.Replace(t, ",", ".", 1)
	v, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// QuickAmount parses a bare typed number such as "900", "12,50" or "-300".
// A decimal comma is treated as a decimal point.
func QuickAmount(token string) (decimal.Decimal, bool) {
	if !quickAmountPattern.MatchString(token) {
		return decimal.Zero, false
	}
	t := strings.TrimPrefix(token, "+")
	v, err := decimal.NewFromString(strings.Replace(t, ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
