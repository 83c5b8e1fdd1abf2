package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the layout of every date this package produces.
const ISOLayout = "2006-01-02"

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	abbrevMonthPattern = regexp.MustCompile(`^(\d{2})-([A-Za-z]{3})-(\d{2})$`)
	numericPattern     = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})$`)
	slashPattern       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// AbbrevMonthDate parses "DD-Mon-YY" (e.g. "07-Mar-24"). Two-digit years are
// always placed in the 2000s.
func AbbrevMonthDate(token string) (string, bool) {
	m := abbrevMonthPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}
	return isoDate(2000+atoi(m[3]), int(month), atoi(m[1]))
}

// NumericDate parses "DD-MM-YY" with the same two-digit-year rule.
func NumericDate(token string) (string, bool) {
	m := numericPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return isoDate(2000+atoi(m[3]), atoi(m[2]), atoi(m[1]))
}

// SlashDate parses "D/M/YYYY" with one- or two-digit day and month.
func SlashDate(token string) (string, bool) {
	m := slashPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return isoDate(atoi(m[3]), atoi(m[2]), atoi(m[1]))
}

// FormatISO renders t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// isoDate rejects days that do not exist in the calendar (31-04, 30-02).
func isoDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// atoi is only called on regexp-validated digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseISO parses a YYYY-MM-DD date produced by this package.
func ParseISO(s string) (time.Time, bool) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
