package importer

import (
	"regexp"
	"strings"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

var (
	moneyPattern   = regexp.MustCompile(`\b\d[\d.]*,\d{2}\b`)
	receiptPattern = regexp.MustCompile(`\b\d{5,7}\b`)
	// A chunk whose description still carries this was under-truncated.
	residualTotal = regexp.MustCompile(`(?i)\bTotal\s+Consumos\b`)
)

// rowRules parameterizes the shared chunk pipeline for one statement layout.
type rowRules struct {
	hint        string
	datePattern *regexp.Regexp
	parseDate   func(token string) (string, bool)

	// boilerplate is blanked out of every chunk before anything else.
	boilerplate []*regexp.Regexp
	reject      []*regexp.Regexp
	truncateAt  []*regexp.Regexp

	// installment must capture the NN/NN code in group 1. Nil disables
	// installment and receipt lookup.
	installment *regexp.Regexp

	currency   func(chunk string) model.Currency
	pickAmount func(tokens []string, currency model.Currency) string

	// noise is stripped from the description only.
	noise []*regexp.Regexp
}

// row is one statement chunk: its leading date token and the text up to the
// next date token.
type row struct {
	dateToken string
	chunk     string
}

// segmentRows splits collapsed text into chunks. A date token only starts a
// row when it stands alone between spaces (or at the start of the text).
func segmentRows(text string, datePattern *regexp.Regexp) []row {
	var starts [][]int
	for _, loc := range datePattern.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] != ' ' {
			continue
		}
		if loc[1] >= len(text) || text[loc[1]] != ' ' {
			continue
		}
		starts = append(starts, loc)
	}

	rows := make([]row, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		chunk := strings.TrimSpace(text[loc[1]:end])
		if chunk == "" {
			continue
		}
		rows = append(rows, row{dateToken: text[loc[0]:loc[1]], chunk: chunk})
	}
	return rows
}

// extractRows runs the chunk pipeline over already scoped text. Any chunk
// that cannot produce a clean transaction is dropped on its own.
func extractRows(scoped string, rules rowRules) []model.ImportedTransaction {
	var out []model.ImportedTransaction
	for _, r := range segmentRows(Collapse(scoped), rules.datePattern) {
		if txn, ok := extractRow(r, rules); ok {
			out = append(out, txn)
		}
	}
	return out
}

func extractRow(r row, rules rowRules) (model.ImportedTransaction, bool) {
	date, ok := rules.parseDate(r.dateToken)
	if !ok {
		return model.ImportedTransaction{}, false
	}

	chunk := r.chunk
	if len(rules.boilerplate) > 0 {
		chunk = Collapse(replaceAll(chunk, rules.boilerplate))
	}
	if chunk == "" || matchesAny(chunk, rules.reject) {
		return model.ImportedTransaction{}, false
	}
	chunk = truncate(chunk, rules.truncateAt)
	if chunk == "" {
		return model.ImportedTransaction{}, false
	}

	moneyLocs := moneyPattern.FindAllStringIndex(chunk, -1)
	if len(moneyLocs) == 0 {
		return model.ImportedTransaction{}, false
	}
	tokens := make([]string, len(moneyLocs))
	for i, loc := range moneyLocs {
		tokens[i] = chunk[loc[0]:loc[1]]
	}

	currency := rules.currency(chunk)
	amount, ok := normalize.LocaleAmount(rules.pickAmount(tokens, currency))
	if !ok || amount.IsZero() {
		return model.ImportedTransaction{}, false
	}

	strip := append([][]int(nil), moneyLocs...)
	var installment, receipt string
	if rules.installment != nil {
		var instLoc, recLoc []int
		installment, instLoc = findInstallment(chunk, rules.installment)
		if instLoc != nil {
			strip = append(strip, instLoc)
		}
		receipt, recLoc = findReceipt(chunk, instLoc, moneyLocs)
		if recLoc != nil {
			strip = append(strip, recLoc)
		}
	}

	desc := replaceAll(blank(chunk, strip), rules.noise)
	desc = Collapse(desc)
	desc = strings.TrimSpace(strings.TrimPrefix(desc, "*"))
	if desc == "" || residualTotal.MatchString(desc) {
		return model.ImportedTransaction{}, false
	}

	return model.ImportedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount.Abs().Neg(),
		Currency:    currency,
		AccountHint: rules.hint,
		Installment: installment,
		Receipt:     receipt,
		Raw:         r.dateToken + " " + chunk,
	}, true
}

// findInstallment returns the first installment code and the span of the
// whole matched token (including any bank prefix such as "C.").
func findInstallment(chunk string, pattern *regexp.Regexp) (string, []int) {
	m := pattern.FindStringSubmatchIndex(chunk)
	if m == nil {
		return "", nil
	}
	return chunk[m[2]:m[3]], m[0:2]
}

// findReceipt prefers the first 5-7 digit token after the installment code and
// falls back to the first one in the chunk. Digits inside money tokens never
// count.
func findReceipt(chunk string, instLoc []int, moneyLocs [][]int) (string, []int) {
	if instLoc != nil {
		if loc := firstReceipt(chunk, instLoc[1], moneyLocs); loc != nil {
			return chunk[loc[0]:loc[1]], loc
		}
	}
	if loc := firstReceipt(chunk, 0, moneyLocs); loc != nil {
		return chunk[loc[0]:loc[1]], loc
	}
	return "", nil
}

func firstReceipt(chunk string, from int, moneyLocs [][]int) []int {
	for _, loc := range receiptPattern.FindAllStringIndex(chunk[from:], -1) {
		abs := []int{loc[0] + from, loc[1] + from}
		if !overlapsAny(abs, moneyLocs) {
			return abs
		}
	}
	return nil
}

// truncate cuts the chunk at the first embedded total marker. Page breaks can
// glue a totals line onto the last row of a page.
func truncate(chunk string, markers []*regexp.Regexp) string {
	for _, re := range markers {
		if loc := re.FindStringIndex(chunk); loc != nil {
			chunk = strings.TrimSpace(chunk[:loc[0]])
		}
	}
	return chunk
}

// blank replaces the bytes of every span with spaces, so removing one token
// never touches an equal substring elsewhere in the chunk.
func blank(s string, spans [][]int) string {
	b := []byte(s)
	for _, sp := range spans {
		for i := sp[0]; i < sp[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

func replaceAll(s string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func overlapsAny(span []int, others [][]int) bool {
	for _, o := range others {
		if span[0] < o[1] && o[0] < span[1] {
			return true
		}
	}
	return false
}

func lastToken(tokens []string, _ model.Currency) string {
	return tokens[len(tokens)-1]
}
