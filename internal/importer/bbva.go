package importer

import (
	"regexp"
	"strings"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

// BBVAExtractor reads BBVA Visa statements.
//
// Two blocks are read: the cardholder's consumption block ("Consumos <Name>")
// and "Impuestos, cargos e intereses". Rows start with a DD-Mon-YY date and
// carry parallel Pesos and Dólares columns:
//
//	07-Mar-24 NETFLIX.COM C.01/03 004512 USD 12,99
//	09-Mar-24 SUPERMERCADO DIA 087341 45.120,50
type BBVAExtractor struct {
	holder    *regexp.Regexp
	consumos  rowRules
	impuestos rowRules
}

var (
	bbvaTaxesStart = regexp.MustCompile(`(?i)\bImpuestos,\s*cargos\s*e\s*intereses\b`)
	bbvaTaxesEnd   = regexp.MustCompile(`(?i)\bPlan\s+V\b|\bResumen\b|\bLegales\b`)
	bbvaDate       = regexp.MustCompile(`\d{2}-[A-Za-z]{3}-\d{2}`)
	bbvaInstall    = regexp.MustCompile(`\bC\.(\d{2}/\d{2})\b`)
	bbvaUSD        = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bUSD\b`),
		regexp.MustCompile(`(?i)U\$S`),
	}
	// Without a configured name, two to four capitalized words after
	// "Consumos" are taken as the cardholder header.
	bbvaAnyHolder = regexp.MustCompile(`\bConsumos(?:\s+\p{Lu}\p{Ll}+){2,4}`)
)

// NewBBVAExtractor returns an extractor for the given cardholder name as it
// is printed in the "Consumos <Name>" header. An empty name accepts any
// capitalized name.
func NewBBVAExtractor(cardholder string) *BBVAExtractor {
	holder := bbvaAnyHolder
	if words := strings.Fields(cardholder); len(words) > 0 {
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		holder = regexp.MustCompile(`(?i)\bConsumos\s+` + strings.Join(words, `\s+`))
	}

	base := rowRules{
		hint:        "BBVA VISA",
		datePattern: bbvaDate,
		parseDate:   normalize.AbbrevMonthDate,
		boilerplate: []*regexp.Regexp{
			regexp.MustCompile(`(?i)FECHA\s*DESCRIPCI(?:Ó|O)N\s*NRO\.?\s*CUP(?:Ó|O)N\s*PESOS\s*D(?:Ó|O)LARES`),
			holder,
			bbvaTaxesStart,
			regexp.MustCompile(`(?i)\bP\s*\.?\s*\d+\s*de\s*\d+`),
			regexp.MustCompile(`(?i)Página\s*\d+\s*de\s*\d+`),
			regexp.MustCompile(`(?i)Resumen\s*Visa`),
			regexp.MustCompile(`(?i)Sobre\s*\(\d+\)`),
		},
		reject: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bSALDO\s+ACTUAL\b`),
			regexp.MustCompile(`(?i)\bLegales\s+y\s+avisos\b`),
		},
		truncateAt: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bTOTAL\s+CONSUMOS\b`),
		},
		currency:   bbvaCurrency,
		pickAmount: bbvaPickAmount,
		noise: append([]*regexp.Regexp{
			regexp.MustCompile(`(?i)\bPESOS\b`),
			regexp.MustCompile(`(?i)\bD(?:Ó|O)LARES\b`),
		}, bbvaUSD...),
	}

	consumos := base
	consumos.installment = bbvaInstall

	return &BBVAExtractor{holder: holder, consumos: consumos, impuestos: base}
}

// Format returns the registry key.
func (e *BBVAExtractor) Format() string { return "bbva" }

// Label returns the detected-format label.
func (e *BBVAExtractor) Label() model.Label { return model.LabelBBVAVisa }

// Extract returns the consumption rows followed by the tax and charge rows.
// The taxes block is read separately only when both headers are present;
// otherwise the consumption pass already covered it.
func (e *BBVAExtractor) Extract(text string) []model.ImportedTransaction {
	consumos, holderFound := LocateSection(text, e.holder, bbvaTaxesStart)
	out := extractRows(consumos, e.consumos)

	if holderFound {
		if taxes, ok := LocateSection(text, bbvaTaxesStart, bbvaTaxesEnd); ok {
			out = append(out, extractRows(taxes, e.impuestos)...)
		}
	}
	return out
}

func bbvaCurrency(chunk string) model.Currency {
	if matchesAny(chunk, bbvaUSD) {
		return model.CurrencyUSD
	}
	return model.CurrencyARS
}

// bbvaPickAmount reads the Dólares column (last token) for USD rows and the
// Pesos column (first token) otherwise.
func bbvaPickAmount(tokens []string, currency model.Currency) string {
	if currency == model.CurrencyUSD {
		return tokens[len(tokens)-1]
	}
	return tokens[0]
}
