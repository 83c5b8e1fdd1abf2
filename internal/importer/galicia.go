package importer

import (
	"regexp"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/normalize"
)

// GaliciaExtractor reads Banco Galicia Visa statements.
//
// Only the consumption detail block is used ("DETALLE DEL CONSUMO" up to
// "TOTAL A PAGAR"). Rows start with a DD-MM-YY date and the amount is the
// last money token of the row (the Pesos column):
//
//	15-03-24 * MERPAGO*VERDULERIA 05/06 051695 12.345,67
type GaliciaExtractor struct{}

var (
	galiciaSectionStart = regexp.MustCompile(`(?i)\bDETALLE\s+DEL\s+CONSUMO\b`)
	galiciaSectionEnd   = regexp.MustCompile(`(?i)\bTOTAL\s+A\s+PAGAR\b`)
	galiciaDate         = regexp.MustCompile(`\d{2}-\d{2}-\d{2}`)
	galiciaInstallment  = regexp.MustCompile(`\b(\d{2}/\d{2})\b`)
)

var galiciaRules = rowRules{
	hint:        "Galicia Crédito (VISA)",
	datePattern: galiciaDate,
	parseDate:   normalize.NumericDate,
	reject: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bCONSOLIDADO\b`),
		regexp.MustCompile(`(?i)\bSU\s+PAGO\s+EN\s+PESOS\b`),
	},
	truncateAt: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bTARJETA\s+\d+\s+Total\s+Consumos\b`),
	},
	installment: galiciaInstallment,
	currency:    func(string) model.Currency { return model.CurrencyARS },
	pickAmount:  lastToken,
}

// Format returns the registry key.
func (e *GaliciaExtractor) Format() string { return "galicia" }

// Label returns the detected-format label.
func (e *GaliciaExtractor) Label() model.Label { return model.LabelGaliciaVisa }

// Extract returns every consumption row found in text.
func (e *GaliciaExtractor) Extract(text string) []model.ImportedTransaction {
	return ExtractGaliciaRows(SectionBetween(text, galiciaSectionStart, galiciaSectionEnd))
}

// ExtractGaliciaRows applies the Galicia row rules to text that is already
// scoped (or deliberately unscoped).
func ExtractGaliciaRows(scoped string) []model.ImportedTransaction {
	return extractRows(scoped, galiciaRules)
}
