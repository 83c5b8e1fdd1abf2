package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipe-dev/fipe/internal/model"
)

func TestBBVAExtractor_Statement(t *testing.T) {
	e := NewBBVAExtractor("Tadeo Medina Vetre")
	txns := e.Extract(readFixture(t, "bbva_visa.txt"))
	require.Len(t, txns, 6)

	netflix := txns[0]
	assert.Equal(t, "2024-03-07", netflix.Date)
	assert.Equal(t, "NETFLIX.COM", netflix.Description)
	assert.Equal(t, model.CurrencyUSD, netflix.Currency)
	assert.Equal(t, "-12.99", netflix.Amount.StringFixed(2))

	super := txns[1]
	assert.Equal(t, "SUPERMERCADO DIA", super.Description)
	assert.Equal(t, model.CurrencyARS, super.Currency)
	assert.Equal(t, "-45120.50", super.Amount.StringFixed(2))
	assert.Equal(t, "087341", super.Receipt)

	fravega := txns[2]
	assert.Equal(t, "FRAVEGA", fravega.Description, "page footer must not leak into the description")
	assert.Equal(t, "02/12", fravega.Installment)
	assert.Equal(t, "004433", fravega.Receipt)
	assert.Equal(t, "-18500.00", fravega.Amount.StringFixed(2))

	amazon := txns[3]
	assert.Equal(t, "2024-03-14", amazon.Date)
	assert.Equal(t, "AMAZON PRIME", amazon.Description)
	assert.Equal(t, model.CurrencyUSD, amazon.Currency)
	assert.Equal(t, "-14.99", amazon.Amount.StringFixed(2), "USD rows read the Dólares column")

	sellos := txns[4]
	assert.Equal(t, "2024-03-21", sellos.Date)
	assert.Equal(t, "IMPUESTO DE SELLOS", sellos.Description)
	assert.Equal(t, "-1250.00", sellos.Amount.StringFixed(2))

	iva := txns[5]
	assert.Equal(t, "IVA RG 4240 21%", iva.Description)
	assert.Equal(t, "-3150.75", iva.Amount.StringFixed(2))
	assert.Empty(t, iva.Receipt, "tax rows carry no coupon")

	for _, txn := range txns {
		assert.Equal(t, "BBVA VISA", txn.AccountHint)
	}
}

func TestBBVAExtractor_AnyCardholder(t *testing.T) {
	e := NewBBVAExtractor("")
	txns := e.Extract(readFixture(t, "bbva_visa.txt"))
	assert.Len(t, txns, 6)
}

func TestBBVAExtractor_FirstTokenForPesos(t *testing.T) {
	e := NewBBVAExtractor("")
	txns := e.Extract("Consumos Ana Paz 02-Jan-24 LIBRERIA 001122 3.000,00 9,99")
	require.Len(t, txns, 1)
	assert.Equal(t, model.CurrencyARS, txns[0].Currency)
	assert.Equal(t, "-3000.00", txns[0].Amount.StringFixed(2))
}

func TestBBVAExtractor_RejectsBalanceRows(t *testing.T) {
	e := NewBBVAExtractor("")
	txns := e.Extract("Consumos Ana Paz 02-Jan-24 SALDO ACTUAL 3.000,00 03-Jan-24 CAFE 1.500,00")
	require.Len(t, txns, 1)
	assert.Equal(t, "CAFE", txns[0].Description)
}

func TestBBVAExtractor_NoDuplicatesWithoutHeaders(t *testing.T) {
	e := NewBBVAExtractor("")
	text := "02-Jan-24 CAFE 1.500,00 Impuestos, cargos e intereses 05-Jan-24 IVA 315,00"
	txns := e.Extract(text)
	require.Len(t, txns, 2)
	assert.Equal(t, "CAFE", txns[0].Description)
	assert.Equal(t, "IVA", txns[1].Description)
}

func TestBBVAExtractor_IgnoresNumericDates(t *testing.T) {
	e := NewBBVAExtractor("")
	assert.Empty(t, e.Extract(readFixture(t, "galicia_visa.txt")))
}

func TestBBVAExtractor_TruncatesAtTotalConsumos(t *testing.T) {
	e := NewBBVAExtractor("")
	tests := []struct {
		name  string
		text  string
		descs []string
	}{
		{
			name:  "total glued to last row",
			text:  "Consumos Ana Paz 02-Jan-24 CAFE 1.500,00 TOTAL CONSUMOS 9.999,00",
			descs: []string{"CAFE"},
		},
		{
			name:  "total on its own dated chunk",
			text:  "Consumos Ana Paz 02-Jan-24 CAFE 1.500,00 03-Jan-24 TOTAL CONSUMOS 9.999,00",
			descs: []string{"CAFE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := e.Extract(tt.text)
			require.Len(t, txns, len(tt.descs))
			for i, d := range tt.descs {
				assert.Equal(t, d, txns[i].Description)
				assert.Equal(t, "-1500.00", txns[i].Amount.StringFixed(2), "the total is never read as the amount")
			}
		})
	}
}
