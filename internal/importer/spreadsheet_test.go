package importer

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipe-dev/fipe/internal/model"
)

func TestParseSpreadsheet_Fixture(t *testing.T) {
	f, err := os.Open("../../testdata/planilla.csv")
	require.NoError(t, err)
	defer f.Close()

	txns, err := ParseSpreadsheet(f)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "2024-03-01", txns[0].Date)
	assert.Equal(t, "Alquiler", txns[0].Description)
	assert.Equal(t, "-350000.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, model.CurrencyARS, txns[0].Currency)

	assert.Equal(t, "2024-03-05", txns[1].Date)
	assert.Equal(t, "Farmacia", txns[1].Description)
	assert.Equal(t, "-12500.50", txns[1].Amount.StringFixed(2))
}

func TestParseSpreadsheet_CommaDelimitedWithBOM(t *testing.T) {
	in := "\ufeffdate,description,amount\n2024-04-02,Cafe,\"1.500,00\"\n"
	txns, err := ParseSpreadsheet(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Cafe", txns[0].Description)
	assert.Equal(t, "-1500.00", txns[0].Amount.StringFixed(2))
}

func TestParseSpreadsheet_MissingColumn(t *testing.T) {
	_, err := ParseSpreadsheet(strings.NewReader("Fecha;Detalle\n2024-03-01;x\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestParseSpreadsheet_HeaderOnly(t *testing.T) {
	txns, err := ParseSpreadsheet(strings.NewReader("Fecha;Descripción;Monto\n"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}
