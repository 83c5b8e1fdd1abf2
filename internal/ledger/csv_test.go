package ledger

import (
	"errors"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipe-dev/fipe/internal/model"
)

var testTime = time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTx(id, date, desc, amount string) model.Transaction {
	return model.Transaction{
		ID:          id,
		CreatedAt:   testTime,
		Date:        date,
		Description: desc,
		Amount:      dec(amount),
		Currency:    model.CurrencyARS,
		Type:        model.TxExpense,
		AccountKey:  "cash_ars",
	}
}

func TestRoundTrip(t *testing.T) {
	txs := []model.Transaction{
		testTx("a", "2024-03-01", "MERPAGO*VERDULERIA", "12345.67"),
		{
			ID:          "b",
			CreatedAt:   testTime.Add(time.Second),
			Date:        "2024-03-05",
			Description: `K FRAVEGA, "cuotas"`,
			Amount:      dec("80733.33"),
			Currency:    model.CurrencyUSD,
			Type:        model.TxIncome,
			AccountKey:  "galicia_credit_visa",
			Installment: "05/06",
			Receipt:     "004512",
			BatchID:     "batch-1",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, dropped, err := ReadTransactions(&buf)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, got, 2)
	for i := range txs {
		assert.Equal(t, txs[i].ID, got[i].ID)
		assert.True(t, txs[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.Equal(t, txs[i].Date, got[i].Date)
		assert.Equal(t, txs[i].Description, got[i].Description)
		assert.True(t, txs[i].Amount.Equal(got[i].Amount), "amount row %d", i)
		assert.Equal(t, txs[i].Currency, got[i].Currency)
		assert.Equal(t, txs[i].Type, got[i].Type)
		assert.Equal(t, txs[i].AccountKey, got[i].AccountKey)
		assert.Equal(t, txs[i].Installment, got[i].Installment)
		assert.Equal(t, txs[i].Receipt, got[i].Receipt)
		assert.Equal(t, txs[i].BatchID, got[i].BatchID)
	}
}

func TestMarshal_FixedCents(t *testing.T) {
	row := MarshalTransaction(testTx("a", "2024-03-01", "Kiosco", "350"))
	assert.Equal(t, "350.00", row[colAmount])
}

func TestUnmarshal_Repairs(t *testing.T) {
	rec := []string{"x", "garbage", "2024-03-01", "  ", "-12.50", "EUR", "refund", "", "", "", ""}
	tx, err := UnmarshalTransaction(rec)
	require.NoError(t, err)
	assert.Equal(t, NoDescription, tx.Description)
	assert.Equal(t, "12.5", tx.Amount.String())
	assert.Equal(t, model.CurrencyARS, tx.Currency)
	assert.Equal(t, model.TxExpense, tx.Type)
	assert.Equal(t, DefaultAccountKey, tx.AccountKey)
	assert.True(t, tx.CreatedAt.IsZero())
}

func TestReadTransactions_DropsBrokenRows(t *testing.T) {
	in := Header + "\n" +
		"a,2024-03-21T12:00:00Z,2024-03-01,Kiosco,350.00,ARS,expense,cash_ars,,,\n" +
		"b,2024-03-21T12:00:00Z,,Sin fecha,10.00,ARS,expense,cash_ars,,,\n" +
		"c,2024-03-21T12:00:00Z,2024-03-02,Sin monto,abc,ARS,expense,cash_ars,,,\n" +
		"d,2024-03-21T12:00:00Z,2024-03-02\n"

	got, dropped, err := ReadTransactions(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestReadTransactions_Empty(t *testing.T) {
	got, dropped, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Nil(t, got)
}

// diskFullWriter fails every write.
type diskFullWriter struct{}

func (diskFullWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTransactions_ReportsFlushError(t *testing.T) {
	err := WriteTransactions(diskFullWriter{}, []model.Transaction{testTx("a", "2024-03-01", "Cafe", "100")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
