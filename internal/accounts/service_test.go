package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipe-dev/fipe/internal/model"
)

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultCatalogue())

	acct, ok := svc.Get("galicia_credit_visa")
	assert.True(t, ok)
	assert.Equal(t, "Galicia Crédito (VISA)", acct.Name)

	_, ok = svc.Get("nope")
	assert.False(t, ok)

	assert.True(t, svc.Exists("cash_ars"))
	assert.False(t, svc.Exists("nope"))
}

func TestByCurrency(t *testing.T) {
	svc := NewService(DefaultCatalogue())
	usd := svc.ByCurrency(model.CurrencyUSD)
	assert.Len(t, usd, 5)
	for _, a := range usd {
		assert.Equal(t, model.CurrencyUSD, a.Currency)
	}
}

func TestKeyForHint(t *testing.T) {
	svc := NewService(DefaultCatalogue())
	tests := []struct {
		hint string
		want string
	}{
		{"Galicia Crédito (VISA)", "galicia_credit_visa"},
		{"galicia crédito (mastercard)", "galicia_credit_mc"},
		{"Galicia algo", "galicia_credit_visa"},
		{"BBVA VISA", "bbva_credit"},
		{"Santander", "cash_ars"},
		{"", "cash_ars"},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.KeyForHint(tt.hint))
		})
	}
}

func TestKeyForHint_EmptyCatalogue(t *testing.T) {
	svc := NewService(nil)
	assert.Equal(t, "bbva_credit", svc.KeyForHint("BBVA VISA"))
	assert.Equal(t, "galicia_credit_visa", svc.KeyForHint("Galicia Crédito (VISA)"))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	catalogue := DefaultCatalogue()
	dir := t.TempDir()
	require.NoError(t, NewService(catalogue).Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "accounts.csv"))
	require.NoError(t, err)

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), len(catalogue))
	for _, orig := range catalogue {
		got, ok := svc.Get(orig.Key)
		require.True(t, ok, "account %s should exist", orig.Key)
		assert.Equal(t, orig, got)
	}
}
