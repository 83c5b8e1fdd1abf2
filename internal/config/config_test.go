package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Tadeo")
	cfg.Parse.BBVACardholder = "Tadeo Medina Vetre"
	cfg.Quick.Keywords["dolarapp"] = "dolarapp_debit_ars"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Tadeo")

	assert.Equal(t, "Tadeo", cfg.Owner)
	assert.Equal(t, 80, cfg.Parse.MinTextLength)
	assert.Equal(t, 4*1024*1024, cfg.Parse.MaxTextBytes)
	assert.Empty(t, cfg.Parse.BBVACardholder)
	assert.Equal(t, "cash_ars", cfg.Quick.DefaultAccount)
	assert.Equal(t, "ayer", cfg.Quick.YesterdayWord)
	assert.Equal(t, "bbva_credit", cfg.Quick.Keywords["bbva"])
	assert.Equal(t, "galicia_credit_visa", cfg.Quick.Keywords["galicia"])
	assert.Equal(t, "cash_ars", cfg.Quick.Keywords["efectivo"])
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("owner: Ana\nparse:\n  min_text_length: 40\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ana", cfg.Owner)
	assert.Equal(t, 40, cfg.Parse.MinTextLength)
	assert.Equal(t, 4<<20, cfg.Parse.MaxTextBytes)
	assert.Equal(t, "cash_ars", cfg.Quick.DefaultAccount)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative threshold", "parse:\n  min_text_length: -1\n"},
		{"zero max bytes", "parse:\n  max_text_bytes: 0\n"},
		{"blank account", "quick:\n  default_account: \"\"\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"not yaml", "parse: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Tadeo")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "owner: Tadeo")
	assert.Contains(t, contents, "min_text_length: 80")
	assert.Contains(t, contents, "yesterday_word: ayer")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "bbva_cardholder")
}
