package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinRows(t *testing.T) {
	rows := [][]string{
		{"DETALLE", "DEL", "CONSUMO"},
		{" ", ""},
		{"01-03-24", "*", "MERPAGO*VERDULERIA", "051695", "12.345,67"},
	}
	want := "DETALLE DEL CONSUMO\n01-03-24 * MERPAGO*VERDULERIA 051695 12.345,67"
	assert.Equal(t, want, joinRows(rows))
}

func TestJoinRows_Empty(t *testing.T) {
	assert.Empty(t, joinRows(nil))
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestExtractText_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumen.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ExtractText(path)
	assert.Error(t, err)
}
