package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fipe-dev/fipe/internal/importlog"
	"github.com/fipe-dev/fipe/internal/ledger"
)

func copyFixture(t *testing.T, name, dst string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

func loadLedger(t *testing.T, dir string) *ledger.Service {
	t.Helper()
	return ledger.NewService(dir, nil)
}

func TestImport_File(t *testing.T) {
	dir := initRepo(t)
	src := filepath.Join(t.TempDir(), "galicia.txt")
	copyFixture(t, "galicia_visa.txt", src)

	out, err := runFipe(t, "import", src, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Galicia Visa, imported 3 transactions")

	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, "galicia_credit_visa", tx.AccountKey)
		assert.NotEmpty(t, tx.BatchID)
	}

	batches, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "galicia.txt", batches[0].SourceName)

	_, err = os.Stat(src)
	assert.NoError(t, err, "explicit files are not moved")
}

func TestImport_DryRun(t *testing.T) {
	dir := initRepo(t)
	src := filepath.Join(t.TempDir(), "bbva.txt")
	copyFixture(t, "bbva_visa.txt", src)

	out, err := runFipe(t, "import", src, "--dry-run", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "BBVA Visa, 6 transactions")
	assert.Contains(t, out, "NETFLIX")

	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestImport_ScansImportDir(t *testing.T) {
	dir := initRepo(t)
	copyFixture(t, "planilla.csv", filepath.Join(dir, "import", "planilla.csv"))

	out, err := runFipe(t, "import", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "CSV, imported 2 transactions")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "planilla.csv"))
	assert.NoError(t, err, "scanned file should move to processed")

	out, err = runFipe(t, "import", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No statements to import.")
}

func TestImport_UnsupportedFileFails(t *testing.T) {
	dir := initRepo(t)
	src := filepath.Join(t.TempDir(), "foto.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpg"), 0o644))

	out, err := runFipe(t, "import", src, "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, out, "unsupported statement file")
}

func TestQuick_Saves(t *testing.T) {
	dir := initRepo(t)

	out, err := runFipe(t, "quick", "--repo", dir, "--", "Sueldo", "-500000", "01/03/2024")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-01  Sueldo  ARS 500000.00  income  cash_ars")

	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "income", string(txs[0].Type))
}

func TestQuick_DryRunAndFailure(t *testing.T) {
	dir := initRepo(t)

	out, err := runFipe(t, "quick", "--dry-run", "--repo", dir, "Cafe", "1500", "bbva")
	require.NoError(t, err)
	assert.Contains(t, out, "bbva_credit")

	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = runFipe(t, "quick", "--repo", dir, "solo", "texto")
	require.Error(t, err)
}

func TestListAndSummary(t *testing.T) {
	dir := initRepo(t)
	_, err := runFipe(t, "quick", "--repo", dir, "Verdulería", "900")
	require.NoError(t, err)
	_, err = runFipe(t, "quick", "--repo", dir, "Kiosco", "350")
	require.NoError(t, err)

	out, err := runFipe(t, "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Verdulería")
	assert.Contains(t, out, "Kiosco")

	out, err = runFipe(t, "list", "-n", "1", "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(out), "\n")), "header plus one row")

	out, err = runFipe(t, "summary", "--days", "7", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1250.00")
	assert.Contains(t, out, "Top accounts")
	assert.Contains(t, out, "cash_ars")

	_, err = runFipe(t, "summary", "--days", "0", "--repo", dir)
	require.Error(t, err)
}

func TestImports_ListAndDelete(t *testing.T) {
	dir := initRepo(t)
	src := filepath.Join(t.TempDir(), "galicia.txt")
	copyFixture(t, "galicia_visa.txt", src)
	_, err := runFipe(t, "import", src, "--repo", dir)
	require.NoError(t, err)

	batches, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	id := batches[0].ID

	out, err := runFipe(t, "imports", "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = runFipe(t, "imports", "delete", id, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "3 transactions")

	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = runFipe(t, "imports", "delete", id, "--repo", dir)
	require.Error(t, err)
}

func TestQuick_Commits(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := runFipe(t, "init", dir)
	require.NoError(t, err)

	_, err = runFipe(t, "quick", "--repo", dir, "Cafe", "1500")
	require.NoError(t, err)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "quick: Cafe 1500.00")
}

func TestEdit(t *testing.T) {
	dir := initRepo(t)
	_, err := runFipe(t, "quick", "--repo", dir, "Cafe", "1500")
	require.NoError(t, err)
	txs, err := loadLedger(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	id := txs[0].ID

	out, err := runFipe(t, "edit", id, "--description", "Cafe con leche", "--amount", "1750.50", "--account", "bbva_credit", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cafe con leche")

	txs, err = loadLedger(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Cafe con leche", txs[0].Description)
	assert.Equal(t, "1750.50", txs[0].Amount.StringFixed(2))
	assert.Equal(t, "bbva_credit", txs[0].AccountKey)
	assert.Equal(t, "expense", string(txs[0].Type), "untouched fields are kept")

	_, err = runFipe(t, "edit", id, "--repo", dir)
	require.Error(t, err, "no fields to change")

	_, err = runFipe(t, "edit", id, "--account", "nope", "--repo", dir)
	require.Error(t, err)

	_, err = runFipe(t, "edit", "missing", "--description", "x", "--repo", dir)
	require.Error(t, err)
}
