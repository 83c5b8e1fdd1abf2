// Package importlog keeps the list of accepted imports in
// ledger/imports.csv so a whole batch can be reviewed or undone later.
package importlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fipe-dev/fipe/internal/model"
)

// ErrNotFound is returned by Remove when no batch has the given ID.
var ErrNotFound = errors.New("import batch not found")

// Header is the CSV header for imports.csv.
const Header = "id,created_at,source_name,detected,count"

const (
	numFields     = 5
	logDir        = "ledger"
	logFile       = "ledger/imports.csv"
	colID         = 0
	colCreatedAt  = 1
	colSourceName = 2
	colDetected   = 3
	colCount      = 4
)

// MarshalBatch converts an ImportBatch to a CSV row.
func MarshalBatch(b model.ImportBatch) []string {
	row := make([]string, numFields)
	row[colID] = b.ID
	row[colCreatedAt] = b.CreatedAt.UTC().Format(time.RFC3339Nano)
	row[colSourceName] = b.SourceName
	row[colDetected] = string(b.Detected)
	row[colCount] = strconv.Itoa(b.Count)
	return row
}

// UnmarshalBatch converts a CSV row to an ImportBatch. Blank names and
// labels are filled with "Import" and "Unknown".
func UnmarshalBatch(record []string) (model.ImportBatch, error) {
	if len(record) != numFields {
		return model.ImportBatch{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.ImportBatch{}, fmt.Errorf("missing id")
	}

	ts, err := time.Parse(time.RFC3339Nano, record[colCreatedAt])
	if err != nil {
		return model.ImportBatch{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}
	count, err := strconv.Atoi(record[colCount])
	if err != nil {
		count = 0
	}

	source := record[colSourceName]
	if strings.TrimSpace(source) == "" {
		source = "Import"
	}
	detected := model.Label(record[colDetected])
	if strings.TrimSpace(string(detected)) == "" {
		detected = model.LabelUnknown
	}

	return model.ImportBatch{
		ID:         record[colID],
		CreatedAt:  ts,
		SourceName: source,
		Detected:   detected,
		Count:      count,
	}, nil
}

// Append writes batches to <repoRoot>/ledger/imports.csv, creating the file
// and header if needed.
func Append(repoRoot string, batches ...model.ImportBatch) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	if err := writeBatches(f, needsHeader, batches); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing import log: %w", err)
	}
	return nil
}

func writeBatches(w io.Writer, withHeader bool, batches []model.ImportBatch) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, b := range batches {
		if err := cw.Write(MarshalBatch(b)); err != nil {
			return fmt.Errorf("writing batch %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every batch, newest first. A missing file is an empty log;
// rows that cannot be parsed are skipped.
func Read(repoRoot string) ([]model.ImportBatch, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	batches, err := readBatches(f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].CreatedAt.After(batches[j].CreatedAt)
	})
	return batches, nil
}

// Remove drops the batch with the given ID from the log.
func Remove(repoRoot, id string) error {
	batches, err := Read(repoRoot)
	if err != nil {
		return err
	}

	kept := batches[:0]
	found := false
	for _, b := range batches {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	path := filepath.Join(repoRoot, logFile)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("rewriting import log: %w", err)
	}
	// Oldest first on disk, matching append order.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.Before(kept[j].CreatedAt)
	})
	return Append(repoRoot, kept...)
}

func readBatches(r io.Reader) ([]model.ImportBatch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var batches []model.ImportBatch
	for _, rec := range records[1:] {
		b, err := UnmarshalBatch(rec)
		if err != nil {
			continue
		}
		batches = append(batches, b)
	}
	return batches, nil
}
