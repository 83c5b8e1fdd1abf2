// Package ledger stores the transaction history in ledger/transactions.csv.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fipe-dev/fipe/internal/importlog"
	"github.com/fipe-dev/fipe/internal/model"
)

var (
	// ErrNotFound is returned when no transaction has the requested ID.
	ErrNotFound = errors.New("transaction not found")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid transaction")
)

const ledgerFile = "ledger/transactions.csv"

// Service provides business logic for the transaction ledger.
type Service struct {
	repoRoot string
	accounts AccountChecker
	// Now is the clock used for creation times.
	Now func() time.Time
}

// NewService creates a ledger Service.
func NewService(repoRoot string, accounts AccountChecker) *Service {
	return &Service{repoRoot: repoRoot, accounts: accounts, Now: time.Now}
}

// Path returns the ledger file location.
func (s *Service) Path() string {
	return filepath.Join(s.repoRoot, ledgerFile)
}

// Load returns every transaction, newest date first and, within a date,
// newest creation first. Rows that cannot be read are dropped and the file is
// rewritten without them.
func (s *Service) Load() ([]model.Transaction, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	txs, dropped, err := ReadTransactions(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		if err := s.save(txs); err != nil {
			return nil, err
		}
	}

	sortNewestFirst(txs)
	return txs, nil
}

// Add validates rows and merges them into the ledger by ID; a row whose ID
// already exists replaces the stored one.
func (s *Service) Add(rows ...model.Transaction) error {
	if err := s.validate(rows); err != nil {
		return err
	}

	current, err := s.Load()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(current))
	for i, tx := range current {
		index[tx.ID] = i
	}
	for _, r := range rows {
		if i, ok := index[r.ID]; ok {
			current[i] = r
			continue
		}
		index[r.ID] = len(current)
		current = append(current, r)
	}
	return s.save(current)
}

// Patch lists the fields Update may change. Nil fields are left alone.
type Patch struct {
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *model.Currency  `json:"currency,omitempty"`
	Type        *model.TxType    `json:"type,omitempty"`
	AccountKey  *string          `json:"accountKey,omitempty"`
	Installment *string          `json:"installment,omitempty"`
}

func (p Patch) apply(tx model.Transaction) model.Transaction {
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Currency != nil {
		tx.Currency = *p.Currency
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.AccountKey != nil {
		tx.AccountKey = *p.AccountKey
	}
	if p.Installment != nil {
		tx.Installment = *p.Installment
	}
	return tx
}

// Update applies patch to the transaction with the given ID.
func (s *Service) Update(id string, patch Patch) (model.Transaction, error) {
	current, err := s.Load()
	if err != nil {
		return model.Transaction{}, err
	}
	for i, tx := range current {
		if tx.ID != id {
			continue
		}
		updated := patch.apply(tx)
		if err := s.validate([]model.Transaction{updated}); err != nil {
			return model.Transaction{}, err
		}
		current[i] = updated
		return updated, s.save(current)
	}
	return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes one transaction.
func (s *Service) Delete(id string) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	kept := current[:0]
	for _, tx := range current {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(current) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.save(kept)
}

// DeleteBatch removes every transaction of an import batch and the batch
// itself from the import log. It returns the number of rows removed.
//
// The ledger is rewritten before the log, so a batch whose log entry is
// already gone can still be cleaned up by ID. ErrNotFound from importlog is
// only returned when neither file knew the batch.
func (s *Service) DeleteBatch(batchID string) (int, error) {
	removed, err := s.removeBatchRows(batchID)
	if err != nil {
		return 0, err
	}
	if err := importlog.Remove(s.repoRoot, batchID); err != nil {
		if errors.Is(err, importlog.ErrNotFound) && removed > 0 {
			return removed, nil
		}
		return removed, err
	}
	return removed, nil
}

func (s *Service) removeBatchRows(batchID string) (int, error) {
	current, err := s.Load()
	if err != nil {
		return 0, err
	}
	kept := current[:0]
	for _, tx := range current {
		if tx.BatchID != batchID {
			kept = append(kept, tx)
		}
	}
	removed := len(current) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(kept)
}

// Import records rows as one batch: every row is tagged with a new batch ID,
// the rows are added to the ledger and the batch is appended to the import
// log. If the log cannot be written the rows are taken back out.
func (s *Service) Import(sourceName string, detected model.Label, rows []model.Transaction) (model.ImportBatch, error) {
	batch := model.ImportBatch{
		ID:         uuid.NewString(),
		CreatedAt:  s.now(),
		SourceName: sourceName,
		Detected:   detected,
		Count:      len(rows),
	}

	tagged := make([]model.Transaction, len(rows))
	for i, r := range rows {
		r.BatchID = batch.ID
		tagged[i] = r
	}
	if err := s.Add(tagged...); err != nil {
		return model.ImportBatch{}, err
	}
	if err := importlog.Append(s.repoRoot, batch); err != nil {
		if _, rerr := s.removeBatchRows(batch.ID); rerr != nil {
			return model.ImportBatch{}, fmt.Errorf("%w (rows of batch %s left in ledger: %v)", err, batch.ID, rerr)
		}
		return model.ImportBatch{}, err
	}
	return batch, nil
}

func (s *Service) validate(rows []model.Transaction) error {
	verrs := ValidateTransactions(rows, s.accounts)
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// save rewrites the ledger through a temporary file so a failed write never
// truncates the existing history.
func (s *Service) save(txs []model.Transaction) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".transactions-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTransactions(tmp, txs); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func sortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
