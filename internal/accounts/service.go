// Package accounts manages the account catalogue in accounts/accounts.csv.
package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fipe-dev/fipe/internal/model"
)

const (
	galiciaKey  = "galicia_credit_visa"
	bbvaKey     = "bbva_credit"
	fallbackKey = "cash_ars"
)

// Service provides in-memory lookup over the account catalogue.
type Service struct {
	accounts []model.Account
	byKey    map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byKey := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byKey[a.Key] = a
	}
	return &Service{accounts: accounts, byKey: byKey}
}

// Load reads accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("opening account catalogue: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading account catalogue: %w", err)
	}
	return NewService(accts), nil
}

// Path returns the catalogue location under repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "accounts.csv")
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by key.
func (s *Service) Get(key string) (model.Account, bool) {
	a, ok := s.byKey[key]
	return a, ok
}

// Exists reports whether an account key exists.
func (s *Service) Exists(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// ByCurrency returns all accounts held in the given currency.
func (s *Service) ByCurrency(c model.Currency) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Currency == c {
			result = append(result, a)
		}
	}
	return result
}

// KeyForHint maps an extractor hint to an account key. A hint equal to an
// account name picks that account; otherwise a hint naming Galicia or BBVA
// picks that bank's credit card and anything else falls back to cash.
func (s *Service) KeyForHint(hint string) string {
	for _, a := range s.accounts {
		if hint != "" && strings.EqualFold(a.Name, hint) {
			return a.Key
		}
	}
	switch {
	case strings.Contains(hint, "Galicia"):
		return galiciaKey
	case strings.Contains(hint, "BBVA"):
		return bbvaKey
	default:
		return fallbackKey
	}
}

// Save writes the catalogue to accounts/accounts.csv.
func (s *Service) Save(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating account catalogue file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing account catalogue: %w", err)
	}
	return nil
}
