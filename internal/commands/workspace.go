package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fipe-dev/fipe/internal/accounts"
	"github.com/fipe-dev/fipe/internal/config"
	"github.com/fipe-dev/fipe/internal/gitops"
	"github.com/fipe-dev/fipe/internal/importer"
	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/logger"
	"github.com/fipe-dev/fipe/internal/quickentry"
)

// workspace is an opened data directory with every service wired from its
// fipe.yaml.
type workspace struct {
	Root     string
	Config   *config.Config
	Accounts *accounts.Service
	Registry *importer.Registry
	Ledger   *ledger.Service
	Quick    *quickentry.Parser
	// Git is nil when auto-commit is off or the directory is not a repo.
	Git *gitops.Repo
}

// openWorkspace loads the data directory at dir. It fails when fipe.yaml is
// missing, which usually means `fipe init` was never run there.
func openWorkspace(dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a fipe directory (run `fipe init` first)", root)
		}
		return nil, err
	}

	accts, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	reg := importer.DefaultRegistry(cfg.Parse.BBVACardholder)
	reg.MinTextLength = cfg.Parse.MinTextLength
	reg.MaxTextBytes = cfg.Parse.MaxTextBytes

	quick := quickentry.New(cfg.Quick.DefaultAccount)
	if cfg.Quick.YesterdayWord != "" {
		quick.YesterdayWord = cfg.Quick.YesterdayWord
	}
	if len(cfg.Quick.Keywords) > 0 {
		quick.Keywords = cfg.Quick.Keywords
	}

	ws := &workspace{
		Root:     root,
		Config:   cfg,
		Accounts: accts,
		Registry: reg,
		Ledger:   ledger.NewService(root, accts),
		Quick:    quick,
	}

	if cfg.Git.AutoCommit && gitops.Available() {
		repo := gitops.New(root, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if repo.IsRepo() {
			ws.Git = repo
		}
	}
	return ws, nil
}

// commit records the ledger directory in git when auto-commit is enabled.
// Failures are logged; the data is already saved.
func (ws *workspace) commit(message string) {
	if ws.Git == nil {
		return
	}
	hash, err := ws.Git.Commit(message, "ledger")
	if err != nil {
		logger.L.Warn("git commit failed", "message", message, "error", err)
		return
	}
	if hash != "" {
		logger.L.Debug("committed", "hash", hash, "message", message)
	}
}
