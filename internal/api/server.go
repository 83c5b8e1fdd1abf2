// Package api serves the importer and the ledger over HTTP for local tools.
package api

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fipe-dev/fipe/internal/accounts"
	"github.com/fipe-dev/fipe/internal/importer"
	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/logger"
	"github.com/fipe-dev/fipe/internal/quickentry"
)

// DefaultBodyLimit caps uploads; statement PDFs are far smaller.
const DefaultBodyLimit = 32 << 20

// Committer records ledger changes, normally a *gitops.Repo.
type Committer interface {
	Commit(message string, paths ...string) (string, error)
}

// Server wires the HTTP handlers to a data directory.
type Server struct {
	RepoRoot string
	Registry *importer.Registry
	Accounts *accounts.Service
	Ledger   *ledger.Service
	Quick    *quickentry.Parser
	// Git is optional; nil disables commits.
	Git Committer
	Now func() time.Time

	// mu serializes every handler that touches the ledger. Reads take it
	// too because Load rewrites a ledger with unreadable rows.
	mu sync.Mutex
}

// App builds the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "fipe",
		BodyLimit:             DefaultBodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLog)

	r := app.Group("/api")
	r.Get("/health", s.handleHealth)
	r.Get("/accounts", s.handleAccounts)
	r.Post("/parse", s.handleParse)
	r.Post("/quick", s.handleQuick)
	r.Get("/transactions", s.handleTransactions)
	r.Patch("/transactions/:id", s.handleUpdateTransaction)
	r.Delete("/transactions/:id", s.handleDeleteTransaction)
	r.Get("/imports", s.handleImports)
	r.Post("/imports", s.handleCreateImport)
	r.Delete("/imports/:id", s.handleDeleteImport)
	r.Get("/summary", s.handleSummary)

	return app
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// commit records a ledger change. A failed commit is logged, never returned:
// the data is already on disk.
func (s *Server) commit(message string) {
	if s.Git == nil {
		return
	}
	hash, err := s.Git.Commit(message, "ledger")
	if err != nil {
		logger.L.Warn("git commit failed", "message", message, "error", err)
		return
	}
	if hash != "" {
		logger.L.Debug("committed ledger change", "hash", hash, "message", message)
	}
}

// errorHandler renders every error as {"error": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		logger.L.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.L.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return err
}
