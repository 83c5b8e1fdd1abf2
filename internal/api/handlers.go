package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fipe-dev/fipe/internal/buildinfo"
	"github.com/fipe-dev/fipe/internal/importer"
	"github.com/fipe-dev/fipe/internal/importlog"
	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/quickentry"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleAccounts(c *fiber.Ctx) error {
	all := s.Accounts.All()
	if all == nil {
		all = []model.Account{}
	}
	return c.JSON(all)
}

// handleParse runs the extractors without saving anything. The statement is
// either the raw request body (text) or a multipart "file" field.
func (s *Server) handleParse(c *fiber.Ctx) error {
	det, _, err := s.detectRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(det)
}

type quickRequest struct {
	Line   string `json:"line"`
	DryRun bool   `json:"dryRun"`
}

// handleQuick parses a quick-entry line and, unless dryRun is set, saves it.
func (s *Server) handleQuick(c *fiber.Ctx) error {
	var req quickRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected JSON body with a line field")
	}

	entry, err := s.Quick.Parse(req.Line)
	if errors.Is(err, quickentry.ErrEmptyInput) || errors.Is(err, quickentry.ErrNoAmount) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return err
	}
	if req.DryRun {
		return c.JSON(fiber.Map{"entry": entry})
	}

	tx := ledger.FromQuick(entry, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Ledger.Add(tx); err != nil {
		return ledgerError(err)
	}
	s.commit(fmt.Sprintf("quick: %s %s", tx.Description, tx.Amount.StringFixed(2)))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry, "transaction": tx})
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	s.mu.Lock()
	txs, err := s.Ledger.Load()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return c.JSON(txs)
}

// handleUpdateTransaction applies a partial edit. Only the fields present in
// the body change; the result is validated like any new row.
func (s *Server) handleUpdateTransaction(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch ledger.Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected JSON body with the fields to change")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.Ledger.Update(id, patch)
	if err != nil {
		return ledgerError(err)
	}
	s.commit("edit: transaction " + id)
	return c.JSON(tx)
}

func (s *Server) handleDeleteTransaction(c *fiber.Ctx) error {
	id := c.Params("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Ledger.Delete(id); err != nil {
		return ledgerError(err)
	}
	s.commit("delete: transaction " + id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleImports(c *fiber.Ctx) error {
	batches, err := importlog.Read(s.RepoRoot)
	if err != nil {
		return err
	}
	if batches == nil {
		batches = []model.ImportBatch{}
	}
	return c.JSON(batches)
}

// handleCreateImport parses an uploaded statement and records its rows as
// one batch. A statement without rows is rejected with its detection label.
func (s *Server) handleCreateImport(c *fiber.Ctx) error {
	det, source, err := s.detectRequest(c)
	if err != nil {
		return err
	}
	if len(det.Transactions) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "no transactions found",
			"detected": det.Detected,
		})
	}

	rows := ledger.RowsFromDetection(det, s.Accounts, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	batch, err := s.Ledger.Import(source, det.Detected, rows)
	if err != nil {
		return ledgerError(err)
	}
	for i := range rows {
		rows[i].BatchID = batch.ID
	}
	s.commit(fmt.Sprintf("import: %s (%d rows, %s)", source, batch.Count, batch.Detected))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"batch": batch, "transactions": rows})
}

func (s *Server) handleDeleteImport(c *fiber.Ctx) error {
	id := c.Params("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.Ledger.DeleteBatch(id)
	if errors.Is(err, importlog.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	s.commit(fmt.Sprintf("delete: import %s (%d rows)", id, removed))
	return c.JSON(fiber.Map{"removed": removed})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "days must be at least 1")
	}
	s.mu.Lock()
	txs, err := s.Ledger.Load()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return c.JSON(ledger.Summarize(txs, s.now(), days))
}

// detectRequest reads the statement from a multipart "file" field or, for
// any other content type, from the raw body as text. It returns the
// detection and a source name for the import log.
func (s *Server) detectRequest(c *fiber.Ctx) (model.Detection, string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return model.Detection{}, "", fiber.NewError(fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
		}

		dir, err := os.MkdirTemp("", "fipe-upload-*")
		if err != nil {
			return model.Detection{}, "", fmt.Errorf("creating upload dir: %w", err)
		}
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "statement"+strings.ToLower(filepath.Ext(fh.Filename)))
		if err := c.SaveFile(fh, path); err != nil {
			return model.Detection{}, "", fmt.Errorf("saving upload: %w", err)
		}

		det, err := s.Registry.DetectFile(path)
		if errors.Is(err, importer.ErrUnsupportedFile) {
			return model.Detection{}, "", fiber.NewError(fiber.StatusBadRequest, "only .pdf, .txt, .csv and .xlsx files are supported")
		}
		if err != nil {
			return model.Detection{}, "", fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return det, fh.Filename, nil
	}

	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return model.Detection{}, "", fiber.NewError(fiber.StatusBadRequest, "send statement text or a multipart file")
	}
	return s.Registry.Detect(string(body)), "texto pegado", nil
}

func ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalid):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
