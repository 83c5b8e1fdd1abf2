package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/importer"
	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/logger"
	"github.com/fipe-dev/fipe/internal/model"
)

func newImportCommand(repoDir *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statements (.pdf, .txt, .csv, .xlsx)",
		Long: "Import bank statements into the ledger. Without arguments every " +
			"statement in import/ is imported and moved to import/processed/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			return runImport(cmd.OutOrStdout(), ws, args, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print detected rows without saving")

	return cmd
}

// importTarget is one statement to import. Scanned files are moved to
// import/processed once saved.
type importTarget struct {
	path    string
	scanned bool
}

func runImport(out io.Writer, ws *workspace, files []string, dryRun bool) error {
	var targets []importTarget
	for _, f := range files {
		targets = append(targets, importTarget{path: f})
	}
	if len(targets) == 0 {
		scanned, err := importer.Scan(ws.Root)
		if err != nil {
			return err
		}
		for _, f := range scanned {
			targets = append(targets, importTarget{path: f.Path, scanned: true})
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(out, "No statements to import.")
		return nil
	}

	var failed int
	for _, t := range targets {
		if err := importOne(out, ws, t, dryRun); err != nil {
			failed++
			fmt.Fprintf(out, "%s: %v\n", filepath.Base(t.path), err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(targets))
	}
	return nil
}

func importOne(out io.Writer, ws *workspace, t importTarget, dryRun bool) error {
	name := filepath.Base(t.path)
	det, err := ws.Registry.DetectFile(t.path)
	if err != nil {
		return err
	}
	logger.L.Info("statement detected", "file", name, "detected", det.Detected, "rows", len(det.Transactions))

	if len(det.Transactions) == 0 {
		fmt.Fprintf(out, "%s: %s, no transactions found\n", name, det.Detected)
		return nil
	}

	if dryRun {
		fmt.Fprintf(out, "%s: %s, %d transactions\n", name, det.Detected, len(det.Transactions))
		printDetected(out, det.Transactions)
		return nil
	}

	rows := ledger.RowsFromDetection(det, ws.Accounts, time.Now())
	batch, err := ws.Ledger.Import(name, det.Detected, rows)
	if err != nil {
		return err
	}
	if t.scanned {
		if err := importer.MarkProcessed(ws.Root, name); err != nil {
			logger.L.Warn("could not move statement", "file", name, "error", err)
		}
	}
	ws.commit(fmt.Sprintf("import: %s (%d rows, %s)", name, batch.Count, batch.Detected))

	fmt.Fprintf(out, "%s: %s, imported %d transactions (batch %s)\n", name, batch.Detected, batch.Count, batch.ID)
	return nil
}

func printDetected(out io.Writer, txns []model.ImportedTransaction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, t := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", t.Date, t.Description, t.Currency, t.Amount.StringFixed(2), t.Installment)
	}
	w.Flush()
}
