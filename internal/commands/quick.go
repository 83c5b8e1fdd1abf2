package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/logger"
	"github.com/fipe-dev/fipe/internal/model"
)

func newQuickCommand(repoDir *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "quick <words...>",
		Short: "Record a transaction from a shorthand line",
		Example: "  fipe quick Verdulería 900 ayer efectivo\n" +
			"  fipe quick -- Sueldo -500000 01/03/2024",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			return runQuick(cmd.OutOrStdout(), ws, strings.Join(args, " "), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed entry without saving")

	return cmd
}

func runQuick(out io.Writer, ws *workspace, line string, dryRun bool) error {
	entry, err := ws.Quick.Parse(line)
	if err != nil {
		return err
	}

	if dryRun {
		printEntry(out, entry)
		return nil
	}

	tx := ledger.FromQuick(entry, time.Now())
	if err := ws.Ledger.Add(tx); err != nil {
		return err
	}
	logger.L.Info("quick entry saved", "id", tx.ID, "account", tx.AccountKey, "type", tx.Type)
	ws.commit(fmt.Sprintf("quick: %s %s", entry.Description, entry.Amount.StringFixed(2)))

	printEntry(out, entry)
	return nil
}

func printEntry(out io.Writer, e model.QuickEntry) {
	fmt.Fprintf(out, "%s  %s  %s %s  %s  %s\n", e.Date, e.Description, e.Currency, e.Amount.StringFixed(2), e.Type, e.AccountKey)
}
