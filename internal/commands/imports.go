package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/importlog"
	"github.com/fipe-dev/fipe/internal/logger"
)

func newImportsCommand(repoDir *string) *cobra.Command {
	importsCmd := &cobra.Command{
		Use:   "imports",
		Short: "Inspect or undo recorded imports",
	}
	importsCmd.AddCommand(newImportsListCommand(repoDir), newImportsDeleteCommand(repoDir))
	return importsCmd
}

func newImportsListCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List import batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			batches, err := importlog.Read(ws.Root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No imports.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tDETECTED\tROWS")
			for _, b := range batches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					b.ID, b.CreatedAt.Local().Format(time.DateTime), b.SourceName, b.Detected, b.Count)
			}
			return w.Flush()
		},
	}
}

func newImportsDeleteCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an import batch and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			id := args[0]
			removed, err := ws.Ledger.DeleteBatch(id)
			if err != nil {
				return err
			}
			logger.L.Info("import deleted", "batch", id, "removed", removed)
			ws.commit(fmt.Sprintf("delete: import %s (%d rows)", id, removed))

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted import %s (%d transactions)\n", id, removed)
			return nil
		},
	}
}
