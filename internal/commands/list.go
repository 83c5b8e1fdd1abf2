package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/model"
)

func newListCommand(repoDir *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			txs, err := ws.Ledger.Load()
			if err != nil {
				return err
			}
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}
			printTransactions(cmd.OutOrStdout(), txs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows to print (0 for all)")

	return cmd
}

func printTransactions(out io.Writer, txs []model.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(out, "No transactions.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT\tTYPE\tACCOUNT\tID")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			tx.Date, tx.Description, tx.Currency, tx.Amount.StringFixed(2), tx.Type, tx.AccountKey, tx.ID)
	}
	w.Flush()
}
