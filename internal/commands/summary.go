package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/model"
)

func newSummaryCommand(repoDir *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and top spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			txs, err := ws.Ledger.Load()
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), ledger.Summarize(txs, time.Now(), days))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "size of the recent window in days")

	return cmd
}

var summaryCurrencies = []model.Currency{model.CurrencyARS, model.CurrencyUSD}

func printSummary(out io.Writer, s ledger.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\tINCOME\tEXPENSE\tNET\t\n")
	for _, c := range summaryCurrencies {
		t := s.AllTime[c]
		fmt.Fprintf(w, "All time %s\t%s\t%s\t%s\t\n", c, t.Income.StringFixed(2), t.Expense.StringFixed(2), t.Net.StringFixed(2))
	}
	for _, c := range summaryCurrencies {
		t := s.Window[c]
		fmt.Fprintf(w, "Last %d days %s\t%s\t%s\t%s\t\n", s.Days, c, t.Income.StringFixed(2), t.Expense.StringFixed(2), t.Net.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d transactions since %s\n", s.WindowCount, s.From)
	printRanked(out, "Top accounts (ARS expenses)", s.TopAccounts)
	printRanked(out, "Top descriptions (ARS expenses)", s.TopDescriptions)
}

func printRanked(out io.Writer, title string, items []ledger.Ranked) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, r := range items {
		fmt.Fprintf(w, "%d.\t%s\t%s\n", i+1, r.Key, r.Amount.StringFixed(2))
	}
	w.Flush()
}
