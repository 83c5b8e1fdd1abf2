package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/ledger"
	"github.com/fipe-dev/fipe/internal/logger"
	"github.com/fipe-dev/fipe/internal/model"
)

func newEditCommand(repoDir *string) *cobra.Command {
	var date, description, amount, account, txType string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch ledger.Patch
			flags := cmd.Flags()
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("amount") {
				v, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid --amount %q: %w", amount, err)
				}
				patch.Amount = &v
			}
			if flags.Changed("account") {
				patch.AccountKey = &account
			}
			if flags.Changed("type") {
				t := model.TxType(txType)
				patch.Type = &t
			}
			if patch == (ledger.Patch{}) {
				return errors.New("nothing to change: pass at least one of --date, --description, --amount, --account, --type")
			}

			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			id := args[0]
			tx, err := ws.Ledger.Update(id, patch)
			if err != nil {
				return err
			}
			logger.L.Info("transaction edited", "id", id)
			ws.commit("edit: transaction " + id)

			printTransactions(cmd.OutOrStdout(), []model.Transaction{tx})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	flags.StringVar(&description, "description", "", "new description")
	flags.StringVar(&amount, "amount", "", "new amount, unsigned with a decimal point")
	flags.StringVar(&account, "account", "", "new account key")
	flags.StringVar(&txType, "type", "", "expense or income")

	return cmd
}
