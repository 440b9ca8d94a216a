package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List configured accounts without connecting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.accounts.Load(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tgames=%d\tauto-farm=%t\tinterval=%s\n",
					account.Username, len(account.Games), account.AutoFarmCardDrops, account.FarmCheckInterval)
			}

			if len(accounts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no accounts configured")
			}

			return nil
		},
	}
}
