package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewWithdrawCmd creates the withdraw command
func NewWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the treasury to the DAO owner",
		Long:  `Transfer the whole treasury to the DAO owner. Only the owner may withdraw.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if _, err := app.Governance.Open(cmd.Context(), usecase.OpenOptions{RequireWallet: true}); err != nil {
				return err
			}

			result, err := app.Governance.Withdraw(cmd.Context())
			if err != nil {
				return err
			}
			return printAction(cmd, app, result)
		},
	}
}
