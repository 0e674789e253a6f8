package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <target-item-id>",
		Short: "Propose buying a marketplace item with the treasury",
		Long: `Create a proposal to buy the marketplace item with the given id. Requires
a connected account holding at least one membership NFT.`,
		Example: `  treb-dao create 42 --network sepolia`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			targetItemID, err := parseTargetItemID(args[0])
			if err != nil {
				return err
			}

			if _, err := app.Governance.Open(cmd.Context(), usecase.OpenOptions{RequireWallet: true}); err != nil {
				return err
			}

			result, err := app.Governance.Create(cmd.Context(), targetItemID)
			if err != nil {
				return err
			}
			return printAction(cmd, app, result)
		},
	}
}
