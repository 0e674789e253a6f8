package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewExecuteCmd creates the execute command
func NewExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute [proposal-id]",
		Short: "Execute a proposal whose voting has closed",
		Long: `Execute a proposal after its deadline. The contract buys the target item
when yes votes exceed no votes and closes the proposal otherwise. Any
connected account may execute.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var id *uint64
			if len(args) == 1 {
				parsed, err := parseProposalID(args[0])
				if err != nil {
					return err
				}
				id = &parsed
			}

			if _, err := app.Governance.Open(cmd.Context(), usecase.OpenOptions{RequireWallet: true, LoadProposals: id == nil}); err != nil {
				return err
			}

			if id == nil {
				selected, err := pickProposal(cmd, app, models.ActionExecute, "Select a proposal to execute")
				if err != nil {
					return err
				}
				id = &selected.Record.ID
			}

			result, err := app.Governance.Execute(cmd.Context(), *id)
			if err != nil {
				return err
			}
			return printAction(cmd, app, result)
		},
	}
}
