package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewProposalsCmd creates the proposals command
func NewProposalsCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:     "proposals",
		Aliases: []string{"ls", "list"},
		Short:   "List proposals with their state and available actions",
		Long: `List every proposal with its tallies, lifecycle state and the actions the
connected account can take. The expected outcome of executing a closed
proposal is shown as (YAY) when yes votes lead and (NAY) otherwise; the
contract decides the real outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			snap, err := app.Governance.Open(cmd.Context(), usecase.OpenOptions{LoadProposals: true})
			if err != nil {
				return err
			}

			list := render.ProposalList{
				Proposals:   app.Governance.Views(),
				Entitlement: snap.Entitlement,
				EvaluatedAt: time.Now(),
			}

			if interactive && len(list.Proposals) > 0 {
				selected, err := app.Selector.SelectProposal(cmd.Context(), list.Proposals, "Select a proposal")
				if err != nil {
					return err
				}
				return printResult(cmd, app, selected, func(out io.Writer) error {
					return render.NewProposalsRenderer(out).RenderDetail(*selected, list.EvaluatedAt)
				})
			}

			return printResult(cmd, app, list, func(out io.Writer) error {
				return render.NewProposalsRenderer(out).Render(list)
			})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a proposal to inspect")

	return cmd
}
