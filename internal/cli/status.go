package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the connected account, its NFTs and the treasury",
		Long: `Show the connected account, how many membership NFTs it holds, the DAO
treasury balance and the number of proposals. Without a wallet the
account section is skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			snap, err := app.Governance.Open(cmd.Context(), usecase.OpenOptions{})
			if err != nil {
				return err
			}

			status := render.NewStatus(app.Config.Network, app.Governance.Session(), snap)
			return printResult(cmd, app, status, func(out io.Writer) error {
				return render.NewStatusRenderer(out).Render(status)
			})
		},
	}
}
