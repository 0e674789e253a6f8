package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Show the DAO, NFT and marketplace addresses with explorer links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.InspectContracts.Run(cmd.Context(), usecase.InspectContractsParams{CheckCode: !skipCheck})
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func(out io.Writer) error {
				return render.NewContractsRenderer(out).Render(result)
			})
		},
	}

	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "Don't check that code is deployed at each address")

	return cmd
}
