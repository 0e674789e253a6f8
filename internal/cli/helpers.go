package cli

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/app"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// printResult writes v in the configured structured format, or calls text
// for text output
func printResult(cmd *cobra.Command, a *app.App, v any, text func(out io.Writer) error) error {
	out := cmd.OutOrStdout()
	handled, err := render.WriteStructured(out, a.Config.Output, v)
	if handled || err != nil {
		return err
	}
	return text(out)
}

// printAction renders a settled action
func printAction(cmd *cobra.Command, a *app.App, result *models.ActionResult) error {
	return printResult(cmd, a, result, func(out io.Writer) error {
		return render.NewActionRenderer(out, explorerURL(a)).Render(result)
	})
}

func explorerURL(a *app.App) string {
	if a.Config.Network == nil {
		return ""
	}
	return a.Config.Network.ExplorerURL
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", s)
	}
	return id, nil
}

func parseTargetItemID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 0)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid target item id %q", s)
	}
	return id, nil
}

func parseVoteChoice(s string) (models.VoteChoice, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "yay":
		return models.VoteYes, true
	case "no", "n", "nay":
		return models.VoteNo, true
	}
	return 0, false
}

// allowing filters views down to those that allow kind
func allowing(views []models.ProposalView, kind models.ActionKind) []models.ProposalView {
	return lo.Filter(views, func(v models.ProposalView, _ int) bool {
		return lo.Contains(v.Allowed, kind)
	})
}
