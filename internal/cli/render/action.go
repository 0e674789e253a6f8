package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// ActionRenderer renders the result of a settled action
type ActionRenderer struct {
	out      io.Writer
	explorer string
}

// NewActionRenderer creates a new action renderer. explorer may be empty.
func NewActionRenderer(out io.Writer, explorer string) *ActionRenderer {
	return &ActionRenderer{out: out, explorer: explorer}
}

// Render writes the confirmation, the settlement and the refreshed totals
func (r *ActionRenderer) Render(result *models.ActionResult) error {
	fmt.Fprintln(r.out, FormatSuccess(actionHeadline(result)))

	s := result.Settlement
	fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Tx:   "), s.TxHash.Hex())
	fmt.Fprintf(r.out, "   %s %d (gas used %d)\n", labelStyle.Sprint("Block:"), s.BlockNumber, s.GasUsed)
	if link := usecase.TxURL(r.explorer, s.TxHash); link != "" {
		fmt.Fprintf(r.out, "   %s %s\n", labelStyle.Sprint("Link: "), linkStyle.Sprint(link))
	}

	if result.RefreshErr != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Action settled but the view could not be refreshed: %v", result.RefreshErr)))
		return nil
	}

	if snap := result.Snapshot; snap != nil && result.ProposalID != nil {
		if record, ok := snap.Record(*result.ProposalID); ok {
			fmt.Fprintf(r.out, "   %s %s yes / %s no\n", labelStyle.Sprint("Votes:"),
				yesStyle.Sprint(record.YesVotes.String()), noStyle.Sprint(record.NoVotes.String()))
		}
	}
	if snap := result.Snapshot; snap != nil && result.Kind == models.ActionWithdraw {
		fmt.Fprintf(r.out, "   %s %s ETH\n", labelStyle.Sprint("Treasury:"), FormatEther(snap.Treasury))
	}
	return nil
}

func actionHeadline(result *models.ActionResult) string {
	switch result.Kind {
	case models.ActionCreate:
		if result.Snapshot != nil && result.Snapshot.ProposalCount > 0 {
			return fmt.Sprintf("Proposal #%d created", result.Snapshot.ProposalCount-1)
		}
		return "Proposal created"
	case models.ActionVote:
		return fmt.Sprintf("Vote recorded on proposal #%d", *result.ProposalID)
	case models.ActionExecute:
		return fmt.Sprintf("Proposal #%d executed", *result.ProposalID)
	case models.ActionWithdraw:
		return "Treasury withdrawn to owner"
	default:
		return string(result.Kind) + " settled"
	}
}
