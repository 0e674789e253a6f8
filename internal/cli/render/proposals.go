package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// ProposalList is the proposal list as shown to one identity at one instant
type ProposalList struct {
	Proposals   []models.ProposalView `json:"proposals" yaml:"proposals"`
	Entitlement uint64                `json:"entitlement" yaml:"entitlement"`
	EvaluatedAt time.Time             `json:"evaluatedAt" yaml:"evaluatedAt"`
}

// ProposalsRenderer renders the proposal table
type ProposalsRenderer struct {
	out io.Writer
}

// NewProposalsRenderer creates a new proposals renderer
func NewProposalsRenderer(out io.Writer) *ProposalsRenderer {
	return &ProposalsRenderer{out: out}
}

// Render writes one row per proposal
func (r *ProposalsRenderer) Render(list ProposalList) error {
	if len(list.Proposals) == 0 {
		fmt.Fprintln(r.out, "No proposals yet")
		return nil
	}

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("📜 Proposals (%d)", len(list.Proposals)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, ProposalTable(list.Proposals, list.EvaluatedAt))
	return nil
}

// ProposalTable renders proposals as a borderless table
func ProposalTable(proposals []models.ProposalView, now time.Time) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box.PaddingRight = "   "
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"#", "ITEM", "YES", "NO", "STATE", "DEADLINE", "ACTIONS"})
	for _, p := range proposals {
		t.AppendRow(table.Row{
			p.Record.ID,
			p.Record.TargetItemID.String(),
			yesStyle.Sprint(p.Record.YesVotes.String()),
			noStyle.Sprint(p.Record.NoVotes.String()),
			FormatState(p.State),
			FormatDeadline(p.Record.Deadline, now),
			FormatActions(p),
		})
	}
	return t.Render()
}

// FormatActions lists the actions available on a proposal
func FormatActions(p models.ProposalView) string {
	if len(p.Allowed) == 0 {
		return "-"
	}
	labels := lo.Map(p.Allowed, func(kind models.ActionKind, _ int) string {
		if kind == models.ActionExecute {
			return string(kind) + " " + ExecuteLabel(p.ExpectedOutcome)
		}
		return string(kind)
	})
	return strings.Join(labels, ", ")
}

// RenderDetail writes one proposal with a hint for the next action
func (r *ProposalsRenderer) RenderDetail(p models.ProposalView, now time.Time) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("📜 Proposal #%d", p.Record.ID))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Item:    "), p.Record.TargetItemID.String())
	fmt.Fprintf(r.out, "%s %s yes / %s no\n", labelStyle.Sprint("Votes:   "),
		yesStyle.Sprint(p.Record.YesVotes.String()), noStyle.Sprint(p.Record.NoVotes.String()))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("State:   "), FormatState(p.State))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Deadline:"), FormatDeadline(p.Record.Deadline, now))

	switch {
	case lo.Contains(p.Allowed, models.ActionVote):
		fmt.Fprintf(r.out, "\nVote with: treb-dao vote %d <yes|no>\n", p.Record.ID)
	case lo.Contains(p.Allowed, models.ActionExecute):
		fmt.Fprintf(r.out, "\nExecute %s with: treb-dao execute %d\n", ExecuteLabel(p.ExpectedOutcome), p.Record.ID)
	}
	return nil
}
