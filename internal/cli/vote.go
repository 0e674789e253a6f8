package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/app"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// voteArgs is what the user typed for vote; nil fields are picked interactively
type voteArgs struct {
	id     *uint64
	choice *models.VoteChoice
}

func parseVoteArgs(args []string) (voteArgs, error) {
	var parsed voteArgs
	switch len(args) {
	case 2:
		id, err := parseProposalID(args[0])
		if err != nil {
			return parsed, err
		}
		choice, ok := parseVoteChoice(args[1])
		if !ok {
			return parsed, fmt.Errorf("invalid vote %q, expected yes or no", args[1])
		}
		parsed.id, parsed.choice = &id, &choice
	case 1:
		if choice, ok := parseVoteChoice(args[0]); ok {
			parsed.choice = &choice
			break
		}
		id, err := parseProposalID(args[0])
		if err != nil {
			return parsed, err
		}
		parsed.id = &id
	}
	return parsed, nil
}

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote [proposal-id] <yes|no>",
		Short: "Vote on an open proposal",
		Long: `Vote yes or no on a proposal whose deadline has not passed. Requires a
connected account holding at least one membership NFT. Without a proposal
id or a choice you are asked to pick one.`,
		Example: `  treb-dao vote 3 yes
  treb-dao vote no
  treb-dao vote`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			parsed, err := parseVoteArgs(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if _, err := app.Governance.Open(ctx, usecase.OpenOptions{RequireWallet: true, LoadProposals: parsed.id == nil}); err != nil {
				return err
			}

			var selected *models.ProposalView
			if parsed.id == nil {
				if selected, err = pickProposal(cmd, app, models.ActionVote, "Select a proposal to vote on"); err != nil {
					return err
				}
				parsed.id = &selected.Record.ID
			}

			if parsed.choice == nil {
				if selected == nil {
					if selected, err = app.Governance.Describe(ctx, *parsed.id); err != nil {
						return err
					}
				}
				choice, err := app.Selector.SelectVoteChoice(ctx, *selected)
				if err != nil {
					return err
				}
				parsed.choice = &choice
			}

			result, err := app.Governance.Vote(ctx, *parsed.id, *parsed.choice)
			if err != nil {
				return err
			}
			return printAction(cmd, app, result)
		},
	}
}

// pickProposal asks the user for one of the proposals that allow kind
func pickProposal(cmd *cobra.Command, a *app.App, kind models.ActionKind, prompt string) (*models.ProposalView, error) {
	candidates := allowing(a.Governance.Views(), kind)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no proposals available to %s", kind)
	}
	return a.Selector.SelectProposal(cmd.Context(), candidates, prompt)
}
