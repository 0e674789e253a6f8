package interactive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) (*SelectorAdapter, error) {
	return &SelectorAdapter{config: cfg}, nil
}

// SelectProposal selects a proposal from a list
func (s *SelectorAdapter) SelectProposal(ctx context.Context, proposals []models.ProposalView, prompt string) (*models.ProposalView, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode, pass a proposal id")
	}

	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals to select from")
	}

	// If only one match, return it directly
	if len(proposals) == 1 {
		return &proposals[0], nil
	}

	options := formatProposalOptions(proposals)

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         selectTemplates(),
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &proposals[index], nil
}

// SelectVoteChoice asks for YES or NO
func (s *SelectorAdapter) SelectVoteChoice(ctx context.Context, proposal models.ProposalView) (models.VoteChoice, error) {
	if s.config.NonInteractive {
		return 0, fmt.Errorf("interactive selection not available in non-interactive mode, pass yes or no")
	}

	promptSelect := promptui.Select{
		Label:     fmt.Sprintf("Vote on proposal #%d", proposal.Record.ID),
		Items:     []string{"YES", "NO"},
		Templates: selectTemplates(),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	if index == 0 {
		return models.VoteYes, nil
	}
	return models.VoteNo, nil
}

func selectTemplates() *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}
}

// formatProposalOptions creates display strings for proposal selection
func formatProposalOptions(proposals []models.ProposalView) []string {
	options := make([]string, len(proposals))
	for i, p := range proposals {
		// Format as "#id item N [state] yes/no, deadline"
		id := color.New(color.FgWhite, color.Bold).Sprintf("#%d", p.Record.ID)
		state := stateColor(p.State).Sprintf("[%s]", strings.ReplaceAll(string(p.State), "_", " "))

		options[i] = fmt.Sprintf("%s item %s %s yes %s / no %s, %s",
			id,
			p.Record.TargetItemID,
			state,
			p.Record.YesVotes,
			p.Record.NoVotes,
			deadlineLabel(p),
		)
	}
	return options
}

func stateColor(state models.LifecycleState) *color.Color {
	switch state {
	case models.LifecycleActive:
		return color.New(color.FgGreen)
	case models.LifecycleAwaitingExecution:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func deadlineLabel(p models.ProposalView) string {
	left := p.Record.Deadline.Sub(p.EvaluatedAt)
	if left <= 0 {
		return "ended " + p.Record.Deadline.Local().Format(time.DateTime)
	}
	return "ends in " + left.Round(time.Second).String()
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ProposalSelector = (*SelectorAdapter)(nil)
