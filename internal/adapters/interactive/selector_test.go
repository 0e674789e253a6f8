package interactive

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

func view(id uint64, state models.LifecycleState, deadline time.Duration) models.ProposalView {
	now := time.Unix(1_700_000_000, 0)
	return models.ProposalView{
		Record: models.ProposalRecord{
			ID:           id,
			TargetItemID: big.NewInt(int64(id) + 40),
			Deadline:     now.Add(deadline),
			YesVotes:     big.NewInt(2),
			NoVotes:      big.NewInt(1),
		},
		State:       state,
		EvaluatedAt: now,
	}
}

func TestFormatProposalOptions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	options := formatProposalOptions([]models.ProposalView{
		view(0, models.LifecycleActive, 90*time.Second),
		view(1, models.LifecycleAwaitingExecution, -time.Hour),
	})

	require.Len(t, options, 2)
	assert.Equal(t, "#0 item 40 [active] yes 2 / no 1, ends in 1m30s", options[0])
	assert.Contains(t, options[1], "#1 item 41 [awaiting execution] yes 2 / no 1, ended ")
}

func TestFuzzySearch(t *testing.T) {
	items := []string{"#0 item 40 [active]", "#1 item 41 [settled]"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 1))
	assert.True(t, search("ACTIVE", 0))
	assert.False(t, search("active", 1))
	assert.True(t, search("stld", 1))
}

func TestSelectorAdapter_NonInteractive(t *testing.T) {
	s, err := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	require.NoError(t, err)

	_, err = s.SelectProposal(context.Background(), []models.ProposalView{view(0, models.LifecycleActive, time.Hour)}, "Select")
	assert.ErrorContains(t, err, "non-interactive")

	_, err = s.SelectVoteChoice(context.Background(), view(0, models.LifecycleActive, time.Hour))
	assert.ErrorContains(t, err, "non-interactive")
}

func TestSelectorAdapter_SingleProposal(t *testing.T) {
	s, err := NewSelectorAdapter(&config.RuntimeConfig{})
	require.NoError(t, err)

	only := view(4, models.LifecycleActive, time.Hour)
	got, err := s.SelectProposal(context.Background(), []models.ProposalView{only}, "Select")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got.Record.ID)

	_, err = s.SelectProposal(context.Background(), nil, "Select")
	assert.Error(t, err)
}
