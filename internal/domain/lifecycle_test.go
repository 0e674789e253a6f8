package domain

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

func record(deadline time.Time, executed bool, yes, no int64) models.ProposalRecord {
	return models.ProposalRecord{
		ID:           0,
		TargetItemID: big.NewInt(7),
		Deadline:     deadline,
		YesVotes:     big.NewInt(yes),
		NoVotes:      big.NewInt(no),
		Executed:     executed,
	}
}

func TestDerive(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name     string
		record   models.ProposalRecord
		expected models.LifecycleState
	}{
		{
			name:     "deadline in the future",
			record:   record(now.Add(time.Minute), false, 0, 0),
			expected: models.LifecycleActive,
		},
		{
			name:     "deadline one second ago",
			record:   record(now.Add(-time.Second), false, 0, 0),
			expected: models.LifecycleAwaitingExecution,
		},
		{
			name:     "deadline exactly now",
			record:   record(now, false, 0, 0),
			expected: models.LifecycleAwaitingExecution,
		},
		{
			name:     "executed with future deadline",
			record:   record(now.Add(time.Hour), true, 0, 0),
			expected: models.LifecycleSettled,
		},
		{
			name:     "executed with past deadline",
			record:   record(now.Add(-time.Hour), true, 3, 1),
			expected: models.LifecycleSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Derive(tt.record, now))
		})
	}
}

func TestDerive_DependsOnlyOnDeadlineExecutedAndNow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Unix(1_700_000_000, 0)

	for i := 0; i < 500; i++ {
		deadline := base.Add(time.Duration(rng.Intn(600)-300) * time.Second)
		now := base.Add(time.Duration(rng.Intn(600)-300) * time.Second)
		executed := rng.Intn(2) == 0

		r := record(deadline, executed, rng.Int63n(100), rng.Int63n(100))
		other := record(deadline, executed, rng.Int63n(100), rng.Int63n(100))
		other.ID = uint64(rng.Intn(1000))
		other.TargetItemID = big.NewInt(rng.Int63())

		var expected models.LifecycleState
		switch {
		case executed:
			expected = models.LifecycleSettled
		case !now.Before(deadline):
			expected = models.LifecycleAwaitingExecution
		default:
			expected = models.LifecycleActive
		}

		first := Derive(r, now)
		assert.Equal(t, expected, first, "iteration %d", i)
		// tallies, ids and call history don't matter
		assert.Equal(t, first, Derive(other, now), "iteration %d", i)
		assert.Equal(t, first, Derive(r, now), "iteration %d", i)
	}
}

func TestDerive_PassageOfTime(t *testing.T) {
	deadline := time.Unix(1_700_000_000, 0)
	r := record(deadline, false, 1, 0)

	assert.Equal(t, models.LifecycleActive, Derive(r, deadline.Add(-time.Nanosecond)))
	assert.Equal(t, models.LifecycleAwaitingExecution, Derive(r, deadline))
}

func TestAllowedActions(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name        string
		record      models.ProposalRecord
		entitlement uint64
		expected    []models.ActionKind
	}{
		{"active with entitlement", record(now.Add(time.Minute), false, 0, 0), 1, []models.ActionKind{models.ActionVote}},
		{"active without entitlement", record(now.Add(time.Minute), false, 0, 0), 0, nil},
		{"awaiting execution", record(now.Add(-time.Second), false, 0, 0), 0, []models.ActionKind{models.ActionExecute}},
		{"settled", record(now.Add(-time.Second), true, 0, 0), 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AllowedActions(tt.record, tt.entitlement, now))
		})
	}
}

func TestExpectedOutcome(t *testing.T) {
	now := time.Now()
	assert.Equal(t, models.OutcomePurchase, ExpectedOutcome(record(now, false, 2, 1)))
	assert.Equal(t, models.OutcomeClose, ExpectedOutcome(record(now, false, 1, 1)))
	assert.Equal(t, models.OutcomeClose, ExpectedOutcome(record(now, false, 0, 3)))
	assert.Equal(t, models.OutcomeClose, ExpectedOutcome(models.ProposalRecord{}))
}

func TestDescribe(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	view := Describe(record(now.Add(-time.Second), false, 4, 1), 1, now)

	assert.Equal(t, models.LifecycleAwaitingExecution, view.State)
	assert.Equal(t, []models.ActionKind{models.ActionExecute}, view.Allowed)
	assert.Equal(t, models.OutcomePurchase, view.ExpectedOutcome)
	assert.Equal(t, now, view.EvaluatedAt)
}

func TestSameAddress(t *testing.T) {
	checksummed := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	assert.True(t, SameAddress(checksummed, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, SameAddress(checksummed, "0X5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.False(t, SameAddress(checksummed, "0x0000000000000000000000000000000000000001"))
	assert.False(t, SameAddress("", ""))
}

func TestIsOwner(t *testing.T) {
	owner := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

	assert.True(t, IsOwner(common.HexToAddress("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"), owner))
	assert.False(t, IsOwner(common.Address{}, common.Address{}))
	assert.False(t, IsOwner(common.HexToAddress("0x01"), owner))
}

func TestErrors(t *testing.T) {
	cause := errors.New("execution reverted")
	failed := &ActionFailedError{
		Action: models.ActionExecute,
		TxHash: common.HexToHash("0xabc"),
		Reason: "PROPOSAL_ALREADY_EXECUTED",
		Err:    cause,
	}

	assert.ErrorIs(t, failed, cause)
	assert.Contains(t, failed.Error(), "execute action failed")
	assert.Contains(t, failed.Error(), "PROPOSAL_ALREADY_EXECUTED")

	query := &RemoteQueryError{Query: "owner", Err: cause}
	assert.ErrorIs(t, fmt.Errorf("refresh: %w", query), cause)

	assert.True(t, IsGateRejection(fmt.Errorf("vote 3: %w", ErrVotingClosed)))
	assert.False(t, IsGateRejection(failed))
}
