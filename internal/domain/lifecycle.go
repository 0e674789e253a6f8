package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// Derive returns the lifecycle state of a record at now. Rules are evaluated
// in order: executed, deadline passed, otherwise active.
func Derive(record models.ProposalRecord, now time.Time) models.LifecycleState {
	if record.Executed {
		return models.LifecycleSettled
	}
	if !now.Before(record.Deadline) {
		return models.LifecycleAwaitingExecution
	}
	return models.LifecycleActive
}

// AllowedActions returns the proposal-scoped actions legal for a holder of
// entitlement tokens at now.
func AllowedActions(record models.ProposalRecord, entitlement uint64, now time.Time) []models.ActionKind {
	switch Derive(record, now) {
	case models.LifecycleActive:
		if entitlement > 0 {
			return []models.ActionKind{models.ActionVote}
		}
	case models.LifecycleAwaitingExecution:
		return []models.ActionKind{models.ActionExecute}
	}
	return nil
}

// ExpectedOutcome is advisory only. The contract purchases the target item
// when yes votes strictly exceed no votes and closes the proposal otherwise.
func ExpectedOutcome(record models.ProposalRecord) models.Outcome {
	if record.YesVotes == nil {
		return models.OutcomeClose
	}
	if record.NoVotes == nil {
		if record.YesVotes.Sign() > 0 {
			return models.OutcomePurchase
		}
		return models.OutcomeClose
	}
	if record.YesVotes.Cmp(record.NoVotes) > 0 {
		return models.OutcomePurchase
	}
	return models.OutcomeClose
}

// Describe evaluates every derived property of a record at now
func Describe(record models.ProposalRecord, entitlement uint64, now time.Time) models.ProposalView {
	return models.ProposalView{
		Record:          record,
		State:           Derive(record, now),
		Allowed:         AllowedActions(record, entitlement, now),
		ExpectedOutcome: ExpectedOutcome(record),
		EvaluatedAt:     now,
	}
}

// SameAddress compares two hex addresses ignoring letter case
func SameAddress(a, b string) bool {
	a = strings.TrimPrefix(strings.TrimPrefix(a, "0x"), "0X")
	b = strings.TrimPrefix(strings.TrimPrefix(b, "0x"), "0X")
	return a != "" && strings.EqualFold(a, b)
}

// IsOwner reports whether identity controls the DAO
func IsOwner(identity, owner common.Address) bool {
	if identity == (common.Address{}) {
		return false
	}
	return SameAddress(identity.Hex(), owner.Hex())
}
