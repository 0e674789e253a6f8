package models

import (
	"math/big"
	"time"
)

// LifecycleState is the client-side status of a proposal. It is derived from
// the record and the current time and is never stored on chain.
type LifecycleState string

const (
	LifecycleActive            LifecycleState = "active"
	LifecycleAwaitingExecution LifecycleState = "awaiting_execution"
	LifecycleSettled           LifecycleState = "settled"
)

// VoteChoice mirrors the contract's Vote enum (YAY = 0, NAY = 1)
type VoteChoice uint8

const (
	VoteYes VoteChoice = 0
	VoteNo  VoteChoice = 1
)

func (c VoteChoice) String() string {
	if c == VoteYes {
		return "yes"
	}
	return "no"
}

// Outcome is the advisory result of executing a proposal. The contract decides
// the real outcome from the tallies at execution time.
type Outcome string

const (
	OutcomePurchase Outcome = "purchase"
	OutcomeClose    Outcome = "close"
)

// ProposalRecord is a snapshot of one entry of the DAO's proposals mapping
type ProposalRecord struct {
	ID           uint64    `json:"id" yaml:"id"`
	TargetItemID *big.Int  `json:"targetItemId" yaml:"targetItemId"`
	Deadline     time.Time `json:"deadline" yaml:"deadline"`
	YesVotes     *big.Int  `json:"yesVotes" yaml:"yesVotes"`
	NoVotes      *big.Int  `json:"noVotes" yaml:"noVotes"`
	Executed     bool      `json:"executed" yaml:"executed"`
}

// ProposalView is a record together with everything derived from it at a
// single instant.
type ProposalView struct {
	Record          ProposalRecord `json:"record" yaml:"record"`
	State           LifecycleState `json:"state" yaml:"state"`
	Allowed         []ActionKind   `json:"allowed" yaml:"allowed"`
	ExpectedOutcome Outcome        `json:"expectedOutcome" yaml:"expectedOutcome"`
	EvaluatedAt     time.Time      `json:"evaluatedAt" yaml:"evaluatedAt"`
}
