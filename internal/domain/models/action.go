package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// ActionKind enumerates the state-changing requests the client can submit
type ActionKind string

const (
	ActionCreate   ActionKind = "create"
	ActionVote     ActionKind = "vote"
	ActionExecute  ActionKind = "execute"
	ActionWithdraw ActionKind = "withdraw"
)

// Settlement is the confirmed result of a submitted action
type Settlement struct {
	RequestID   string      `json:"requestId" yaml:"requestId"`
	TxHash      common.Hash `json:"txHash" yaml:"txHash"`
	BlockNumber uint64      `json:"blockNumber" yaml:"blockNumber"`
	GasUsed     uint64      `json:"gasUsed" yaml:"gasUsed"`
}

// ActionResult is returned by the action gateway once an action has settled
type ActionResult struct {
	Kind       ActionKind    `json:"kind" yaml:"kind"`
	ProposalID *uint64       `json:"proposalId,omitempty" yaml:"proposalId,omitempty"`
	Settlement Settlement    `json:"settlement" yaml:"settlement"`
	Snapshot   *ViewSnapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	// RefreshErr is set when the action settled but the follow-up refresh
	// failed. The action itself is complete.
	RefreshErr error `json:"-" yaml:"-"`
}
