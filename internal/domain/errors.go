package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// Sentinel errors for session and gating failures
var (
	// ErrNoWalletAvailable is returned when no wallet is configured
	ErrNoWalletAvailable = errors.New("no wallet available")

	// ErrNoAccounts is returned when the wallet exposes no accounts
	ErrNoAccounts = errors.New("wallet has no accounts")

	// ErrNotConnected is returned when a write action is attempted without a signer
	ErrNotConnected = errors.New("no connected account")

	// ErrEntitlementRequired is returned when the identity holds no membership NFT
	ErrEntitlementRequired = errors.New("membership NFT required")

	// ErrTargetItemRequired is returned when a proposal is created without a target item
	ErrTargetItemRequired = errors.New("target item id required")

	// ErrVotingClosed is returned when voting on a proposal past its deadline
	ErrVotingClosed = errors.New("voting closed")

	// ErrVotingStillOpen is returned when executing a proposal before its deadline
	ErrVotingStillOpen = errors.New("voting still open")

	// ErrProposalSettled is returned when acting on an executed proposal
	ErrProposalSettled = errors.New("proposal already executed")

	// ErrProposalNotFound is returned for ids outside [0, ProposalCount)
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrNotOwner is returned when a non-owner attempts a withdrawal
	ErrNotOwner = errors.New("only the DAO owner can withdraw")

	// ErrActionInProgress is returned while another action is in flight
	ErrActionInProgress = errors.New("another action is in progress")

	// ErrStaleRefresh is returned when a refresh completed for a superseded session
	ErrStaleRefresh = errors.New("refresh superseded by account change")
)

// RemoteQueryError wraps a failed read against the contract backend
type RemoteQueryError struct {
	Query string
	Err   error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("query %s failed: %v", e.Query, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// ActionFailedError is returned when a submitted action did not settle successfully
type ActionFailedError struct {
	Action models.ActionKind
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *ActionFailedError) Error() string {
	msg := fmt.Sprintf("%s action failed", e.Action)
	if e.TxHash != (common.Hash{}) {
		msg += fmt.Sprintf(" (tx %s)", e.TxHash.Hex())
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ActionFailedError) Unwrap() error {
	return e.Err
}

// IsGateRejection reports whether err is a local legality rejection that never
// reached the backend.
func IsGateRejection(err error) bool {
	for _, target := range []error{
		ErrEntitlementRequired,
		ErrTargetItemRequired,
		ErrVotingClosed,
		ErrVotingStillOpen,
		ErrProposalSettled,
		ErrProposalNotFound,
		ErrNotOwner,
		ErrNotConnected,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
