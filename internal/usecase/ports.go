package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// WalletProvider is the wallet/session collaborator
type WalletProvider interface {
	// RequestAccounts returns the accounts the wallet exposes, active one first
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Signer returns a signing capability bound to account
	Signer(account common.Address) (models.Signer, error)
	// SubscribeAccounts delivers the full account list on every change. An
	// empty list means the wallet disconnected. The channel closes when ctx
	// is done.
	SubscribeAccounts(ctx context.Context) (<-chan []common.Address, error)
}

// ChainReader is the read-only query façade over the DAO and NFT contracts.
// Every method is idempotent; failures are *domain.RemoteQueryError.
type ChainReader interface {
	ProposalCount(ctx context.Context) (uint64, error)
	Owner(ctx context.Context) (common.Address, error)
	TreasuryBalance(ctx context.Context) (*big.Int, error)
	EntitlementBalance(ctx context.Context, identity common.Address) (uint64, error)
	ProposalRecord(ctx context.Context, id uint64) (*models.ProposalRecord, error)
}

// ChainWriter submits state-changing requests signed by signer
type ChainWriter interface {
	SubmitCreate(ctx context.Context, signer models.Signer, targetItemID *big.Int) (PendingAction, error)
	SubmitVote(ctx context.Context, signer models.Signer, id uint64, choice models.VoteChoice) (PendingAction, error)
	SubmitExecute(ctx context.Context, signer models.Signer, id uint64) (PendingAction, error)
	SubmitWithdraw(ctx context.Context, signer models.Signer) (PendingAction, error)
}

// PendingAction is the handle of a submitted request
type PendingAction interface {
	// ID is a client-side correlation id for logs
	ID() string
	TxHash() common.Hash
	// Wait blocks until the request settles. A reverted or dropped request
	// returns *domain.ActionFailedError.
	Wait(ctx context.Context) (*models.Settlement, error)
}

// ProposalSelector handles interactive selection of proposals
type ProposalSelector interface {
	SelectProposal(ctx context.Context, proposals []models.ProposalView, prompt string) (*models.ProposalView, error)
	SelectVoteChoice(ctx context.Context, proposal models.ProposalView) (models.VoteChoice, error)
}

// Metrics records action and refresh outcomes
type Metrics interface {
	ObserveAction(kind models.ActionKind, outcome string, duration time.Duration)
	ObserveRefresh(outcome string, duration time.Duration)
	SetSnapshot(snapshot *models.ViewSnapshot)
}

// NopMetrics discards all observations
type NopMetrics struct{}

func (NopMetrics) ObserveAction(models.ActionKind, string, time.Duration) {}
func (NopMetrics) ObserveRefresh(string, time.Duration)                   {}
func (NopMetrics) SetSnapshot(*models.ViewSnapshot)                       {}

// Clock returns the current time. LifecycleState must be derived from a
// fresh sample on every evaluation.
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() Clock {
	return time.Now
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Action stages reported to the progress sink
const (
	StageChecking   = "checking"
	StageSubmitting = "submitting"
	StageAwaiting   = "awaiting"
	StageRefreshing = "refreshing"
	StageComplete   = "complete"
	StageFailed     = "failed"
	StageLoading    = "loading"
)
