package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// SessionSource provides the current session
type SessionSource interface {
	State() models.SessionState
}

// ActionGateway gates and submits the four action kinds. Every action runs
// the same protocol: local legality check, submit, await settlement, full
// refresh. At most one action is in flight per gateway.
type ActionGateway struct {
	session SessionSource
	view    *ViewStore
	reader  ChainReader
	writer  ChainWriter
	sink    ProgressSink
	metrics Metrics
	now     Clock
	log     *slog.Logger

	busy atomic.Bool
}

// NewActionGateway creates a new action gateway
func NewActionGateway(
	session SessionSource,
	view *ViewStore,
	reader ChainReader,
	writer ChainWriter,
	sink ProgressSink,
	metrics Metrics,
	clock Clock,
	log *slog.Logger,
) *ActionGateway {
	if sink == nil {
		sink = NopProgress{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &ActionGateway{
		session: session,
		view:    view,
		reader:  reader,
		writer:  writer,
		sink:    sink,
		metrics: metrics,
		now:     clock,
		log:     log.With("component", "gateway"),
	}
}

// Busy reports whether an action is in flight
func (g *ActionGateway) Busy() bool {
	return g.busy.Load()
}

// Create submits a new proposal to buy targetItemID
func (g *ActionGateway) Create(ctx context.Context, targetItemID *big.Int) (*models.ActionResult, error) {
	gate := func(ctx context.Context, _ models.SessionState, snap *models.ViewSnapshot) error {
		if snap.Entitlement == 0 {
			return domain.ErrEntitlementRequired
		}
		if targetItemID == nil || targetItemID.Sign() < 0 {
			return domain.ErrTargetItemRequired
		}
		return nil
	}
	submit := func(ctx context.Context, signer models.Signer) (PendingAction, error) {
		return g.writer.SubmitCreate(ctx, signer, targetItemID)
	}
	return g.run(ctx, models.ActionCreate, nil, gate, submit)
}

// Vote casts choice on proposal id
func (g *ActionGateway) Vote(ctx context.Context, id uint64, choice models.VoteChoice) (*models.ActionResult, error) {
	gate := func(ctx context.Context, _ models.SessionState, snap *models.ViewSnapshot) error {
		if snap.Entitlement == 0 {
			return domain.ErrEntitlementRequired
		}
		record, err := g.record(ctx, snap, id)
		if err != nil {
			return err
		}
		if domain.Derive(*record, g.now()) != models.LifecycleActive {
			return domain.ErrVotingClosed
		}
		return nil
	}
	submit := func(ctx context.Context, signer models.Signer) (PendingAction, error) {
		return g.writer.SubmitVote(ctx, signer, id, choice)
	}
	return g.run(ctx, models.ActionVote, &id, gate, submit)
}

// Execute settles proposal id after its deadline. The contract decides the
// outcome from the tallies.
func (g *ActionGateway) Execute(ctx context.Context, id uint64) (*models.ActionResult, error) {
	gate := func(ctx context.Context, _ models.SessionState, snap *models.ViewSnapshot) error {
		record, err := g.record(ctx, snap, id)
		if err != nil {
			return err
		}
		switch domain.Derive(*record, g.now()) {
		case models.LifecycleActive:
			return domain.ErrVotingStillOpen
		case models.LifecycleSettled:
			return domain.ErrProposalSettled
		}
		return nil
	}
	submit := func(ctx context.Context, signer models.Signer) (PendingAction, error) {
		return g.writer.SubmitExecute(ctx, signer, id)
	}
	return g.run(ctx, models.ActionExecute, &id, gate, submit)
}

// Withdraw moves the treasury to the owner
func (g *ActionGateway) Withdraw(ctx context.Context) (*models.ActionResult, error) {
	gate := func(ctx context.Context, session models.SessionState, snap *models.ViewSnapshot) error {
		if !domain.IsOwner(session.Identity, snap.Owner) {
			return domain.ErrNotOwner
		}
		return nil
	}
	submit := func(ctx context.Context, signer models.Signer) (PendingAction, error) {
		return g.writer.SubmitWithdraw(ctx, signer)
	}
	return g.run(ctx, models.ActionWithdraw, nil, gate, submit)
}

type gateFunc func(ctx context.Context, session models.SessionState, snap *models.ViewSnapshot) error

type submitFunc func(ctx context.Context, signer models.Signer) (PendingAction, error)

func (g *ActionGateway) run(ctx context.Context, kind models.ActionKind, proposalID *uint64, gate gateFunc, submit submitFunc) (_ *models.ActionResult, err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrActionInProgress
	}
	defer g.busy.Store(false)

	start := time.Now()
	log := g.log.With("action", kind)
	if proposalID != nil {
		log = log.With("proposal", *proposalID)
	}

	session := g.session.State()
	if !session.Connected() || session.Signer == nil {
		g.metrics.ObserveAction(kind, "rejected", time.Since(start))
		return nil, domain.ErrNotConnected
	}

	defer func() {
		if err != nil {
			g.sink.OnProgress(ctx, ProgressEvent{
				Stage:   StageFailed,
				Message: fmt.Sprintf("%s failed", kind),
			})
		}
	}()

	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageChecking,
		Message: fmt.Sprintf("Checking %s", kind),
		Spinner: true,
	})

	snap, err := g.snapshotFor(ctx, session)
	if err != nil {
		g.metrics.ObserveAction(kind, "error", time.Since(start))
		return nil, err
	}

	if err := gate(ctx, session, snap); err != nil {
		g.metrics.ObserveAction(kind, "rejected", time.Since(start))
		log.Info("action rejected", "reason", err)
		return nil, err
	}

	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Submitting %s", kind),
		Spinner: true,
	})

	pending, err := submit(ctx, session.Signer)
	if err != nil {
		g.metrics.ObserveAction(kind, "failed", time.Since(start))
		return nil, g.failed(log, kind, common.Hash{}, err)
	}
	log = log.With("request", pending.ID(), "tx", pending.TxHash().Hex())
	log.Info("action submitted")

	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageAwaiting,
		Message: fmt.Sprintf("Waiting for %s", pending.TxHash().Hex()),
		Spinner: true,
	})

	settlement, err := pending.Wait(ctx)
	if err != nil {
		g.metrics.ObserveAction(kind, "failed", time.Since(start))
		return nil, g.failed(log, kind, pending.TxHash(), err)
	}
	log.Info("action settled", "block", settlement.BlockNumber, "gas", settlement.GasUsed)

	result := &models.ActionResult{
		Kind:       kind,
		ProposalID: proposalID,
		Settlement: *settlement,
	}

	// Settlement is complete here, so the refresh can't observe pre-settlement state
	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageRefreshing,
		Message: "Refreshing view",
		Spinner: true,
	})

	refreshed, err := g.view.Refresh(ctx, g.session.State())
	if err != nil {
		log.Warn("refresh after settlement failed", "error", err)
		result.RefreshErr = err
	} else {
		result.Snapshot = refreshed
	}

	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageComplete,
		Message: fmt.Sprintf("%s settled", kind),
	})
	g.metrics.ObserveAction(kind, "ok", time.Since(start))

	return result, nil
}

// snapshotFor returns the snapshot of session, refreshing it when the store
// holds none for this generation.
func (g *ActionGateway) snapshotFor(ctx context.Context, session models.SessionState) (*models.ViewSnapshot, error) {
	if snap, ok := g.view.Current(session); ok {
		return snap, nil
	}
	g.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading DAO state",
		Spinner: true,
	})
	return g.view.Refresh(ctx, session)
}

// record returns proposal id from the snapshot, or fetches it when the list
// view isn't loaded.
func (g *ActionGateway) record(ctx context.Context, snap *models.ViewSnapshot, id uint64) (*models.ProposalRecord, error) {
	if id >= snap.ProposalCount {
		return nil, fmt.Errorf("%w: %d", domain.ErrProposalNotFound, id)
	}
	if record, ok := snap.Record(id); ok {
		return &record, nil
	}
	return g.reader.ProposalRecord(ctx, id)
}

func (g *ActionGateway) failed(log *slog.Logger, kind models.ActionKind, txHash common.Hash, err error) error {
	var failed *domain.ActionFailedError
	if errors.As(err, &failed) {
		if failed.Action == "" {
			failed.Action = kind
		}
		if failed.TxHash == (common.Hash{}) {
			failed.TxHash = txHash
		}
	} else {
		failed = &domain.ActionFailedError{Action: kind, TxHash: txHash, Err: err}
	}
	log.Error("action failed", "error", failed)
	return failed
}
