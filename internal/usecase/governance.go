package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// Governance is the client context. It owns the session and view state and
// threads them to the gateway.
type Governance struct {
	session *SessionManager
	view    *ViewStore
	gateway *ActionGateway
	reader  ChainReader
	now     Clock
	log     *slog.Logger
}

// NewGovernance creates the client context
func NewGovernance(session *SessionManager, view *ViewStore, gateway *ActionGateway, reader ChainReader, clock Clock, log *slog.Logger) *Governance {
	if clock == nil {
		clock = SystemClock()
	}
	// the store adopts every new generation before it becomes observable, so
	// refreshes in flight for a replaced identity are discarded
	session.OnChange(view.Bind)
	return &Governance{
		session: session,
		view:    view,
		gateway: gateway,
		reader:  reader,
		now:     clock,
		log:     log,
	}
}

// WatchEvent is emitted by Watch after every applied refresh
type WatchEvent struct {
	Session  models.SessionState
	Snapshot *models.ViewSnapshot
	Views    []models.ProposalView
	Err      error
}

// Connect opens the session and performs the initial refresh
func (g *Governance) Connect(ctx context.Context) (*models.ViewSnapshot, error) {
	state, err := g.session.Connect(ctx)
	if err != nil {
		return nil, err
	}
	g.view.Bind(state)
	return g.view.Refresh(ctx, state)
}

// OpenOptions controls how a command opens the client
type OpenOptions struct {
	// LoadProposals loads the proposal list in the initial refresh
	LoadProposals bool
	// RequireWallet fails with ErrNoWalletAvailable instead of falling back
	// to a read-only view
	RequireWallet bool
}

// Open connects the wallet and refreshes. Without a wallet it refreshes a
// read-only view unless opts.RequireWallet is set.
func (g *Governance) Open(ctx context.Context, opts OpenOptions) (*models.ViewSnapshot, error) {
	if opts.LoadProposals {
		g.view.SetProposalListActive(true)
	}
	snap, err := g.Connect(ctx)
	if errors.Is(err, domain.ErrNoWalletAvailable) && !opts.RequireWallet {
		g.log.Debug("no wallet configured, continuing read-only")
		return g.Refresh(ctx)
	}
	return snap, err
}

// Views derives every loaded proposal at the current time. It returns nil
// while the stored snapshot belongs to a replaced session.
func (g *Governance) Views() []models.ProposalView {
	snap, ok := g.view.Current(g.session.State())
	if !ok {
		return nil
	}
	return DescribeSnapshot(snap, g.now())
}

// Session returns the current session
func (g *Governance) Session() models.SessionState {
	return g.session.State()
}

// Refresh re-fetches the view for the current session
func (g *Governance) Refresh(ctx context.Context) (*models.ViewSnapshot, error) {
	return g.view.Refresh(ctx, g.session.State())
}

// Proposals activates the proposal list view, reloads it, and derives every
// proposal's state at the current time.
func (g *Governance) Proposals(ctx context.Context) ([]models.ProposalView, *models.ViewSnapshot, error) {
	g.view.SetProposalListActive(true)
	snap, err := g.Refresh(ctx)
	if err != nil {
		return nil, nil, err
	}
	return DescribeSnapshot(snap, g.now()), snap, nil
}

// Describe derives the current view of one proposal
func (g *Governance) Describe(ctx context.Context, id uint64) (*models.ProposalView, error) {
	snap, ok := g.view.Current(g.session.State())
	if !ok {
		var err error
		if snap, err = g.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	if id >= snap.ProposalCount {
		return nil, domain.ErrProposalNotFound
	}
	record, ok := snap.Record(id)
	if !ok {
		fetched, err := g.reader.ProposalRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		record = *fetched
	}
	view := domain.Describe(record, snap.Entitlement, g.now())
	return &view, nil
}

// Create submits a proposal for targetItemID
func (g *Governance) Create(ctx context.Context, targetItemID *big.Int) (*models.ActionResult, error) {
	return g.gateway.Create(ctx, targetItemID)
}

// Vote casts a vote on proposal id
func (g *Governance) Vote(ctx context.Context, id uint64, choice models.VoteChoice) (*models.ActionResult, error) {
	return g.gateway.Vote(ctx, id, choice)
}

// Execute settles proposal id
func (g *Governance) Execute(ctx context.Context, id uint64) (*models.ActionResult, error) {
	return g.gateway.Execute(ctx, id)
}

// Withdraw withdraws the treasury to the owner
func (g *Governance) Withdraw(ctx context.Context) (*models.ActionResult, error) {
	return g.gateway.Withdraw(ctx)
}

// Watch refreshes on every account change and every interval (zero disables
// the ticker) until ctx is done. Refreshes for superseded sessions are
// dropped; a new account change cancels the in-flight refresh.
func (g *Governance) Watch(ctx context.Context, interval time.Duration, onEvent func(WatchEvent)) error {
	g.view.SetProposalListActive(true)

	results := make(chan WatchEvent, 1)
	cancelRefresh := context.CancelFunc(func() {})
	defer func() { cancelRefresh() }()

	start := func(state models.SessionState) {
		cancelRefresh()
		rctx, cancel := context.WithCancel(ctx)
		cancelRefresh = cancel
		go func() {
			snap, err := g.view.Refresh(rctx, state)
			event := WatchEvent{Session: state, Snapshot: snap, Err: err}
			if err == nil {
				event.Views = DescribeSnapshot(snap, g.now())
			}
			select {
			case results <- event:
			case <-ctx.Done():
			}
		}()
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	start(g.session.State())

	for {
		select {
		case <-ctx.Done():
			return nil
		case state := <-g.session.Updates():
			g.view.Bind(state)
			start(state)
		case <-tick:
			start(g.session.State())
		case event := <-results:
			if errors.Is(event.Err, domain.ErrStaleRefresh) ||
				event.Session.Generation < g.session.State().Generation {
				g.log.Debug("dropping stale watch event", "generation", event.Session.Generation)
				continue
			}
			if errors.Is(event.Err, context.Canceled) {
				continue
			}
			onEvent(event)
		}
	}
}
