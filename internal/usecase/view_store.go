package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

const defaultFetchConcurrency = 8

// ViewStore caches the latest refreshed snapshot. Every refresh is a full
// re-fetch and is all-or-nothing: if any query fails the previous snapshot
// stays in place.
type ViewStore struct {
	reader      ChainReader
	metrics     Metrics
	log         *slog.Logger
	concurrency int

	mu         sync.RWMutex
	snapshot   *models.ViewSnapshot
	generation uint64
	listActive bool
}

// NewViewStore creates a new view store
func NewViewStore(reader ChainReader, metrics Metrics, cfg *config.RuntimeConfig, log *slog.Logger) *ViewStore {
	concurrency := defaultFetchConcurrency
	if cfg != nil && cfg.FetchConcurrency > 0 {
		concurrency = cfg.FetchConcurrency
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ViewStore{
		reader:      reader,
		metrics:     metrics,
		log:         log.With("component", "view"),
		concurrency: concurrency,
	}
}

// Bind adopts a session generation. Refreshes started for older generations
// are discarded when they complete.
func (s *ViewStore) Bind(session models.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.Generation > s.generation {
		s.generation = session.Generation
	}
}

// SetProposalListActive toggles whether refreshes also load every proposal
func (s *ViewStore) SetProposalListActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listActive = active
}

// ProposalListActive reports whether the proposal list view is active
func (s *ViewStore) ProposalListActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActive
}

// Snapshot returns a copy of the latest snapshot, or nil before the first refresh
func (s *ViewStore) Snapshot() *models.ViewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Current returns the snapshot only if it was refreshed for session
func (s *ViewStore) Current(session models.SessionState) (*models.ViewSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil || s.snapshot.Generation != session.Generation {
		return nil, false
	}
	return s.snapshot.Clone(), true
}

// ProposalViews derives lifecycle state for every loaded proposal at now
func (s *ViewStore) ProposalViews(now time.Time) []models.ProposalView {
	return DescribeSnapshot(s.Snapshot(), now)
}

// DescribeSnapshot derives every proposal loaded in snap at now, using the
// entitlement captured in the same snapshot.
func DescribeSnapshot(snap *models.ViewSnapshot, now time.Time) []models.ProposalView {
	if snap == nil || !snap.ProposalsLoaded {
		return nil
	}
	return lo.Map(snap.Proposals, func(record models.ProposalRecord, _ int) models.ProposalView {
		return domain.Describe(record, snap.Entitlement, now)
	})
}

// Refresh re-fetches the snapshot for session. It returns ErrStaleRefresh,
// leaving the store untouched, when session was superseded before the
// results arrived.
func (s *ViewStore) Refresh(ctx context.Context, session models.SessionState) (*models.ViewSnapshot, error) {
	start := time.Now()

	s.mu.Lock()
	if session.Generation < s.generation {
		s.mu.Unlock()
		return nil, domain.ErrStaleRefresh
	}
	s.generation = session.Generation
	listActive := s.listActive
	s.mu.Unlock()

	next, err := s.fetch(ctx, session, listActive)
	if err != nil {
		s.metrics.ObserveRefresh("error", time.Since(start))
		s.log.Error("refresh failed", "generation", session.Generation, "error", err)
		return nil, err
	}

	s.mu.Lock()
	if session.Generation != s.generation {
		s.mu.Unlock()
		s.metrics.ObserveRefresh("stale", time.Since(start))
		s.log.Debug("discarding stale refresh", "generation", session.Generation)
		return nil, domain.ErrStaleRefresh
	}
	s.snapshot = next
	s.mu.Unlock()

	s.metrics.ObserveRefresh("ok", time.Since(start))
	s.metrics.SetSnapshot(next)
	s.log.Debug("refreshed",
		"generation", next.Generation,
		"proposals", next.ProposalCount,
		"entitlement", next.Entitlement,
		"list", next.ProposalsLoaded,
	)
	return next.Clone(), nil
}

// fetch issues the scalar queries concurrently and joins them, then loads
// the proposal list if requested.
func (s *ViewStore) fetch(ctx context.Context, session models.SessionState, listActive bool) (*models.ViewSnapshot, error) {
	var (
		count       uint64
		owner       common.Address
		treasury    *big.Int
		entitlement uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		count, err = s.reader.ProposalCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		owner, err = s.reader.Owner(gctx)
		return err
	})
	g.Go(func() (err error) {
		treasury, err = s.reader.TreasuryBalance(gctx)
		return err
	})
	if session.Connected() {
		g.Go(func() (err error) {
			entitlement, err = s.reader.EntitlementBalance(gctx, session.Identity)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	next := &models.ViewSnapshot{
		Generation:       session.Generation,
		Identity:         session.Identity,
		ProposalCount:    count,
		Owner:            owner,
		Treasury:         treasury,
		Entitlement:      entitlement,
		EntitlementKnown: session.Connected(),
	}

	if listActive {
		records, err := s.fetchProposals(ctx, count)
		if err != nil {
			return nil, err
		}
		next.Proposals = records
		next.ProposalsLoaded = true
	}

	return next, nil
}

// fetchProposals loads ids [0, count) with bounded concurrency
func (s *ViewStore) fetchProposals(ctx context.Context, count uint64) ([]models.ProposalRecord, error) {
	records := make([]models.ProposalRecord, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for id := uint64(0); id < count; id++ {
		g.Go(func() error {
			record, err := s.reader.ProposalRecord(gctx, id)
			if err != nil {
				return err
			}
			if record == nil {
				return &domain.RemoteQueryError{Query: "proposals", Err: errors.New("empty record")}
			}
			records[id] = *record
			records[id].ID = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
