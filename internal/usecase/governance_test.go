package usecase_test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

func newGovernance(reader *MockChainReader, writer *MockChainWriter, wallet usecase.WalletProvider) *usecase.Governance {
	log := testLogger()
	clock := func() time.Time { return testNow }
	session := usecase.NewSessionManager(wallet, log)
	view := usecase.NewViewStore(reader, nil, nil, log)
	gateway := usecase.NewActionGateway(session, view, reader, writer, nil, nil, clock, log)
	return usecase.NewGovernance(session, view, gateway, reader, clock, log)
}

func TestGovernance_ConnectAndDescribe(t *testing.T) {
	reader := new(MockChainReader)
	stubScalars(reader, 2, 1)
	reader.On("ProposalRecord", mock.Anything, uint64(1)).Return(proposal(1, testNow.Add(-time.Minute), 0, 4, false), nil)

	w := newMockWallet()
	w.On("RequestAccounts", mock.Anything).Return([]common.Address{alice}, nil)
	w.On("Signer", alice).Return(fakeSigner{address: alice}, nil)

	g := newGovernance(reader, new(MockChainWriter), w)
	snap, err := g.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, snap.Identity)
	assert.Equal(t, uint64(1), snap.Entitlement)

	view, err := g.Describe(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.LifecycleAwaitingExecution, view.State)
	assert.Equal(t, models.OutcomeClose, view.ExpectedOutcome)

	_, err = g.Describe(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)
}

func TestGovernance_ReadsWithoutWallet(t *testing.T) {
	reader := new(MockChainReader)
	stubScalars(reader, 1, 0)
	reader.On("ProposalRecord", mock.Anything, uint64(0)).Return(proposal(0, testNow.Add(time.Hour), 0, 0, false), nil)

	g := newGovernance(reader, new(MockChainWriter), nil)

	_, err := g.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoWalletAvailable)

	views, snap, err := g.Proposals(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.EntitlementKnown)
	require.Len(t, views, 1)
	assert.Equal(t, models.LifecycleActive, views[0].State)
	assert.Empty(t, views[0].Allowed)

	_, err = g.Create(context.Background(), big.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestGovernance_Open(t *testing.T) {
	t.Run("read-only without wallet", func(t *testing.T) {
		reader := new(MockChainReader)
		stubScalars(reader, 1, 0)
		reader.On("ProposalRecord", mock.Anything, uint64(0)).Return(proposal(0, testNow.Add(-time.Hour), 3, 1, false), nil)

		g := newGovernance(reader, new(MockChainWriter), nil)
		snap, err := g.Open(context.Background(), usecase.OpenOptions{LoadProposals: true})
		require.NoError(t, err)
		assert.True(t, snap.ProposalsLoaded)
		assert.False(t, g.Session().Connected())

		views := g.Views()
		require.Len(t, views, 1)
		assert.Equal(t, models.LifecycleAwaitingExecution, views[0].State)
		assert.Equal(t, models.OutcomePurchase, views[0].ExpectedOutcome)
	})

	t.Run("wallet required", func(t *testing.T) {
		g := newGovernance(new(MockChainReader), new(MockChainWriter), nil)
		_, err := g.Open(context.Background(), usecase.OpenOptions{RequireWallet: true})
		assert.ErrorIs(t, err, domain.ErrNoWalletAvailable)
	})

	t.Run("connected without list", func(t *testing.T) {
		reader := new(MockChainReader)
		stubScalars(reader, 4, 2)

		w := newMockWallet()
		w.On("RequestAccounts", mock.Anything).Return([]common.Address{bob}, nil)
		w.On("Signer", bob).Return(fakeSigner{address: bob}, nil)

		g := newGovernance(reader, new(MockChainWriter), w)
		snap, err := g.Open(context.Background(), usecase.OpenOptions{RequireWallet: true})
		require.NoError(t, err)
		assert.Equal(t, bob, snap.Identity)
		assert.False(t, snap.ProposalsLoaded)
		assert.Empty(t, g.Views())
		reader.AssertNotCalled(t, "ProposalRecord", mock.Anything, mock.Anything)
	})
}

func TestGovernance_WatchFollowsIdentity(t *testing.T) {
	reader := new(MockChainReader)
	reader.On("ProposalCount", mock.Anything).Return(uint64(0), nil)
	reader.On("Owner", mock.Anything).Return(daoOwner, nil)
	reader.On("TreasuryBalance", mock.Anything).Return(big.NewInt(1), nil)
	reader.On("EntitlementBalance", mock.Anything, alice).Return(uint64(2), nil)
	reader.On("EntitlementBalance", mock.Anything, bob).Return(uint64(0), nil)

	w := newMockWallet()
	w.On("RequestAccounts", mock.Anything).Return([]common.Address{alice}, nil)
	w.On("Signer", alice).Return(fakeSigner{address: alice}, nil)
	w.On("Signer", bob).Return(fakeSigner{address: bob}, nil)

	g := newGovernance(reader, new(MockChainWriter), w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := g.Connect(ctx)
	require.NoError(t, err)

	var (
		mu     sync.Mutex
		events []usecase.WatchEvent
	)
	done := make(chan error, 1)
	go func() {
		done <- g.Watch(ctx, 0, func(event usecase.WatchEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
		})
	}()

	w.changes <- []common.Address{bob}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(events) == 0 {
			return false
		}
		last := events[len(events)-1]
		return last.Err == nil && last.Snapshot.Identity == bob
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	for _, event := range events {
		require.NoError(t, event.Err)
		if event.Snapshot.Identity == bob {
			assert.Equal(t, uint64(0), event.Snapshot.Entitlement)
		}
	}
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestGovernance_AccountChangeDiscardsRefreshInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	reader := new(MockChainReader)
	reader.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
	reader.On("Owner", mock.Anything).Return(daoOwner, nil)
	reader.On("TreasuryBalance", mock.Anything).Return(big.NewInt(1), nil)
	reader.On("ProposalRecord", mock.Anything, uint64(0)).Return(proposal(0, testNow.Add(time.Hour), 1, 0, false), nil)
	reader.On("EntitlementBalance", mock.Anything, alice).Return(uint64(3), nil).Once()
	reader.On("EntitlementBalance", mock.Anything, alice).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(uint64(3), nil).Once()
	reader.On("EntitlementBalance", mock.Anything, bob).Return(uint64(0), nil)

	w := newMockWallet()
	w.On("RequestAccounts", mock.Anything).Return([]common.Address{alice}, nil)
	w.On("Signer", alice).Return(fakeSigner{address: alice}, nil)
	w.On("Signer", bob).Return(fakeSigner{address: bob}, nil)

	g := newGovernance(reader, new(MockChainWriter), w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := g.Open(ctx, usecase.OpenOptions{LoadProposals: true, RequireWallet: true})
	require.NoError(t, err)
	views := g.Views()
	require.Len(t, views, 1)
	assert.Equal(t, []models.ActionKind{models.ActionVote}, views[0].Allowed)

	refreshErr := make(chan error, 1)
	go func() {
		_, err := g.Refresh(ctx)
		refreshErr <- err
	}()
	<-entered

	// nothing binds the view by hand; the account change alone must supersede
	w.changes <- []common.Address{bob}
	require.Eventually(t, func() bool {
		return g.Session().Identity == bob
	}, 5*time.Second, 10*time.Millisecond)

	close(release)
	select {
	case err := <-refreshErr:
		assert.ErrorIs(t, err, domain.ErrStaleRefresh)
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not return")
	}
	assert.Nil(t, g.Views(), "previous identity's views must not be served")

	snap, err := g.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, bob, snap.Identity)
	views = g.Views()
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Allowed)
}
