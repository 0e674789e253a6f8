package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// SessionManager owns the connected identity and its signing capability.
// Account changes arrive on a channel and each one produces a new immutable
// SessionState, published on Updates.
type SessionManager struct {
	wallet WalletProvider
	log    *slog.Logger

	mu         sync.RWMutex
	state      models.SessionState
	generation uint64
	cancel     context.CancelFunc
	hooks      []func(models.SessionState)

	updates chan models.SessionState
}

// NewSessionManager creates a session manager. wallet may be nil when no
// wallet is configured; Connect then fails with ErrNoWalletAvailable.
func NewSessionManager(wallet WalletProvider, log *slog.Logger) *SessionManager {
	return &SessionManager{
		wallet:  wallet,
		log:     log.With("component", "session"),
		updates: make(chan models.SessionState, 8),
	}
}

// Connect requests account access and starts consuming account changes
// until ctx is done or Close is called.
func (m *SessionManager) Connect(ctx context.Context) (models.SessionState, error) {
	if m.wallet == nil {
		return models.SessionState{}, domain.ErrNoWalletAvailable
	}

	accounts, err := m.wallet.RequestAccounts(ctx)
	if err != nil {
		return models.SessionState{}, fmt.Errorf("failed to request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return models.SessionState{}, domain.ErrNoAccounts
	}

	signer, err := m.wallet.Signer(accounts[0])
	if err != nil {
		return models.SessionState{}, fmt.Errorf("failed to get signer for %s: %w", accounts[0].Hex(), err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	changes, err := m.wallet.SubscribeAccounts(subCtx)
	if err != nil {
		cancel()
		return models.SessionState{}, fmt.Errorf("failed to subscribe to account changes: %w", err)
	}

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = cancel
	m.generation++
	m.state = models.SessionState{
		Identity:   accounts[0],
		Signer:     signer,
		Generation: m.generation,
	}
	state := m.state
	m.notifyLocked(state)
	m.mu.Unlock()

	m.log.Info("connected", "identity", state.Identity.Hex(), "generation", state.Generation)

	go m.listen(subCtx, changes)

	return state, nil
}

// State returns the current session
func (m *SessionManager) State() models.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// SigningCapability returns the current signer, or nil when disconnected
func (m *SessionManager) SigningCapability() models.Signer {
	return m.State().Signer
}

// Updates delivers the latest SessionState after account changes. A slow
// consumer misses superseded states, never the newest one.
func (m *SessionManager) Updates() <-chan models.SessionState {
	return m.updates
}

// OnChange registers fn to run synchronously with every new SessionState,
// before it is visible through State or Updates. fn must not call back into
// the manager.
func (m *SessionManager) OnChange(fn func(models.SessionState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Close stops consuming account changes and clears the session
func (m *SessionManager) Close() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.generation++
	m.state = models.SessionState{Generation: m.generation}
	m.notifyLocked(m.state)
	m.mu.Unlock()
}

func (m *SessionManager) listen(ctx context.Context, changes <-chan []common.Address) {
	for {
		select {
		case <-ctx.Done():
			return
		case accounts, ok := <-changes:
			if !ok {
				return
			}
			m.publish(m.apply(accounts))
		}
	}
}

// publish never blocks: when the buffer is full the oldest pending state is
// dropped, since every state supersedes the ones before it.
func (m *SessionManager) publish(state models.SessionState) {
	for {
		select {
		case m.updates <- state:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

// notifyLocked runs the hooks while m.mu is held so no reader observes the
// new state before the hooks have seen it.
func (m *SessionManager) notifyLocked(state models.SessionState) {
	for _, fn := range m.hooks {
		fn(state)
	}
}

// apply derives a fresh SessionState from an account list
func (m *SessionManager) apply(accounts []common.Address) models.SessionState {
	next := models.SessionState{}
	if len(accounts) > 0 {
		next.Identity = accounts[0]
		signer, err := m.wallet.Signer(accounts[0])
		if err != nil {
			// identity stays visible; write actions fail with ErrNotConnected
			m.log.Error("failed to re-issue signer", "identity", accounts[0].Hex(), "error", err)
		} else {
			next.Signer = signer
		}
	}

	m.mu.Lock()
	m.generation++
	next.Generation = m.generation
	m.state = next
	m.notifyLocked(next)
	m.mu.Unlock()

	if next.Connected() {
		m.log.Info("account changed", "identity", next.Identity.Hex(), "generation", next.Generation)
	} else {
		m.log.Info("wallet disconnected", "generation", next.Generation)
	}
	return next
}
