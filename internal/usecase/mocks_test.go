package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockChainReader is a mock implementation of ChainReader
type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) ProposalCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainReader) Owner(ctx context.Context) (common.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *MockChainReader) TreasuryBalance(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainReader) EntitlementBalance(ctx context.Context, identity common.Address) (uint64, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainReader) ProposalRecord(ctx context.Context, id uint64) (*models.ProposalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	record := args.Get(0).(models.ProposalRecord)
	return &record, args.Error(1)
}

// MockChainWriter is a mock implementation of ChainWriter
type MockChainWriter struct {
	mock.Mock
}

func (m *MockChainWriter) SubmitCreate(ctx context.Context, signer models.Signer, targetItemID *big.Int) (usecase.PendingAction, error) {
	args := m.Called(ctx, signer, targetItemID)
	return pendingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainWriter) SubmitVote(ctx context.Context, signer models.Signer, id uint64, choice models.VoteChoice) (usecase.PendingAction, error) {
	args := m.Called(ctx, signer, id, choice)
	return pendingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainWriter) SubmitExecute(ctx context.Context, signer models.Signer, id uint64) (usecase.PendingAction, error) {
	args := m.Called(ctx, signer, id)
	return pendingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockChainWriter) SubmitWithdraw(ctx context.Context, signer models.Signer) (usecase.PendingAction, error) {
	args := m.Called(ctx, signer)
	return pendingOrNil(args.Get(0)), args.Error(1)
}

func pendingOrNil(v any) usecase.PendingAction {
	if v == nil {
		return nil
	}
	return v.(usecase.PendingAction)
}

// MockPendingAction is a mock implementation of PendingAction
type MockPendingAction struct {
	mock.Mock
	hash common.Hash
}

func newPending(hash string) *MockPendingAction {
	return &MockPendingAction{hash: common.HexToHash(hash)}
}

func (m *MockPendingAction) ID() string          { return "req-" + m.hash.Hex()[2:10] }
func (m *MockPendingAction) TxHash() common.Hash { return m.hash }

func (m *MockPendingAction) Wait(ctx context.Context) (*models.Settlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settlement), args.Error(1)
}

// MockWallet is a mock implementation of WalletProvider
type MockWallet struct {
	mock.Mock
	changes chan []common.Address
}

func newMockWallet() *MockWallet {
	return &MockWallet{changes: make(chan []common.Address, 4)}
}

func (m *MockWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Address), args.Error(1)
}

func (m *MockWallet) Signer(account common.Address) (models.Signer, error) {
	args := m.Called(account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Signer), args.Error(1)
}

func (m *MockWallet) SubscribeAccounts(ctx context.Context) (<-chan []common.Address, error) {
	return m.changes, nil
}

// fakeSigner signs nothing; the writer is mocked
type fakeSigner struct {
	address common.Address
}

func (s fakeSigner) Address() common.Address { return s.address }

func (s fakeSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return tx, nil
}

// staticSession is a fixed SessionSource
type staticSession struct {
	state models.SessionState
}

func (s *staticSession) State() models.SessionState { return s.state }

// recordingSink records progress stages
type recordingSink struct {
	usecase.NopProgress
	stages []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.stages = append(s.stages, event.Stage)
}

var (
	alice    = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	daoOwner = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	testNow  = time.Unix(1_700_000_000, 0)
)

func sessionFor(identity common.Address, generation uint64) models.SessionState {
	return models.SessionState{Identity: identity, Signer: fakeSigner{address: identity}, Generation: generation}
}

func proposal(id uint64, deadline time.Time, yes, no int64, executed bool) models.ProposalRecord {
	return models.ProposalRecord{
		ID:           id,
		TargetItemID: big.NewInt(int64(id) + 10),
		Deadline:     deadline,
		YesVotes:     big.NewInt(yes),
		NoVotes:      big.NewInt(no),
		Executed:     executed,
	}
}

// stubScalars registers repeatable expectations for the scalar queries
func stubScalars(reader *MockChainReader, count uint64, entitlement uint64) {
	reader.On("ProposalCount", mock.Anything).Return(count, nil).Maybe()
	reader.On("Owner", mock.Anything).Return(daoOwner, nil).Maybe()
	reader.On("TreasuryBalance", mock.Anything).Return(big.NewInt(250_000_000_000_000_000), nil).Maybe()
	reader.On("EntitlementBalance", mock.Anything, mock.Anything).Return(entitlement, nil).Maybe()
}
