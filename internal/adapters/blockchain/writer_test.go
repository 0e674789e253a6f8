package blockchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/bindings"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

func newTestWriter(t *testing.T, backend *fakeBackend) *WriterAdapter {
	t.Helper()
	writer, err := NewWriterAdapter(backend, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	writer.SetPollInterval(time.Millisecond)
	return writer
}

func TestWriterAdapter_SubmitVote(t *testing.T) {
	backend := newFakeBackend()
	backend.receipts = []receiptResult{
		{err: ethereum.NotFound},
		{err: ethereum.NotFound},
		{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(9), GasUsed: 41_000}},
	}
	signer := newKeySigner()

	pending, err := newTestWriter(t, backend).SubmitVote(context.Background(), signer, 3, models.VoteNo)
	require.NoError(t, err)
	assert.NotEmpty(t, pending.ID())

	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(t, pending.TxHash(), tx.Hash())
	assert.Equal(t, types.DynamicFeeTxType, int(tx.Type()))
	assert.Equal(t, testDAO, *tx.To())
	assert.Equal(t, bindings.NewCryptoDevsDAO().PackVoteOnProposal(big.NewInt(3), 1), tx.Data())
	assert.Equal(t, uint64(60_000), tx.Gas())
	assert.Equal(t, int64(11155111), tx.ChainId().Int64())
	assert.Equal(t, "5000000000", tx.GasFeeCap().String())

	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), sender)

	settlement, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pending.ID(), settlement.RequestID)
	assert.Equal(t, tx.Hash(), settlement.TxHash)
	assert.Equal(t, uint64(9), settlement.BlockNumber)
	assert.Equal(t, uint64(41_000), settlement.GasUsed)
}

func TestWriterAdapter_EncodesEveryAction(t *testing.T) {
	dao := bindings.NewCryptoDevsDAO()
	tests := []struct {
		name   string
		submit func(w *WriterAdapter, s models.Signer) error
		want   []byte
	}{
		{
			name: "create",
			submit: func(w *WriterAdapter, s models.Signer) error {
				_, err := w.SubmitCreate(context.Background(), s, big.NewInt(12))
				return err
			},
			want: dao.PackCreateProposal(big.NewInt(12)),
		},
		{
			name: "execute",
			submit: func(w *WriterAdapter, s models.Signer) error {
				_, err := w.SubmitExecute(context.Background(), s, 0)
				return err
			},
			want: dao.PackExecuteProposal(big.NewInt(0)),
		},
		{
			name: "withdraw",
			submit: func(w *WriterAdapter, s models.Signer) error {
				_, err := w.SubmitWithdraw(context.Background(), s)
				return err
			},
			want: dao.PackWithdrawEther(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			require.NoError(t, tt.submit(newTestWriter(t, backend), newKeySigner()))
			require.Len(t, backend.sent, 1)
			assert.Equal(t, tt.want, backend.sent[0].Data())
		})
	}
}

func TestWriterAdapter_RevertedOnChain(t *testing.T) {
	backend := newFakeBackend()
	backend.receipts = []receiptResult{
		{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(11)}},
	}
	backend.replayErr = revertError{data: revertData("ALREADY_VOTED")}

	pending, err := newTestWriter(t, backend).SubmitVote(context.Background(), newKeySigner(), 0, models.VoteYes)
	require.NoError(t, err)

	_, err = pending.Wait(context.Background())
	var failed *domain.ActionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, pending.TxHash(), failed.TxHash)
	assert.Equal(t, "ALREADY_VOTED", failed.Reason)
	assert.ErrorIs(t, err, ErrReverted)
}

func TestWriterAdapter_RevertedOnEstimate(t *testing.T) {
	backend := newFakeBackend()
	backend.estimateErr = errors.New("execution reverted: DEADLINE_EXCEEDED")

	_, err := newTestWriter(t, backend).SubmitVote(context.Background(), newKeySigner(), 0, models.VoteYes)
	var failed *domain.ActionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "DEADLINE_EXCEEDED", failed.Reason)
	assert.Empty(t, backend.sent)
}

func TestWriterAdapter_ChainIDMismatch(t *testing.T) {
	backend := newFakeBackend()
	backend.chainID = big.NewInt(1)

	_, err := newTestWriter(t, backend).SubmitWithdraw(context.Background(), newKeySigner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chain ID mismatch: expected 11155111, got 1")
	assert.Empty(t, backend.sent)
}

func TestPendingTx_WaitStopsWithContext(t *testing.T) {
	backend := newFakeBackend()
	pending, err := newTestWriter(t, backend).SubmitWithdraw(context.Background(), newKeySigner())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = pending.Wait(ctx)
	var failed *domain.ActionFailedError
	require.ErrorAs(t, err, &failed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPendingTx_WaitPermanentError(t *testing.T) {
	backend := newFakeBackend()
	backend.receipts = []receiptResult{{err: errors.New("rpc: method not found")}}

	pending, err := newTestWriter(t, backend).SubmitWithdraw(context.Background(), newKeySigner())
	require.NoError(t, err)

	_, err = pending.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestRevertReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "revert data", err: revertError{data: revertData("NOT_A_DAO_MEMBER")}, want: "NOT_A_DAO_MEMBER"},
		{name: "message only", err: errors.New("execution reverted: INSUFFICIENT_FUNDS"), want: "INSUFFICIENT_FUNDS"},
		{name: "not a revert", err: errors.New("nonce too low"), want: ""},
		{name: "undecodable data", err: revertError{data: "0x1234"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RevertReason(tt.err))
		})
	}
}

func TestCheckerAdapter_CheckCode(t *testing.T) {
	checker := NewCheckerAdapter(codeReaderFunc(func(addr common.Address) ([]byte, error) {
		switch addr {
		case testDAO:
			return []byte{0x60, 0x80}, nil
		case testNFT:
			return nil, errors.New("timeout")
		}
		return nil, nil
	}))

	tests := []struct {
		name     string
		address  common.Address
		deployed bool
		reason   string
	}{
		{"deployed", testDAO, true, ""},
		{"lookup failed", testNFT, false, "failed to check code: timeout"},
		{"empty", common.HexToAddress("0x01"), false, "no code at address"},
		{"unset", common.Address{}, false, "address not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deployed, reason, err := checker.CheckCode(context.Background(), tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.deployed, deployed)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

type codeReaderFunc func(addr common.Address) ([]byte, error)

func (f codeReaderFunc) CodeAt(ctx context.Context, addr common.Address, blockNumber *big.Int) ([]byte, error) {
	return f(addr)
}
