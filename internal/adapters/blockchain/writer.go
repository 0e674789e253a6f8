package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/bindings"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

const defaultReceiptPollInterval = 2 * time.Second

// ErrReverted is wrapped by the ActionFailedError of a mined but failed transaction
var ErrReverted = errors.New("transaction reverted")

// TransactionBackend is the write subset of ethclient.Client
type TransactionBackend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// WriterAdapter implements usecase.ChainWriter with EIP-1559 transactions
// signed by the session's signer
type WriterAdapter struct {
	backend      TransactionBackend
	dao          common.Address
	daoABI       *bindings.CryptoDevsDAO
	network      *config.Network
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	chainID *big.Int
}

// NewWriterAdapter creates a writer for the selected network's DAO
func NewWriterAdapter(backend TransactionBackend, cfg *config.RuntimeConfig, log *slog.Logger) (*WriterAdapter, error) {
	if cfg.Network == nil {
		return nil, config.ErrNoNetwork
	}
	return &WriterAdapter{
		backend:      backend,
		dao:          cfg.Network.Contracts.DAO,
		daoABI:       bindings.NewCryptoDevsDAO(),
		network:      cfg.Network,
		pollInterval: defaultReceiptPollInterval,
		log:          log.With("component", "writer"),
	}, nil
}

// SetPollInterval overrides how often receipts are polled
func (w *WriterAdapter) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// SubmitCreate sends createProposal(targetItemID)
func (w *WriterAdapter) SubmitCreate(ctx context.Context, signer models.Signer, targetItemID *big.Int) (usecase.PendingAction, error) {
	data, err := w.daoABI.TryPackCreateProposal(targetItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode createProposal: %w", err)
	}
	return w.submit(ctx, signer, data)
}

// SubmitVote sends voteOnProposal(id, choice)
func (w *WriterAdapter) SubmitVote(ctx context.Context, signer models.Signer, id uint64, choice models.VoteChoice) (usecase.PendingAction, error) {
	data, err := w.daoABI.TryPackVoteOnProposal(new(big.Int).SetUint64(id), uint8(choice))
	if err != nil {
		return nil, fmt.Errorf("failed to encode voteOnProposal: %w", err)
	}
	return w.submit(ctx, signer, data)
}

// SubmitExecute sends executeProposal(id)
func (w *WriterAdapter) SubmitExecute(ctx context.Context, signer models.Signer, id uint64) (usecase.PendingAction, error) {
	data, err := w.daoABI.TryPackExecuteProposal(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to encode executeProposal: %w", err)
	}
	return w.submit(ctx, signer, data)
}

// SubmitWithdraw sends withdrawEther()
func (w *WriterAdapter) SubmitWithdraw(ctx context.Context, signer models.Signer) (usecase.PendingAction, error) {
	data, err := w.daoABI.TryPackWithdrawEther()
	if err != nil {
		return nil, fmt.Errorf("failed to encode withdrawEther: %w", err)
	}
	return w.submit(ctx, signer, data)
}

func (w *WriterAdapter) submit(ctx context.Context, signer models.Signer, data []byte) (usecase.PendingAction, error) {
	chainID, err := w.resolveChainID(ctx)
	if err != nil {
		return nil, err
	}
	from := signer.Address()

	nonce, err := w.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	tip, err := w.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := w.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	msg := ethereum.CallMsg{
		From:      from,
		To:        &w.dao,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Data:      data,
	}
	gas, err := w.backend.EstimateGas(ctx, msg)
	if err != nil {
		// estimation executes the call, so a revert shows up here first
		return nil, &domain.ActionFailedError{
			Reason: RevertReason(err),
			Err:    fmt.Errorf("failed to estimate gas: %w", err),
		}
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas + gas/5,
		To:        &w.dao,
		Data:      data,
	})

	signed, err := signer.SignTx(ctx, tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := w.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	pending := &PendingTx{
		id:       uuid.NewString(),
		hash:     signed.Hash(),
		msg:      msg,
		backend:  w.backend,
		interval: w.pollInterval,
	}
	w.log.Debug("transaction sent",
		"request", pending.id,
		"tx", pending.hash.Hex(),
		"method", w.daoABI.MethodName(data),
		"nonce", nonce,
		"gas", tx.Gas(),
	)
	return pending, nil
}

// resolveChainID asks the node once and checks it against the configured chain
func (w *WriterAdapter) resolveChainID(ctx context.Context) (*big.Int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.chainID != nil {
		return w.chainID, nil
	}

	networkChainID, err := w.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if w.network.ChainID != 0 && networkChainID.Uint64() != w.network.ChainID {
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", w.network.ChainID, networkChainID.Uint64())
	}
	w.chainID = networkChainID
	return w.chainID, nil
}

// PendingTx is a sent transaction awaiting its receipt
type PendingTx struct {
	id       string
	hash     common.Hash
	msg      ethereum.CallMsg
	backend  TransactionBackend
	interval time.Duration
}

// ID returns the client-side request id
func (p *PendingTx) ID() string { return p.id }

// TxHash returns the transaction hash
func (p *PendingTx) TxHash() common.Hash { return p.hash }

// Wait polls for the receipt until the transaction is mined or ctx is done
func (p *PendingTx) Wait(ctx context.Context) (*models.Settlement, error) {
	var receipt *types.Receipt
	poll := func() error {
		r, err := p.backend.TransactionReceipt(ctx, p.hash)
		if errors.Is(err, ethereum.NotFound) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		receipt = r
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(p.interval), ctx)
	if err := backoff.Retry(poll, policy); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &domain.ActionFailedError{TxHash: p.hash, Err: fmt.Errorf("failed to get receipt: %w", err)}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.ActionFailedError{
			TxHash: p.hash,
			Reason: p.replay(ctx, receipt.BlockNumber),
			Err:    ErrReverted,
		}
	}

	return &models.Settlement{
		RequestID:   p.id,
		TxHash:      p.hash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// replay re-runs the call at the mined block to recover the revert reason
func (p *PendingTx) replay(ctx context.Context, block *big.Int) string {
	_, err := p.backend.CallContract(ctx, p.msg, block)
	return RevertReason(err)
}
