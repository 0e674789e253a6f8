package blockchain

import (
	"context"
	"errors"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/bindings"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// errEmptyResult is returned when a call returns no data, usually because
// nothing is deployed at the address
var errEmptyResult = errors.New("empty result, is the contract deployed?")

// ContractCaller is the read subset of ethclient.Client
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ReaderAdapter implements usecase.ChainReader with eth_call against the
// latest block
type ReaderAdapter struct {
	caller ContractCaller
	dao    common.Address
	nft    common.Address
	daoABI *bindings.CryptoDevsDAO
	nftABI *bindings.CryptoDevsNFT
}

// NewReaderAdapter creates a reader for the selected network's contracts
func NewReaderAdapter(caller ContractCaller, cfg *config.RuntimeConfig) (*ReaderAdapter, error) {
	if cfg.Network == nil {
		return nil, config.ErrNoNetwork
	}
	return &ReaderAdapter{
		caller: caller,
		dao:    cfg.Network.Contracts.DAO,
		nft:    cfg.Network.Contracts.NFT,
		daoABI: bindings.NewCryptoDevsDAO(),
		nftABI: bindings.NewCryptoDevsNFT(),
	}, nil
}

// ProposalCount returns numProposals()
func (r *ReaderAdapter) ProposalCount(ctx context.Context) (uint64, error) {
	out, err := r.call(ctx, "numProposals", r.dao, r.daoABI.PackNumProposals())
	if err != nil {
		return 0, err
	}
	count, err := r.daoABI.UnpackNumProposals(out)
	if err != nil {
		return 0, &domain.RemoteQueryError{Query: "numProposals", Err: err}
	}
	if !count.IsUint64() {
		return 0, &domain.RemoteQueryError{Query: "numProposals", Err: errors.New("count overflows uint64")}
	}
	return count.Uint64(), nil
}

// Owner returns owner()
func (r *ReaderAdapter) Owner(ctx context.Context) (common.Address, error) {
	out, err := r.call(ctx, "owner", r.dao, r.daoABI.PackOwner())
	if err != nil {
		return common.Address{}, err
	}
	owner, err := r.daoABI.UnpackOwner(out)
	if err != nil {
		return common.Address{}, &domain.RemoteQueryError{Query: "owner", Err: err}
	}
	return owner, nil
}

// TreasuryBalance returns the native balance held by the DAO
func (r *ReaderAdapter) TreasuryBalance(ctx context.Context) (*big.Int, error) {
	balance, err := r.caller.BalanceAt(ctx, r.dao, nil)
	if err != nil {
		return nil, &domain.RemoteQueryError{Query: "balance", Err: err}
	}
	return balance, nil
}

// EntitlementBalance returns the NFT balanceOf(identity). Balances beyond
// uint64 saturate.
func (r *ReaderAdapter) EntitlementBalance(ctx context.Context, identity common.Address) (uint64, error) {
	out, err := r.call(ctx, "balanceOf", r.nft, r.nftABI.PackBalanceOf(identity))
	if err != nil {
		return 0, err
	}
	balance, err := r.nftABI.UnpackBalanceOf(out)
	if err != nil {
		return 0, &domain.RemoteQueryError{Query: "balanceOf", Err: err}
	}
	if !balance.IsUint64() {
		return math.MaxUint64, nil
	}
	return balance.Uint64(), nil
}

// ProposalRecord returns proposals(id)
func (r *ReaderAdapter) ProposalRecord(ctx context.Context, id uint64) (*models.ProposalRecord, error) {
	index := new(big.Int).SetUint64(id)
	out, err := r.call(ctx, "proposals", r.dao, r.daoABI.PackProposals(index))
	if err != nil {
		return nil, err
	}
	p, err := r.daoABI.UnpackProposals(out)
	if err != nil {
		return nil, &domain.RemoteQueryError{Query: "proposals", Err: err}
	}
	if !p.Deadline.IsInt64() {
		return nil, &domain.RemoteQueryError{Query: "proposals", Err: errors.New("deadline out of range")}
	}
	return &models.ProposalRecord{
		ID:           id,
		TargetItemID: p.NftTokenId,
		Deadline:     time.Unix(p.Deadline.Int64(), 0).UTC(),
		YesVotes:     p.YayVotes,
		NoVotes:      p.NayVotes,
		Executed:     p.Executed,
	}, nil
}

func (r *ReaderAdapter) call(ctx context.Context, query string, to common.Address, data []byte) ([]byte, error) {
	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, &domain.RemoteQueryError{Query: query, Err: err}
	}
	if len(out) == 0 {
		return nil, &domain.RemoteQueryError{Query: query, Err: errEmptyResult}
	}
	return out, nil
}
