package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-dao/internal/domain/bindings"
)

var (
	testDAO = common.HexToAddress("0x00000000000000000000000000000000000000da")
	testNFT = common.HexToAddress("0x00000000000000000000000000000000000000ff")
)

type receiptResult struct {
	receipt *types.Receipt
	err     error
}

// fakeBackend answers calls by method name with ABI-packed outputs
type fakeBackend struct {
	mu sync.Mutex

	outputs  map[string][]interface{}
	callErrs map[string]error
	calls    []ethereum.CallMsg
	balance  *big.Int
	balErr   error

	chainID     *big.Int
	estimate    uint64
	estimateErr error
	sent        []*types.Transaction
	receipts    []receiptResult
	replayErr   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		outputs:  map[string][]interface{}{},
		callErrs: map[string]error{},
		balance:  big.NewInt(0),
		chainID:  big.NewInt(11155111),
		estimate: 50_000,
	}
}

func (b *fakeBackend) method(data []byte) (*abi.Method, error) {
	if len(data) < 4 {
		return nil, errors.New("short calldata")
	}
	daoABI := bindings.NewCryptoDevsDAO().ABI()
	if m, err := daoABI.MethodById(data[:4]); err == nil {
		return m, nil
	}
	nftABI := bindings.NewCryptoDevsNFT().ABI()
	return nftABI.MethodById(data[:4])
}

func (b *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, msg)

	if blockNumber != nil {
		return nil, b.replayErr
	}
	m, err := b.method(msg.Data)
	if err != nil {
		return nil, err
	}
	if err := b.callErrs[m.Name]; err != nil {
		return nil, err
	}
	values, ok := b.outputs[m.Name]
	if !ok {
		return nil, nil
	}
	return m.Outputs.Pack(values...)
}

func (b *fakeBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return b.balance, b.balErr
}

func (b *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return b.chainID, nil
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return uint64(len(b.sent)), nil
}

func (b *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(8), BaseFee: big.NewInt(2_000_000_000)}, nil
}

func (b *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return b.estimate, b.estimateErr
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.receipts) == 0 {
		return nil, ethereum.NotFound
	}
	next := b.receipts[0]
	if len(b.receipts) > 1 {
		b.receipts = b.receipts[1:]
	}
	return next.receipt, next.err
}

// revertError mimics the JSON-RPC error of a reverted call
type revertError struct {
	data string
}

func (e revertError) Error() string          { return "execution reverted" }
func (e revertError) ErrorData() interface{} { return e.data }

func revertData(reason string) string {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	if err != nil {
		panic(err)
	}
	return hexutil.Encode(append(common.FromHex("0x08c379a0"), packed...))
}

// keySigner signs with an in-memory key
type keySigner struct {
	key *ecdsa.PrivateKey
}

func newKeySigner() keySigner {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return keySigner{key: key}
}

func (s keySigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s keySigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}
