package adapters

import (
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-dao/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-dao/internal/adapters/interactive"
	"github.com/trebuchet-org/treb-dao/internal/adapters/metrics"
	"github.com/trebuchet-org/treb-dao/internal/adapters/wallet"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// BlockchainSet provides the RPC client and the contract facades on top of it
var BlockchainSet = wire.NewSet(
	blockchain.ProvideClient,
	wire.Bind(new(blockchain.ContractCaller), new(*ethclient.Client)),
	wire.Bind(new(blockchain.TransactionBackend), new(*ethclient.Client)),
	wire.Bind(new(blockchain.CodeReader), new(*ethclient.Client)),

	blockchain.NewReaderAdapter,
	wire.Bind(new(usecase.ChainReader), new(*blockchain.ReaderAdapter)),

	blockchain.NewWriterAdapter,
	wire.Bind(new(usecase.ChainWriter), new(*blockchain.WriterAdapter)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ContractChecker), new(*blockchain.CheckerAdapter)),
)

// WalletSet provides the configured wallet
var WalletSet = wire.NewSet(
	wallet.ProvideWallet,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ProposalSelector), new(*interactive.SelectorAdapter)),
)

// MetricsSet provides the prometheus collectors
var MetricsSet = wire.NewSet(
	metrics.New,
	wire.Bind(new(usecase.Metrics), new(*metrics.Metrics)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	WalletSet,
	InteractiveSet,
	MetricsSet,
)
