package config

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // path of the dao.toml that was loaded, empty if none

	// Context settings
	Network *Network // nil if not specified
	Wallet  WalletConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	Timeout        time.Duration // zero disables the command deadline

	// Read concurrency used when loading the proposal list
	FetchConcurrency int
}

// OutputFormat selects how command results are printed
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`

	Contracts Contracts `json:"contracts"`
}

// Contracts holds the deployed addresses the client talks to
type Contracts struct {
	DAO         common.Address `json:"dao"`
	NFT         common.Address `json:"nft"`
	Marketplace common.Address `json:"marketplace,omitempty"`
}

// ErrNoNetwork is returned when a command needs a network and none is selected
var ErrNoNetwork = errors.New("no network selected, use --network or set TREB_DAO_NETWORK")
