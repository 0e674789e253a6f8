package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
)

// ContractChecker checks whether code is deployed at an address
type ContractChecker interface {
	CheckCode(ctx context.Context, address common.Address) (deployed bool, reason string, err error)
}

// ContractStatus describes one configured contract address
type ContractStatus struct {
	Name        string         `json:"name" yaml:"name"`
	Address     common.Address `json:"address" yaml:"address"`
	ExplorerURL string         `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
	Checked     bool           `json:"checked" yaml:"checked"`
	Deployed    bool           `json:"deployed" yaml:"deployed"`
	Reason      string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// InspectContractsParams contains parameters for inspecting contracts
type InspectContractsParams struct {
	// CheckCode queries the chain for deployed bytecode at each address
	CheckCode bool
}

// InspectContractsResult contains the configured contracts of the network
type InspectContractsResult struct {
	Network   string           `json:"network" yaml:"network"`
	ChainID   uint64           `json:"chainId" yaml:"chainId"`
	Contracts []ContractStatus `json:"contracts" yaml:"contracts"`
}

// InspectContracts lists the DAO, NFT and marketplace addresses of the
// selected network with explorer links
type InspectContracts struct {
	config  *config.RuntimeConfig
	checker ContractChecker
}

// NewInspectContracts creates a new InspectContracts use case
func NewInspectContracts(cfg *config.RuntimeConfig, checker ContractChecker) *InspectContracts {
	return &InspectContracts{config: cfg, checker: checker}
}

// Run executes the use case
func (uc *InspectContracts) Run(ctx context.Context, params InspectContractsParams) (*InspectContractsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, config.ErrNoNetwork
	}

	entries := []struct {
		name    string
		address common.Address
	}{
		{"DAO", network.Contracts.DAO},
		{"NFT", network.Contracts.NFT},
		{"Marketplace", network.Contracts.Marketplace},
	}

	result := &InspectContractsResult{
		Network: network.Name,
		ChainID: network.ChainID,
	}
	for _, entry := range entries {
		status := ContractStatus{
			Name:        entry.name,
			Address:     entry.address,
			ExplorerURL: AddressURL(network.ExplorerURL, entry.address),
		}
		if params.CheckCode && uc.checker != nil {
			deployed, reason, err := uc.checker.CheckCode(ctx, entry.address)
			if err != nil {
				return nil, fmt.Errorf("failed to check %s: %w", entry.name, err)
			}
			status.Checked = true
			status.Deployed = deployed
			status.Reason = reason
		}
		result.Contracts = append(result.Contracts, status)
	}
	return result, nil
}

// AddressURL links address on the block explorer. It is empty when no
// explorer is configured or the address is unset.
func AddressURL(explorer string, address common.Address) string {
	if explorer == "" || address == (common.Address{}) {
		return ""
	}
	return strings.TrimSuffix(explorer, "/") + "/address/" + address.Hex()
}

// TxURL links a transaction on the block explorer
func TxURL(explorer string, hash common.Hash) string {
	if explorer == "" {
		return ""
	}
	return strings.TrimSuffix(explorer, "/") + "/tx/" + hash.Hex()
}
