package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
)

// resolveNetwork turns a [networks.<name>] table into a validated Network
func resolveNetwork(file *ProjectFile, name string) (*config.Network, error) {
	if file == nil {
		return nil, fmt.Errorf("network '%s' not found: no %s in project", name, ProjectFileName)
	}
	raw, ok := file.Networks[name]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in %s, available: %s",
			name, ProjectFileName, strings.Join(networkNames(file), ", "))
	}

	if raw.RPCURL == "" {
		return nil, fmt.Errorf("network '%s': rpc_url is required", name)
	}

	dao, err := parseAddress(name, "dao", raw.DAO, true)
	if err != nil {
		return nil, err
	}
	nft, err := parseAddress(name, "nft", raw.NFT, true)
	if err != nil {
		return nil, err
	}
	marketplace, err := parseAddress(name, "marketplace", raw.Marketplace, false)
	if err != nil {
		return nil, err
	}

	explorer := raw.ExplorerURL
	if explorer == "" {
		explorer = explorerURLForChain(raw.ChainID)
	}

	return &config.Network{
		Name:        name,
		ChainID:     raw.ChainID,
		RPCURL:      raw.RPCURL,
		ExplorerURL: strings.TrimRight(explorer, "/"),
		Contracts: config.Contracts{
			DAO:         dao,
			NFT:         nft,
			Marketplace: marketplace,
		},
	}, nil
}

func parseAddress(network, field, value string, required bool) (common.Address, error) {
	if value == "" {
		if required {
			return common.Address{}, fmt.Errorf("network '%s': %s address is required", network, field)
		}
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("network '%s': invalid %s address %q", network, field, value)
	}
	return common.HexToAddress(value), nil
}

func networkNames(file *ProjectFile) []string {
	names := lo.Keys(file.Networks)
	slices.Sort(names)
	return names
}

// explorerURLForChain returns a block explorer for well-known chains
func explorerURLForChain(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}
