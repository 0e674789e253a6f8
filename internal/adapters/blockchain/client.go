package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
)

// ProvideClient dials the selected network's RPC endpoint. HTTP endpoints
// connect lazily, so no request is made until the first query.
func ProvideClient(cfg *config.RuntimeConfig) (*ethclient.Client, func(), error) {
	if cfg.Network == nil {
		return nil, nil, config.ErrNoNetwork
	}
	client, err := ethclient.DialContext(context.Background(), cfg.Network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, client.Close, nil
}
