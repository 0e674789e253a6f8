package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// PrivateKeyWallet is a single static account. It never reports account changes.
type PrivateKeyWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeyWallet parses a hex private key, with or without 0x
func NewPrivateKeyWallet(hexKey string) (*PrivateKeyWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &PrivateKeyWallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (w *PrivateKeyWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{w.address}, nil
}

func (w *PrivateKeyWallet) Signer(account common.Address) (models.Signer, error) {
	if account != w.address {
		return nil, fmt.Errorf("account %s is not managed by this wallet", account.Hex())
	}
	return w, nil
}

func (w *PrivateKeyWallet) SubscribeAccounts(ctx context.Context) (<-chan []common.Address, error) {
	out := make(chan []common.Address)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out, nil
}

func (w *PrivateKeyWallet) Address() common.Address {
	return w.address
}

func (w *PrivateKeyWallet) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
}
