package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// KeystoreWallet exposes the accounts of an encrypted keystore directory.
// Account changes are taken from the keystore's wallet event feed.
type KeystoreWallet struct {
	ks         *keystore.KeyStore
	dir        string
	passphrase string
	preferred  common.Address
	log        *slog.Logger
}

// NewKeystoreWallet opens the keystore directory of cfg
func NewKeystoreWallet(cfg config.WalletConfig, log *slog.Logger) (*KeystoreWallet, error) {
	return newKeystoreWallet(cfg, log, keystore.StandardScryptN, keystore.StandardScryptP)
}

func newKeystoreWallet(cfg config.WalletConfig, log *slog.Logger, scryptN, scryptP int) (*KeystoreWallet, error) {
	dir, err := expandHome(cfg.KeystoreDir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, fmt.Errorf("keystore wallet requires keystore_dir")
	}

	w := &KeystoreWallet{
		ks:         keystore.NewKeyStore(dir, scryptN, scryptP),
		dir:        dir,
		passphrase: cfg.Passphrase,
		log:        log.With("component", "keystore"),
	}
	if cfg.Account != "" {
		if !common.IsHexAddress(cfg.Account) {
			return nil, fmt.Errorf("invalid wallet account %q", cfg.Account)
		}
		w.preferred = common.HexToAddress(cfg.Account)
	}
	return w, nil
}

// RequestAccounts lists the keystore accounts, the configured account first
func (w *KeystoreWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	addrs := lo.Map(w.ks.Accounts(), func(a accounts.Account, _ int) common.Address {
		return a.Address
	})
	if w.preferred == (common.Address{}) {
		return addrs, nil
	}
	if !lo.Contains(addrs, w.preferred) {
		return nil, fmt.Errorf("account %s not found in keystore %s", w.preferred.Hex(), w.dir)
	}
	rest := lo.Without(addrs, w.preferred)
	return append([]common.Address{w.preferred}, rest...), nil
}

// Signer returns a signer for account, unlocked per transaction
func (w *KeystoreWallet) Signer(account common.Address) (models.Signer, error) {
	acc, err := w.ks.Find(accounts.Account{Address: account})
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", account.Hex(), err)
	}
	return &keystoreSigner{ks: w.ks, account: acc, passphrase: w.passphrase}, nil
}

// SubscribeAccounts re-lists the accounts whenever a key file arrives or is dropped
func (w *KeystoreWallet) SubscribeAccounts(ctx context.Context) (<-chan []common.Address, error) {
	events := make(chan accounts.WalletEvent, 8)
	sub := w.ks.Subscribe(events)
	out := make(chan []common.Address, 1)

	go func() {
		defer close(out)
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					w.log.Error("keystore subscription failed", "error", err)
				}
				return
			case ev := <-events:
				if ev.Kind != accounts.WalletArrived && ev.Kind != accounts.WalletDropped {
					continue
				}
				addrs, err := w.RequestAccounts(ctx)
				if err != nil {
					// the configured account went away
					w.log.Warn("keystore accounts changed", "error", err)
					addrs = nil
				}
				select {
				case out <- addrs:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

type keystoreSigner struct {
	ks         *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

func (s *keystoreSigner) Address() common.Address {
	return s.account.Address
}

func (s *keystoreSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := s.ks.SignTxWithPassphrase(s.account, s.passphrase, tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock %s: %w", s.account.Address.Hex(), err)
	}
	return signed, nil
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
