package wallet

import (
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// ProvideWallet builds the configured wallet. It returns a nil provider when
// no wallet is configured so that connecting fails with ErrNoWalletAvailable
// while read-only commands keep working.
func ProvideWallet(cfg *config.RuntimeConfig, log *slog.Logger) (usecase.WalletProvider, error) {
	switch cfg.Wallet.Type {
	case config.WalletTypeNone:
		return nil, nil
	case config.WalletTypeKeystore:
		w, err := NewKeystoreWallet(cfg.Wallet, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.WalletTypePrivateKey:
		if cfg.Wallet.PrivateKey == "" {
			return nil, fmt.Errorf("private_key wallet requires private_key")
		}
		w, err := NewPrivateKeyWallet(cfg.Wallet.PrivateKey)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown wallet type %q", cfg.Wallet.Type)
	}
}
