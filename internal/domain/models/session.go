package models

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer is the signing capability bound to one account
type Signer interface {
	Address() common.Address
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// SessionState is an immutable view of the connected session. A new value is
// produced for every account change; Generation increases each time.
type SessionState struct {
	Identity   common.Address
	Signer     Signer
	Generation uint64
}

// Connected reports whether the session has an identity
func (s SessionState) Connected() bool {
	return s.Identity != (common.Address{})
}
