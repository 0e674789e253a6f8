package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CodeReader reads deployed bytecode
type CodeReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// CheckerAdapter checks that configured contracts are deployed
type CheckerAdapter struct {
	client CodeReader
}

// NewCheckerAdapter creates a new contract checker adapter
func NewCheckerAdapter(client CodeReader) *CheckerAdapter {
	return &CheckerAdapter{client: client}
}

// CheckCode checks if a contract exists at the given address. A failed
// lookup is reported as a reason, not an error.
func (c *CheckerAdapter) CheckCode(ctx context.Context, address common.Address) (deployed bool, reason string, err error) {
	if address == (common.Address{}) {
		return false, "address not configured", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}
