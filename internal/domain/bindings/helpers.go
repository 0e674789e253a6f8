package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI exposes the parsed ABI for callers that need to encode outputs, such as
// test backends.
func (cryptoDevsDAO *CryptoDevsDAO) ABI() abi.ABI {
	return cryptoDevsDAO.abi
}

// ABI exposes the parsed ABI of the NFT contract
func (cryptoDevsNFT *CryptoDevsNFT) ABI() abi.ABI {
	return cryptoDevsNFT.abi
}

// MethodName resolves a 4-byte selector to the DAO method name, for logs
func (cryptoDevsDAO *CryptoDevsDAO) MethodName(calldata []byte) string {
	if len(calldata) < 4 {
		return ""
	}
	method, err := cryptoDevsDAO.abi.MethodById(calldata[:4])
	if err != nil {
		return fmt.Sprintf("0x%x", calldata[:4])
	}
	return method.Name
}
