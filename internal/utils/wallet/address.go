// Package wallet validates the addresses accounts link to their profile.
package wallet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/xssnick/tonutils-go/address"
)

const (
	ChainEthereum = "ethereum"
	ChainTON      = "ton"
)

// evmChains are the networks whose addresses share the 0x format.
var evmChains = map[string]bool{
	"":            true,
	ChainEthereum: true,
	"polygon":     true,
	"bsc":         true,
	"arbitrum":    true,
	"optimism":    true,
	"avalanche":   true,
	"base":        true,
	"fantom":      true,
}

// Normalize validates addr for chain and returns its canonical form:
// EIP-55 checksum for EVM chains, user-friendly form for TON. Addresses on
// other chains are only trimmed.
func Normalize(chain, addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	chain = strings.ToLower(chain)
	switch {
	case chain == ChainTON:
		a, err := address.ParseAddr(addr)
		if err != nil {
			return "", fmt.Errorf("invalid ton address %q: %w", addr, err)
		}
		return a.String(), nil
	case evmChains[chain]:
		if len(addr) <= 2 || !common.IsHexAddress(addr) {
			return "", fmt.Errorf("invalid evm address %q", addr)
		}
		return common.HexToAddress(addr).Hex(), nil
	default:
		if addr == "" {
			return "", fmt.Errorf("empty %s address", chain)
		}
		return addr, nil
	}
}

// IsEVM reports whether addr is a well formed 0x address.
func IsEVM(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}
