package business

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MetadataEntry describes one contract method in one language. Entries are
// keyed by (chain, contract, method selector) plus the language tag.
type MetadataEntry struct {
	ChainID     *big.Int       `json:"chainId"`
	Contract    common.Address `json:"contract"`
	Method      [4]byte        `json:"method"`
	Language    [4]byte        `json:"language"`
	Description string         `json:"description"`
	Inputs      []string       `json:"inputs"`
}
