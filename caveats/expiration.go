package caveats

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// ExpirationEnforcer blocks a delegation once the ambient time reaches the
// unix timestamp encoded in its terms. Terms are a 32-byte big-endian
// unsigned integer, matching how an on-chain enforcer would receive them.
type ExpirationEnforcer struct {
	// Now supplies the ambient time; overridable in tests.
	Now func() time.Time
}

// NewExpirationEnforcer creates an expiration enforcer using the host clock.
func NewExpirationEnforcer() *ExpirationEnforcer {
	return &ExpirationEnforcer{Now: time.Now}
}

// Enforce fails with "expired" unless the current time is strictly before
// the limit in terms.
func (e *ExpirationEnforcer) Enforce(_ context.Context, _ UseCounter, terms []byte, _ business.Transaction, _ common.Hash) error {
	limit, err := termsToUint64(terms)
	if err != nil {
		return err
	}
	if uint64(e.Now().Unix()) >= limit {
		return errors.New("expired")
	}
	return nil
}

// termsToUint64 decodes 32-byte big-endian terms into a uint64, rejecting
// values that overflow.
func termsToUint64(terms []byte) (uint64, error) {
	if len(terms) != 32 {
		return 0, fmt.Errorf("terms must be 32 bytes, got %d", len(terms))
	}
	v := new(big.Int).SetBytes(terms)
	if !v.IsUint64() {
		return 0, errors.New("terms value out of range")
	}
	return v.Uint64(), nil
}
