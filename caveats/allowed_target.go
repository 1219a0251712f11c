package caveats

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// AllowedTargetEnforcer restricts a delegation to transactions against a
// single target address. Terms are the 20-byte target.
type AllowedTargetEnforcer struct{}

func (AllowedTargetEnforcer) Enforce(_ context.Context, _ UseCounter, terms []byte, tx business.Transaction, _ common.Hash) error {
	if len(terms) != common.AddressLength {
		return fmt.Errorf("terms must be %d bytes, got %d", common.AddressLength, len(terms))
	}
	allowed := common.BytesToAddress(terms)
	if tx.To != allowed {
		return fmt.Errorf("target %s is not the allowed target %s", tx.To.Hex(), allowed.Hex())
	}
	return nil
}

// AllowedMethodEnforcer restricts a delegation to calls whose payload starts
// with a single 4-byte method selector.
type AllowedMethodEnforcer struct{}

func (AllowedMethodEnforcer) Enforce(_ context.Context, _ UseCounter, terms []byte, tx business.Transaction, _ common.Hash) error {
	if len(terms) != 4 {
		return fmt.Errorf("terms must be 4 bytes, got %d", len(terms))
	}
	if len(tx.Data) < 4 {
		return fmt.Errorf("transaction data too short for a method selector")
	}
	if !bytes.Equal(tx.Data[:4], terms) {
		return fmt.Errorf("method %#x is not the allowed method %#x", tx.Data[:4], terms)
	}
	return nil
}
