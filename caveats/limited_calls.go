package caveats

import (
	"context"
	"fmt"

	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// LimitedCallsEnforcer caps how many times a delegation may be used. Terms
// are a 32-byte big-endian maximum use count; the per-delegation counter is
// written through the per-call store, so a counted use shares the caller's
// transactional boundary and the cap holds across restarts.
type LimitedCallsEnforcer struct{}

func (LimitedCallsEnforcer) Enforce(ctx context.Context, store UseCounter, terms []byte, _ business.Transaction, delegationHash common.Hash) error {
	limit, err := termsToUint64(terms)
	if err != nil {
		return err
	}
	uses, err := store.IncrementCaveatUses(ctx, delegationHash.Hex())
	if err != nil {
		return fmt.Errorf("failed to record delegation use: %w", err)
	}
	if uint64(uses) > limit {
		return fmt.Errorf("delegation use limit of %d exhausted", limit)
	}
	return nil
}
