// Package caveats implements the pluggable precondition checks that
// delegations attach to constrain how they may be used. Each enforcer is a
// pure predicate over its terms, the transaction being authorized, and the
// hash of the delegation carrying the caveat.
package caveats

import (
	"context"
	"fmt"
	"sync"

	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// UseCounter persists how many times a delegation has been exercised. The
// db.Querier satisfies it; callers pass their transaction-scoped queries so
// counted uses roll back together with an aborted batch.
type UseCounter interface {
	IncrementCaveatUses(ctx context.Context, delegationHash string) (int64, error)
}

// Enforcer checks one caveat kind. Implementations must not mutate their
// inputs and may only read ambient state the caveat kind requires (e.g. the
// current time for expirations). Stateful kinds write through store; pure
// kinds ignore it. A non-nil error blocks the delegation.
type Enforcer interface {
	Enforce(ctx context.Context, store UseCounter, terms []byte, tx business.Transaction, delegationHash common.Hash) error
}

// CaveatError reports which enforcer rejected a transaction and why.
type CaveatError struct {
	Enforcer common.Address
	Reason   string
}

func (e *CaveatError) Error() string {
	return fmt.Sprintf("caveat failed: enforcer %s: %s", e.Enforcer.Hex(), e.Reason)
}

// Registry maps enforcer addresses to their implementations. New variants
// register here; the Enforcer contract itself never changes.
type Registry struct {
	mu        sync.RWMutex
	enforcers map[common.Address]Enforcer
}

// NewRegistry creates an empty enforcer registry.
func NewRegistry() *Registry {
	return &Registry{enforcers: make(map[common.Address]Enforcer)}
}

// Register binds an enforcer implementation to its address. Later
// registrations under the same address replace earlier ones.
func (r *Registry) Register(address common.Address, enforcer Enforcer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enforcers[address] = enforcer
}

// Enforce runs the caveat against the transaction. An unregistered enforcer
// address fails closed: a caveat nobody can interpret must block, not pass.
func (r *Registry) Enforce(ctx context.Context, store UseCounter, caveat business.Caveat, tx business.Transaction, delegationHash common.Hash) error {
	r.mu.RLock()
	enforcer, ok := r.enforcers[caveat.Enforcer]
	r.mu.RUnlock()

	if !ok {
		return &CaveatError{Enforcer: caveat.Enforcer, Reason: "no enforcer registered at this address"}
	}
	if err := enforcer.Enforce(ctx, store, caveat.Terms, tx, delegationHash); err != nil {
		if cavErr, isCaveat := err.(*CaveatError); isCaveat {
			return cavErr
		}
		return &CaveatError{Enforcer: caveat.Enforcer, Reason: err.Error()}
	}
	return nil
}
