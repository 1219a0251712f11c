package business

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Transaction is the concrete operation an invocation authorizes: a call to
// Target with an opaque payload and a gas bound.
type Transaction struct {
	To       common.Address `json:"to"`
	GasLimit uint64         `json:"gasLimit"`
	Data     hexutil.Bytes  `json:"data"`
}

// ReplayProtection partitions a signer's invocations into independent nonce
// queues. Nonce must equal the next expected value for (signer, queue).
type ReplayProtection struct {
	Nonce uint64 `json:"nonce"`
	Queue uint64 `json:"queue"`
}

// Invocation pairs one transaction with the delegation chain that authorizes
// it. Authority is ordered delegate-most first: Authority[0] is the terminal
// delegation held by the invocation signer and the last element is the
// root-issued delegation. An empty Authority means the signer acts directly
// as a root publisher.
type Invocation struct {
	Transaction Transaction        `json:"transaction"`
	Authority   []SignedDelegation `json:"authority"`
}

// Invocations bundles a batch of invocations under a single replay-protection
// slot. The batch executes in order, all-or-nothing.
type Invocations struct {
	ReplayProtection ReplayProtection `json:"replayProtection"`
	Batch            []Invocation     `json:"batch"`
}

// SignedInvocations is an Invocations batch plus the terminal delegate's
// signature over its typed-data hash.
type SignedInvocations struct {
	Invocations Invocations   `json:"invocations"`
	Signature   hexutil.Bytes `json:"signature"`
}

// DispatchResult reports the outcome of one executed invocation.
type DispatchResult struct {
	Target          common.Address `json:"target"`
	EffectiveCaller common.Address `json:"effectiveCaller"`
	DelegationHash  *common.Hash   `json:"delegationHash,omitempty"`
}
