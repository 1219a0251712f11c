package business

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Delegation is a grant of authority from its (implicit) signer to Delegate.
// Authority is either the zero hash, meaning the signer grants its own root
// authority directly, or the hash of the parent delegation the signer is
// re-delegating. Immutable once signed.
type Delegation struct {
	Delegate  common.Address `json:"delegate"`
	Authority common.Hash    `json:"authority"`
	Caveats   []Caveat       `json:"caveats"`
}

// IsRootIssued reports whether this delegation was issued directly by a root
// authority rather than re-delegating a parent delegation.
func (d Delegation) IsRootIssued() bool {
	return d.Authority == (common.Hash{})
}

// Caveat attaches a precondition to a delegation. Enforcer identifies the
// registered enforcer that interprets Terms; caveats run in list order and
// the first failure aborts verification.
type Caveat struct {
	Enforcer common.Address `json:"enforcer"`
	Terms    hexutil.Bytes  `json:"terms"`
}

// SignedDelegation carries a delegation and its delegator's EIP-712 signature
// over the delegation's typed-data hash. Produced once, reused across many
// invocations until revoked.
type SignedDelegation struct {
	Delegation Delegation    `json:"delegation"`
	Signature  hexutil.Bytes `json:"signature"`
}

// IntentionToRevoke is the payload a delegator signs to revoke one of its
// previously issued delegations.
type IntentionToRevoke struct {
	DelegationHash common.Hash `json:"delegationHash"`
}

// SignedIntentionToRevoke is an IntentionToRevoke plus the delegator's
// signature over its typed-data hash.
type SignedIntentionToRevoke struct {
	IntentionToRevoke IntentionToRevoke `json:"intentionToRevoke"`
	Signature         hexutil.Bytes     `json:"signature"`
}
