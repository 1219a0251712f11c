package requests

import (
	"github.com/cyphera/delegatable/types/business"
)

// DispatchRequest submits a signed invocation batch for execution.
type DispatchRequest struct {
	SignedInvocations business.SignedInvocations `json:"signedInvocations" binding:"required"`
}

// RevokeDelegationRequest revokes a single delegation. The intent must be
// signed by the delegation's original signer.
type RevokeDelegationRequest struct {
	SignedDelegation business.SignedDelegation        `json:"signedDelegation" binding:"required"`
	SignedIntent     business.SignedIntentionToRevoke `json:"signedIntentionToRevoke" binding:"required"`
}
