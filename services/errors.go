package services

import (
	"errors"
	"fmt"
)

// Terminal error classes for a dispatch. None are retried internally;
// resubmission (with a corrected nonce, fresh delegation, etc.) is the
// caller's responsibility.
var (
	// ErrUnauthorized covers a root that is not an authorized publisher, an
	// authority-wide revocation, a broken chain of custody, or a failed
	// access-control check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrReplayRejected is returned when an invocation's nonce is not the
	// next expected value for its (signer, queue) stream.
	ErrReplayRejected = errors.New("replay rejected")

	// ErrChainTooLong rejects pathologically long delegation chains.
	ErrChainTooLong = errors.New("delegation chain too long")

	// ErrRevocationUnauthorized covers a revocation intent whose signer does
	// not match the delegation's signer, and any use of a revoked delegation.
	ErrRevocationUnauthorized = errors.New("revocation unauthorized")

	// ErrMetadataNotFound is returned by registry lookups with no match.
	ErrMetadataNotFound = errors.New("metadata not found")
)

// TargetExecutionError wraps a failure inside the target operation. The
// dispatch that hit it aborts as a whole.
type TargetExecutionError struct {
	Cause error
}

func (e *TargetExecutionError) Error() string {
	return fmt.Sprintf("target execution failed: %v", e.Cause)
}

func (e *TargetExecutionError) Unwrap() error {
	return e.Cause
}
