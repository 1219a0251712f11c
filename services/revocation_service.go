package services

import (
	"context"
	"fmt"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RevocationService tracks two kinds of revocation: an authority-wide flag
// per root publisher (toggled by the owner) and a per-delegation flag set by
// the delegator's own signed intent. Flags are read fresh on every check;
// nothing is cached.
type RevocationService struct {
	queries db.Querier
	encoder *typeddata.Encoder
	logger  *zap.Logger
}

// NewRevocationService creates a new revocation service
func NewRevocationService(queries db.Querier, encoder *typeddata.Encoder) *RevocationService {
	return &RevocationService{
		queries: queries,
		encoder: encoder,
		logger:  logger.Log,
	}
}

// RevokeAuthority sets the authority-wide revocation flag for a root
// publisher. Owner-only; the owner check happens at the admin surface.
func (s *RevocationService) RevokeAuthority(ctx context.Context, address common.Address) error {
	return s.setAuthorityRevoked(ctx, address, true)
}

// UnrevokeAuthority clears the authority-wide revocation flag. A distinct,
// explicit action so a mistakenly revoked authority can be reinstated.
func (s *RevocationService) UnrevokeAuthority(ctx context.Context, address common.Address) error {
	return s.setAuthorityRevoked(ctx, address, false)
}

func (s *RevocationService) setAuthorityRevoked(ctx context.Context, address common.Address, revoked bool) error {
	if err := s.queries.SetAuthorityRevoked(ctx, db.SetAuthorityRevokedParams{
		Address: address.Hex(),
		Revoked: revoked,
	}); err != nil {
		return fmt.Errorf("failed to update authority revocation: %w", err)
	}
	s.logger.Info("Updated authority-wide revocation",
		zap.String("event_id", uuid.New().String()),
		zap.String("address", address.Hex()),
		zap.Bool("revoked", revoked),
	)
	return nil
}

// RevokeDelegation marks a single delegation revoked. The intent must
// reference the delegation's hash and be signed by the same key that signed
// the delegation itself; anyone may relay it.
func (s *RevocationService) RevokeDelegation(ctx context.Context, sd business.SignedDelegation, intent business.SignedIntentionToRevoke) error {
	delegationHash, err := s.encoder.HashDelegation(sd.Delegation)
	if err != nil {
		return err
	}
	if intent.IntentionToRevoke.DelegationHash != delegationHash {
		return fmt.Errorf("revocation intent references %s, not delegation %s: %w",
			intent.IntentionToRevoke.DelegationHash.Hex(), delegationHash.Hex(), ErrRevocationUnauthorized)
	}

	delegator, err := s.encoder.RecoverDelegationSigner(sd)
	if err != nil {
		return err
	}
	revoker, err := s.encoder.RecoverRevocationSigner(intent)
	if err != nil {
		return err
	}
	if revoker != delegator {
		s.logger.Warn("Rejected revocation intent from non-delegator",
			zap.String("delegation_hash", delegationHash.Hex()),
			zap.String("delegator", delegator.Hex()),
			zap.String("revoker", revoker.Hex()),
		)
		return fmt.Errorf("revocation intent signer %s does not match delegator %s: %w",
			revoker.Hex(), delegator.Hex(), ErrRevocationUnauthorized)
	}

	if err := s.queries.SetDelegationRevoked(ctx, db.SetDelegationRevokedParams{
		DelegationHash: delegationHash.Hex(),
		Revoked:        true,
	}); err != nil {
		return fmt.Errorf("failed to revoke delegation: %w", err)
	}
	s.logger.Info("Revoked delegation",
		zap.String("event_id", uuid.New().String()),
		zap.String("delegation_hash", delegationHash.Hex()),
		zap.String("delegator", delegator.Hex()),
	)
	return nil
}

// IsAuthorityRevoked reports whether a root publisher's delegation authority
// is currently revoked.
func (s *RevocationService) IsAuthorityRevoked(ctx context.Context, address common.Address) (bool, error) {
	revoked, err := s.queries.IsAuthorityRevoked(ctx, address.Hex())
	if err != nil {
		return false, fmt.Errorf("failed to check authority revocation: %w", err)
	}
	return revoked, nil
}

// IsDelegationRevoked reports whether a specific delegation has been revoked.
func (s *RevocationService) IsDelegationRevoked(ctx context.Context, delegationHash common.Hash) (bool, error) {
	revoked, err := s.queries.IsDelegationRevoked(ctx, delegationHash.Hex())
	if err != nil {
		return false, fmt.Errorf("failed to check delegation revocation: %w", err)
	}
	return revoked, nil
}
