package services

import (
	"context"
	"fmt"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/constants"
	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ChainVerifierService walks a chain of signed delegations from the terminal
// delegate back to a root authority, checking signatures, link continuity,
// caveats, and revocation state. Chains are bounded and walked iteratively;
// an authority pointer is only ever compared against the single expected
// parent hash, so cycles cannot form.
type ChainVerifierService struct {
	encoder *typeddata.Encoder
	caveats *caveats.Registry
	logger  *zap.Logger
}

// NewChainVerifierService creates a new chain verifier service
func NewChainVerifierService(encoder *typeddata.Encoder, registry *caveats.Registry) *ChainVerifierService {
	return &ChainVerifierService{
		encoder: encoder,
		caveats: registry,
		logger:  logger.Log,
	}
}

// Verify resolves the effective caller for one transaction. The chain is
// ordered delegate-most first; an empty chain means the submitter acts
// directly and must itself be an authorized, unrevoked root publisher.
//
// Reads and caveat-state writes go through q, so when the dispatcher runs a
// batch inside a transaction a later abort discards them.
func (s *ChainVerifierService) Verify(ctx context.Context, q db.Querier, chain []business.SignedDelegation, tx business.Transaction, submitter common.Address) (common.Address, error) {
	if len(chain) == 0 {
		if err := s.requireAuthorizedRoot(ctx, q, submitter); err != nil {
			return common.Address{}, err
		}
		return submitter, nil
	}
	if len(chain) > constants.MaxChainLength {
		return common.Address{}, fmt.Errorf("chain of %d links exceeds bound of %d: %w",
			len(chain), constants.MaxChainLength, ErrChainTooLong)
	}

	hashes := make([]common.Hash, len(chain))
	for i, sd := range chain {
		hash, err := s.encoder.HashDelegation(sd.Delegation)
		if err != nil {
			return common.Address{}, err
		}
		hashes[i] = hash
	}

	var root common.Address
	for i, sd := range chain {
		signer, err := s.encoder.RecoverDelegationSigner(sd)
		if err != nil {
			return common.Address{}, err
		}

		if i < len(chain)-1 {
			// Inner link: its authority must be the next (root-ward)
			// delegation's hash, and it must be signed by the delegate that
			// delegation names. This is the unbroken chain of custody.
			if sd.Delegation.Authority != hashes[i+1] {
				return common.Address{}, fmt.Errorf("link %d authority %s does not reference parent delegation %s: %w",
					i, sd.Delegation.Authority.Hex(), hashes[i+1].Hex(), ErrUnauthorized)
			}
			if signer != chain[i+1].Delegation.Delegate {
				return common.Address{}, fmt.Errorf("link %d signed by %s, parent delegates to %s: %w",
					i, signer.Hex(), chain[i+1].Delegation.Delegate.Hex(), ErrUnauthorized)
			}
		} else {
			// Root-most link: must be issued directly by a root authority.
			if !sd.Delegation.IsRootIssued() {
				return common.Address{}, fmt.Errorf("chain does not terminate at a root-issued delegation: %w", ErrUnauthorized)
			}
			root = signer
		}

		// Caveats run in list order; the first failure aborts.
		for _, caveat := range sd.Delegation.Caveats {
			if err := s.caveats.Enforce(ctx, q, caveat, tx, hashes[i]); err != nil {
				s.logger.Debug("Caveat blocked delegation",
					zap.Int("link", i),
					zap.String("delegation_hash", hashes[i].Hex()),
					zap.String("enforcer", caveat.Enforcer.Hex()),
					zap.Error(err),
				)
				return common.Address{}, err
			}
		}

		revoked, err := q.IsDelegationRevoked(ctx, hashes[i].Hex())
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to check delegation revocation: %w", err)
		}
		if revoked {
			return common.Address{}, fmt.Errorf("delegation %s is revoked: %w", hashes[i].Hex(), ErrRevocationUnauthorized)
		}
	}

	if err := s.requireAuthorizedRoot(ctx, q, root); err != nil {
		return common.Address{}, err
	}
	return root, nil
}

// requireAuthorizedRoot checks the identity is a current root publisher whose
// delegation authority has not been revoked.
func (s *ChainVerifierService) requireAuthorizedRoot(ctx context.Context, q db.Querier, root common.Address) error {
	isPublisher, err := q.IsRootPublisher(ctx, root.Hex())
	if err != nil {
		return fmt.Errorf("failed to check root publisher: %w", err)
	}
	if !isPublisher {
		return fmt.Errorf("%s is not an authorized root publisher: %w", root.Hex(), ErrUnauthorized)
	}
	revoked, err := q.IsAuthorityRevoked(ctx, root.Hex())
	if err != nil {
		return fmt.Errorf("failed to check authority revocation: %w", err)
	}
	if revoked {
		return fmt.Errorf("authority of %s is revoked: %w", root.Hex(), ErrUnauthorized)
	}
	return nil
}
