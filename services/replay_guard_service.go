package services

import (
	"context"
	"fmt"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ReplayGuardService enforces strict per-(signer, queue) nonce usage. The
// provided nonce must equal the next expected value; on success the counter
// advances by one and the write is durable before any invocation side effect
// is allowed to happen.
//
// Consumption is a single conditional update, so concurrent submissions of
// the same nonce serialize on the counter row and exactly one can win.
type ReplayGuardService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewReplayGuardService creates a new replay guard service
func NewReplayGuardService(queries db.Querier) *ReplayGuardService {
	return &ReplayGuardService{
		queries: queries,
		logger:  logger.Log,
	}
}

// CheckAndConsume verifies the nonce is the next expected value for the
// signer's queue and advances the counter. Fails with ErrReplayRejected on
// any mismatch, reuse and gaps alike.
func (s *ReplayGuardService) CheckAndConsume(ctx context.Context, signer common.Address, queue, nonce uint64) error {
	if err := s.queries.EnsureReplayCounter(ctx, db.EnsureReplayCounterParams{
		Signer: signer.Hex(),
		Queue:  int64(queue),
	}); err != nil {
		return fmt.Errorf("failed to initialize replay counter: %w", err)
	}

	affected, err := s.queries.ConsumeNonce(ctx, db.ConsumeNonceParams{
		Signer: signer.Hex(),
		Queue:  int64(queue),
		Nonce:  int64(nonce),
	})
	if err != nil {
		return fmt.Errorf("failed to consume nonce: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("Rejected replayed or out-of-order invocation",
			zap.String("signer", signer.Hex()),
			zap.Uint64("queue", queue),
			zap.Uint64("nonce", nonce),
		)
		return fmt.Errorf("nonce %d is not the next nonce for signer %s queue %d: %w",
			nonce, signer.Hex(), queue, ErrReplayRejected)
	}

	s.logger.Debug("Consumed invocation nonce",
		zap.String("signer", signer.Hex()),
		zap.Uint64("queue", queue),
		zap.Uint64("nonce", nonce),
	)
	return nil
}
