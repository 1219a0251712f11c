package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/helpers"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TargetOperation is the guarded entry point of an external collaborator the
// dispatcher forwards transactions to. The effective caller resolved from the
// delegation chain is passed explicitly; the target must treat it, not the
// literal submitter, as the authorization subject. Writes go through q so a
// batch rolls back wholesale.
type TargetOperation interface {
	Execute(ctx context.Context, q db.Querier, effectiveCaller common.Address, tx business.Transaction) error
}

// DispatcherService validates a signed invocation batch, resolves the
// effective caller for each item through the chain verifier, and forwards
// each transaction to its registered target. The batch is all-or-nothing.
//
// The replay nonce is consumed and committed before batch execution starts.
// A batch that later fails does not give the nonce back; the signer retries
// a corrected invocation with the next nonce.
type DispatcherService struct {
	queries  db.Querier
	pool     *pgxpool.Pool
	encoder  *typeddata.Encoder
	verifier *ChainVerifierService
	replay   *ReplayGuardService
	targets  map[common.Address]TargetOperation
	logger   *zap.Logger
}

// NewDispatcherService creates a new dispatcher service. pool may be nil, in
// which case batch writes run without a transactional boundary (unit tests);
// any production wiring passes the pool so a failed batch rolls back.
func NewDispatcherService(
	queries db.Querier,
	pool *pgxpool.Pool,
	encoder *typeddata.Encoder,
	verifier *ChainVerifierService,
	replay *ReplayGuardService,
) *DispatcherService {
	return &DispatcherService{
		queries:  queries,
		pool:     pool,
		encoder:  encoder,
		verifier: verifier,
		replay:   replay,
		targets:  make(map[common.Address]TargetOperation),
		logger:   logger.Log,
	}
}

// RegisterTarget binds a target operation to the address transactions name.
func (s *DispatcherService) RegisterTarget(address common.Address, target TargetOperation) {
	s.targets[address] = target
}

// Dispatch executes a signed invocation batch. Returns one result per batch
// item on success; on any failure no batch effect is observable.
func (s *DispatcherService) Dispatch(ctx context.Context, si business.SignedInvocations) ([]business.DispatchResult, error) {
	signer, err := s.encoder.RecoverInvocationsSigner(si)
	if err != nil {
		return nil, err
	}

	rp := si.Invocations.ReplayProtection
	if err := s.replay.CheckAndConsume(ctx, signer, rp.Queue, rp.Nonce); err != nil {
		return nil, err
	}

	s.logger.Info("Dispatching invocation batch",
		zap.String("signer", signer.Hex()),
		zap.Uint64("queue", rp.Queue),
		zap.Uint64("nonce", rp.Nonce),
		zap.Int("batch_size", len(si.Invocations.Batch)),
	)

	var results []business.DispatchResult
	if s.pool != nil {
		err = helpers.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
			var batchErr error
			results, batchErr = s.dispatchBatch(ctx, db.New(tx), signer, si.Invocations.Batch)
			return batchErr
		})
	} else {
		results, err = s.dispatchBatch(ctx, s.queries, signer, si.Invocations.Batch)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// dispatchBatch runs every (chain, transaction) pair in order. The first
// failure aborts; the caller's transactional boundary discards any effects
// of earlier pairs.
func (s *DispatcherService) dispatchBatch(ctx context.Context, q db.Querier, signer common.Address, batch []business.Invocation) ([]business.DispatchResult, error) {
	results := make([]business.DispatchResult, 0, len(batch))
	for i, item := range batch {
		// The submitter must actually hold the terminal delegation.
		if len(item.Authority) > 0 && item.Authority[0].Delegation.Delegate != signer {
			return nil, fmt.Errorf("batch item %d: signer %s does not hold the terminal delegation (delegate %s): %w",
				i, signer.Hex(), item.Authority[0].Delegation.Delegate.Hex(), ErrUnauthorized)
		}

		effectiveCaller, err := s.verifier.Verify(ctx, q, item.Authority, item.Transaction, signer)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}

		target, ok := s.targets[item.Transaction.To]
		if !ok {
			return nil, fmt.Errorf("batch item %d: %w", i,
				&TargetExecutionError{Cause: fmt.Errorf("no target operation registered at %s", item.Transaction.To.Hex())})
		}
		if err := target.Execute(ctx, q, effectiveCaller, item.Transaction); err != nil {
			var targetErr *TargetExecutionError
			if !errors.As(err, &targetErr) {
				err = &TargetExecutionError{Cause: err}
			}
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}

		result := business.DispatchResult{
			Target:          item.Transaction.To,
			EffectiveCaller: effectiveCaller,
		}
		if len(item.Authority) > 0 {
			hash, err := s.encoder.HashDelegation(item.Authority[0].Delegation)
			if err != nil {
				return nil, fmt.Errorf("batch item %d: %w", i, err)
			}
			result.DelegationHash = &hash
		}
		results = append(results, result)
	}
	return results, nil
}
