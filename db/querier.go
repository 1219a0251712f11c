package db

import (
	"context"
)

// Querier is the storage surface the services depend on. *Queries implements
// it against Postgres; tests substitute mocks or the in-memory fake.
type Querier interface {
	AddRootPublisher(ctx context.Context, address string) error
	RemoveRootPublisher(ctx context.Context, address string) error
	IsRootPublisher(ctx context.Context, address string) (bool, error)
	ListRootPublishers(ctx context.Context) ([]string, error)

	SetAuthorityRevoked(ctx context.Context, arg SetAuthorityRevokedParams) error
	IsAuthorityRevoked(ctx context.Context, address string) (bool, error)
	SetDelegationRevoked(ctx context.Context, arg SetDelegationRevokedParams) error
	IsDelegationRevoked(ctx context.Context, delegationHash string) (bool, error)

	EnsureReplayCounter(ctx context.Context, arg EnsureReplayCounterParams) error
	ConsumeNonce(ctx context.Context, arg ConsumeNonceParams) (int64, error)

	IncrementCaveatUses(ctx context.Context, delegationHash string) (int64, error)

	UpsertContractMetadata(ctx context.Context, arg UpsertContractMetadataParams) error
	GetContractMetadata(ctx context.Context, arg GetContractMetadataParams) (ContractMetadata, error)
}

var _ Querier = (*Queries)(nil)
