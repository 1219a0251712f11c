package db

import (
	"context"
)

const addRootPublisher = `
INSERT INTO root_publishers (address)
VALUES ($1)
ON CONFLICT (address) DO NOTHING
`

func (q *Queries) AddRootPublisher(ctx context.Context, address string) error {
	_, err := q.db.Exec(ctx, addRootPublisher, address)
	return err
}

const removeRootPublisher = `
DELETE FROM root_publishers
WHERE address = $1
`

func (q *Queries) RemoveRootPublisher(ctx context.Context, address string) error {
	_, err := q.db.Exec(ctx, removeRootPublisher, address)
	return err
}

const isRootPublisher = `
SELECT EXISTS (
    SELECT 1 FROM root_publishers WHERE address = $1
)
`

func (q *Queries) IsRootPublisher(ctx context.Context, address string) (bool, error) {
	row := q.db.QueryRow(ctx, isRootPublisher, address)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listRootPublishers = `
SELECT address FROM root_publishers
ORDER BY address
`

func (q *Queries) ListRootPublishers(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listRootPublishers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		items = append(items, address)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setAuthorityRevoked = `
INSERT INTO authority_revocations (address, revoked, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (address) DO UPDATE
SET revoked = EXCLUDED.revoked, updated_at = now()
`

type SetAuthorityRevokedParams struct {
	Address string
	Revoked bool
}

func (q *Queries) SetAuthorityRevoked(ctx context.Context, arg SetAuthorityRevokedParams) error {
	_, err := q.db.Exec(ctx, setAuthorityRevoked, arg.Address, arg.Revoked)
	return err
}

const isAuthorityRevoked = `
SELECT COALESCE(
    (SELECT revoked FROM authority_revocations WHERE address = $1),
    false
)
`

func (q *Queries) IsAuthorityRevoked(ctx context.Context, address string) (bool, error) {
	row := q.db.QueryRow(ctx, isAuthorityRevoked, address)
	var revoked bool
	err := row.Scan(&revoked)
	return revoked, err
}

const setDelegationRevoked = `
INSERT INTO delegation_revocations (delegation_hash, revoked, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (delegation_hash) DO UPDATE
SET revoked = EXCLUDED.revoked, updated_at = now()
`

type SetDelegationRevokedParams struct {
	DelegationHash string
	Revoked        bool
}

func (q *Queries) SetDelegationRevoked(ctx context.Context, arg SetDelegationRevokedParams) error {
	_, err := q.db.Exec(ctx, setDelegationRevoked, arg.DelegationHash, arg.Revoked)
	return err
}

const isDelegationRevoked = `
SELECT COALESCE(
    (SELECT revoked FROM delegation_revocations WHERE delegation_hash = $1),
    false
)
`

func (q *Queries) IsDelegationRevoked(ctx context.Context, delegationHash string) (bool, error) {
	row := q.db.QueryRow(ctx, isDelegationRevoked, delegationHash)
	var revoked bool
	err := row.Scan(&revoked)
	return revoked, err
}

const ensureReplayCounter = `
INSERT INTO replay_nonces (signer, queue, next_nonce, updated_at)
VALUES ($1, $2, 0, now())
ON CONFLICT (signer, queue) DO NOTHING
`

type EnsureReplayCounterParams struct {
	Signer string
	Queue  int64
}

func (q *Queries) EnsureReplayCounter(ctx context.Context, arg EnsureReplayCounterParams) error {
	_, err := q.db.Exec(ctx, ensureReplayCounter, arg.Signer, arg.Queue)
	return err
}

// The conditional update is the single serialization point for a (signer,
// queue) stream: concurrent submissions of the same nonce contend on the
// row lock and only one matches the WHERE clause.
const consumeNonce = `
UPDATE replay_nonces
SET next_nonce = next_nonce + 1, updated_at = now()
WHERE signer = $1 AND queue = $2 AND next_nonce = $3
`

type ConsumeNonceParams struct {
	Signer string
	Queue  int64
	Nonce  int64
}

func (q *Queries) ConsumeNonce(ctx context.Context, arg ConsumeNonceParams) (int64, error) {
	tag, err := q.db.Exec(ctx, consumeNonce, arg.Signer, arg.Queue, arg.Nonce)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const incrementCaveatUses = `
INSERT INTO caveat_uses (delegation_hash, uses)
VALUES ($1, 1)
ON CONFLICT (delegation_hash) DO UPDATE
SET uses = caveat_uses.uses + 1
RETURNING uses
`

func (q *Queries) IncrementCaveatUses(ctx context.Context, delegationHash string) (int64, error) {
	row := q.db.QueryRow(ctx, incrementCaveatUses, delegationHash)
	var uses int64
	err := row.Scan(&uses)
	return uses, err
}

const upsertContractMetadata = `
INSERT INTO contract_metadata (
    lookup_key, language, chain_id, contract, method,
    description, inputs, updated_by, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (lookup_key, language) DO UPDATE
SET description = EXCLUDED.description,
    inputs = EXCLUDED.inputs,
    updated_by = EXCLUDED.updated_by,
    updated_at = now()
`

type UpsertContractMetadataParams struct {
	LookupKey   string
	Language    string
	ChainID     string
	Contract    string
	Method      string
	Description string
	Inputs      []byte
	UpdatedBy   string
}

func (q *Queries) UpsertContractMetadata(ctx context.Context, arg UpsertContractMetadataParams) error {
	_, err := q.db.Exec(ctx, upsertContractMetadata,
		arg.LookupKey,
		arg.Language,
		arg.ChainID,
		arg.Contract,
		arg.Method,
		arg.Description,
		arg.Inputs,
		arg.UpdatedBy,
	)
	return err
}

const getContractMetadata = `
SELECT lookup_key, language, chain_id, contract, method,
       description, inputs, updated_by, updated_at
FROM contract_metadata
WHERE lookup_key = $1 AND language = $2
`

type GetContractMetadataParams struct {
	LookupKey string
	Language  string
}

func (q *Queries) GetContractMetadata(ctx context.Context, arg GetContractMetadataParams) (ContractMetadata, error) {
	row := q.db.QueryRow(ctx, getContractMetadata, arg.LookupKey, arg.Language)
	var i ContractMetadata
	err := row.Scan(
		&i.LookupKey,
		&i.Language,
		&i.ChainID,
		&i.Contract,
		&i.Method,
		&i.Description,
		&i.Inputs,
		&i.UpdatedBy,
		&i.UpdatedAt,
	)
	return i, err
}
