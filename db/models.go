package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// RootPublisher is an identity with direct, non-delegated standing to mutate
// the registry.
type RootPublisher struct {
	Address string
	AddedAt pgtype.Timestamptz
}

// AuthorityRevocation is the authority-wide "delegation rights revoked" flag
// for one root publisher. Toggled, not append-only: unrevoking is an explicit
// owner action.
type AuthorityRevocation struct {
	Address   string
	Revoked   bool
	UpdatedAt pgtype.Timestamptz
}

// DelegationRevocation is the per-delegation revoked flag, keyed by the
// delegation's typed-data hash.
type DelegationRevocation struct {
	DelegationHash string
	Revoked        bool
	UpdatedAt      pgtype.Timestamptz
}

// ReplayNonce tracks the next expected nonce for one (signer, queue) stream.
type ReplayNonce struct {
	Signer    string
	Queue     int64
	NextNonce int64
	UpdatedAt pgtype.Timestamptz
}

// CaveatUse counts how many times a delegation has been exercised, for the
// limited-calls caveat.
type CaveatUse struct {
	DelegationHash string
	Uses           int64
}

// ContractMetadata is one registry row: the description of one contract
// method in one language.
type ContractMetadata struct {
	LookupKey   string
	Language    string
	ChainID     string
	Contract    string
	Method      string
	Description string
	Inputs      []byte
	UpdatedBy   string
	UpdatedAt   pgtype.Timestamptz
}
