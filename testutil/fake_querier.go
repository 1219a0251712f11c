package testutil

import (
	"context"
	"sync"

	"github.com/cyphera/delegatable/db"
	"github.com/jackc/pgx/v5"
)

// FakeQuerier is an in-memory db.Querier for stateful end-to-end scenarios
// where mock expectations would obscure the test. Behavior mirrors the SQL
// in db/queries.sql.go.
type FakeQuerier struct {
	mu          sync.Mutex
	publishers  map[string]bool
	authRevoked map[string]bool
	delRevoked  map[string]bool
	nonces      map[nonceKey]int64
	uses        map[string]int64
	metadata    map[metadataKey]db.ContractMetadata
}

type nonceKey struct {
	signer string
	queue  int64
}

type metadataKey struct {
	lookupKey string
	language  string
}

// NewFakeQuerier creates an empty in-memory store.
func NewFakeQuerier() *FakeQuerier {
	return &FakeQuerier{
		publishers:  make(map[string]bool),
		authRevoked: make(map[string]bool),
		delRevoked:  make(map[string]bool),
		nonces:      make(map[nonceKey]int64),
		uses:        make(map[string]int64),
		metadata:    make(map[metadataKey]db.ContractMetadata),
	}
}

func (f *FakeQuerier) AddRootPublisher(_ context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishers[address] = true
	return nil
}

func (f *FakeQuerier) RemoveRootPublisher(_ context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.publishers, address)
	return nil
}

func (f *FakeQuerier) IsRootPublisher(_ context.Context, address string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishers[address], nil
}

func (f *FakeQuerier) ListRootPublishers(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for address := range f.publishers {
		out = append(out, address)
	}
	return out, nil
}

func (f *FakeQuerier) SetAuthorityRevoked(_ context.Context, arg db.SetAuthorityRevokedParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authRevoked[arg.Address] = arg.Revoked
	return nil
}

func (f *FakeQuerier) IsAuthorityRevoked(_ context.Context, address string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authRevoked[address], nil
}

func (f *FakeQuerier) SetDelegationRevoked(_ context.Context, arg db.SetDelegationRevokedParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delRevoked[arg.DelegationHash] = arg.Revoked
	return nil
}

func (f *FakeQuerier) IsDelegationRevoked(_ context.Context, delegationHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delRevoked[delegationHash], nil
}

func (f *FakeQuerier) EnsureReplayCounter(_ context.Context, arg db.EnsureReplayCounterParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := nonceKey{arg.Signer, arg.Queue}
	if _, ok := f.nonces[key]; !ok {
		f.nonces[key] = 0
	}
	return nil
}

func (f *FakeQuerier) ConsumeNonce(_ context.Context, arg db.ConsumeNonceParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := nonceKey{arg.Signer, arg.Queue}
	next, ok := f.nonces[key]
	if !ok || next != arg.Nonce {
		return 0, nil
	}
	f.nonces[key] = next + 1
	return 1, nil
}

func (f *FakeQuerier) IncrementCaveatUses(_ context.Context, delegationHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uses[delegationHash]++
	return f.uses[delegationHash], nil
}

func (f *FakeQuerier) UpsertContractMetadata(_ context.Context, arg db.UpsertContractMetadataParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadata[metadataKey{arg.LookupKey, arg.Language}] = db.ContractMetadata{
		LookupKey:   arg.LookupKey,
		Language:    arg.Language,
		ChainID:     arg.ChainID,
		Contract:    arg.Contract,
		Method:      arg.Method,
		Description: arg.Description,
		Inputs:      arg.Inputs,
		UpdatedBy:   arg.UpdatedBy,
	}
	return nil
}

func (f *FakeQuerier) GetContractMetadata(_ context.Context, arg db.GetContractMetadataParams) (db.ContractMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.metadata[metadataKey{arg.LookupKey, arg.Language}]
	if !ok {
		return db.ContractMetadata{}, pgx.ErrNoRows
	}
	return row, nil
}

var _ db.Querier = (*FakeQuerier)(nil)
