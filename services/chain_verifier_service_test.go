package services_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"testing"
	"time"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/services"
	"github.com/cyphera/delegatable/testutil"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustSignDelegation signs or fails the test.
func mustSignDelegation(t *testing.T, enc *typeddata.Encoder, key *ecdsa.PrivateKey, d business.Delegation) business.SignedDelegation {
	t.Helper()
	signed, err := enc.SignDelegation(key, d)
	require.NoError(t, err)
	return signed
}

// mustHashDelegation hashes or fails the test.
func mustHashDelegation(t *testing.T, enc *typeddata.Encoder, d business.Delegation) common.Hash {
	t.Helper()
	hash, err := enc.HashDelegation(d)
	require.NoError(t, err)
	return hash
}

// twoLinkChain builds root -> delegate1 -> delegate2 and returns the chain in
// verification order (delegate-most first) plus per-link hashes root-ward.
func twoLinkChain(t *testing.T, enc *typeddata.Encoder, rootCaveats, innerCaveats []business.Caveat) ([]business.SignedDelegation, common.Hash, common.Hash) {
	t.Helper()
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)
	delegate1Key := testutil.MustKey(t, testutil.Delegate1KeyHex)
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))

	rootDelegation := business.Delegation{
		Delegate: testutil.AddressOf(delegate1Key),
		Caveats:  rootCaveats,
	}
	rootHash := mustHashDelegation(t, enc, rootDelegation)

	innerDelegation := business.Delegation{
		Delegate:  delegate2,
		Authority: rootHash,
		Caveats:   innerCaveats,
	}
	innerHash := mustHashDelegation(t, enc, innerDelegation)

	chain := []business.SignedDelegation{
		mustSignDelegation(t, enc, delegate1Key, innerDelegation),
		mustSignDelegation(t, enc, rootKey, rootDelegation),
	}
	return chain, rootHash, innerHash
}

func newVerifier(t *testing.T, registry *caveats.Registry) (*services.ChainVerifierService, *typeddata.Encoder) {
	t.Helper()
	enc := newEncoder(t)
	if registry == nil {
		var err error
		registry, err = caveats.DefaultRegistry()
		require.NoError(t, err)
	}
	return services.NewChainVerifierService(enc, registry), enc
}

func TestChainVerifierService_EmptyChain(t *testing.T) {
	store := testutil.NewFakeQuerier()
	verifier, _ := newVerifier(t, nil)
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))

	// A non-publisher acting directly is refused.
	_, err := verifier.Verify(ctx, store, nil, business.Transaction{}, root)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// A publisher acting directly is its own effective caller.
	require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))
	caller, err := verifier.Verify(ctx, store, nil, business.Transaction{}, root)
	require.NoError(t, err)
	assert.Equal(t, root, caller)

	// An authority-wide revocation disables direct action too.
	require.NoError(t, store.SetAuthorityRevoked(ctx, setAuthorityRevoked(root, true)))
	_, err = verifier.Verify(ctx, store, nil, business.Transaction{}, root)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestChainVerifierService_ValidTwoLinkChain(t *testing.T) {
	store := testutil.NewFakeQuerier()
	verifier, enc := newVerifier(t, nil)
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))

	require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))
	chain, _, _ := twoLinkChain(t, enc, nil, nil)

	caller, err := verifier.Verify(ctx, store, chain, business.Transaction{To: registryAddress}, delegate2)
	require.NoError(t, err)
	assert.Equal(t, root, caller, "the effective caller is the root authority, not the submitter")
}

func TestChainVerifierService_BrokenContinuity(t *testing.T) {
	store := testutil.NewFakeQuerier()
	verifier, enc := newVerifier(t, nil)
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))

	t.Run("authority does not reference the parent", func(t *testing.T) {
		chain, _, _ := twoLinkChain(t, enc, nil, nil)
		tampered := chain[0].Delegation
		tampered.Authority = common.HexToHash("0x0badc0de")
		chain[0] = mustSignDelegation(t, enc, testutil.MustKey(t, testutil.Delegate1KeyHex), tampered)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, tampered.Delegate)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("inner link signed by the wrong key", func(t *testing.T) {
		chain, _, _ := twoLinkChain(t, enc, nil, nil)
		// Delegate2 signs the link that only delegate1 may sign.
		chain[0] = mustSignDelegation(t, enc, testutil.MustKey(t, testutil.Delegate2KeyHex), chain[0].Delegation)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, chain[0].Delegation.Delegate)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("chain does not terminate at a root-issued delegation", func(t *testing.T) {
		chain, _, _ := twoLinkChain(t, enc, nil, nil)
		// Drop the root-most link; the remaining link's authority dangles.
		_, err := verifier.Verify(ctx, store, chain[:1], business.Transaction{}, chain[0].Delegation.Delegate)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})
}

func TestChainVerifierService_RootStanding(t *testing.T) {
	ctx := context.Background()
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))

	t.Run("root is not a publisher", func(t *testing.T) {
		store := testutil.NewFakeQuerier()
		verifier, enc := newVerifier(t, nil)
		chain, _, _ := twoLinkChain(t, enc, nil, nil)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("root authority revoked", func(t *testing.T) {
		store := testutil.NewFakeQuerier()
		verifier, enc := newVerifier(t, nil)
		require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))
		require.NoError(t, store.SetAuthorityRevoked(ctx, setAuthorityRevoked(root, true)))
		chain, _, _ := twoLinkChain(t, enc, nil, nil)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})
}

func TestChainVerifierService_RevokedLink(t *testing.T) {
	store := testutil.NewFakeQuerier()
	verifier, enc := newVerifier(t, nil)
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))
	require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))

	chain, rootHash, innerHash := twoLinkChain(t, enc, nil, nil)

	// Revoking the inner link blocks the chain.
	require.NoError(t, store.SetDelegationRevoked(ctx, setDelegationRevoked(innerHash, true)))
	_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
	assert.ErrorIs(t, err, services.ErrRevocationUnauthorized)

	// So does revoking the root-most link.
	require.NoError(t, store.SetDelegationRevoked(ctx, setDelegationRevoked(innerHash, false)))
	require.NoError(t, store.SetDelegationRevoked(ctx, setDelegationRevoked(rootHash, true)))
	_, err = verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
	assert.ErrorIs(t, err, services.ErrRevocationUnauthorized)
}

func TestChainVerifierService_ChainTooLong(t *testing.T) {
	store := testutil.NewFakeQuerier()
	verifier, _ := newVerifier(t, nil)

	chain := make([]business.SignedDelegation, 11)
	_, err := verifier.Verify(context.Background(), store, chain, business.Transaction{}, common.Address{})
	assert.ErrorIs(t, err, services.ErrChainTooLong)
}

func TestChainVerifierService_CaveatsRunInOrder(t *testing.T) {
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))

	first := common.HexToAddress("0x0000000000000000000000000000000000000201")
	second := common.HexToAddress("0x0000000000000000000000000000000000000202")
	twoCaveats := []business.Caveat{
		{Enforcer: first},
		{Enforcer: second},
	}

	t.Run("both pass in list order", func(t *testing.T) {
		store := testutil.NewFakeQuerier()
		require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))

		var order []common.Address
		registry := caveats.NewRegistry()
		registry.Register(first, recordingEnforcer{address: first, order: &order})
		registry.Register(second, recordingEnforcer{address: second, order: &order})

		verifier, enc := newVerifier(t, registry)
		chain, _, _ := twoLinkChain(t, enc, nil, twoCaveats)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
		require.NoError(t, err)
		assert.Equal(t, []common.Address{first, second}, order)
	})

	t.Run("a failing first caveat stops the walk", func(t *testing.T) {
		store := testutil.NewFakeQuerier()
		require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))

		var order []common.Address
		registry := caveats.NewRegistry()
		registry.Register(first, recordingEnforcer{address: first, order: &order, err: errors.New("blocked")})
		registry.Register(second, recordingEnforcer{address: second, order: &order})

		verifier, enc := newVerifier(t, registry)
		chain, _, _ := twoLinkChain(t, enc, nil, twoCaveats)

		_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
		var cavErr *caveats.CaveatError
		require.ErrorAs(t, err, &cavErr)
		assert.Equal(t, first, cavErr.Enforcer)
		assert.Equal(t, []common.Address{first}, order, "the second caveat never ran")
	})
}

func TestChainVerifierService_ExpiredCaveatBlocksChain(t *testing.T) {
	store := testutil.NewFakeQuerier()
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))
	require.NoError(t, store.AddRootPublisher(ctx, root.Hex()))

	// Pin the clock past the limit so the expiration fires.
	limit := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	registry := caveats.NewRegistry()
	registry.Register(caveats.ExpirationEnforcerAddress,
		&caveats.ExpirationEnforcer{Now: func() time.Time { return limit.Add(time.Hour) }})

	verifier, enc := newVerifier(t, registry)
	chain, _, _ := twoLinkChain(t, enc, []business.Caveat{
		{Enforcer: caveats.ExpirationEnforcerAddress, Terms: unixTerms(uint64(limit.Unix()))},
	}, nil)

	_, err := verifier.Verify(ctx, store, chain, business.Transaction{}, delegate2)
	var cavErr *caveats.CaveatError
	require.ErrorAs(t, err, &cavErr)
	assert.Contains(t, cavErr.Reason, "expired")
}

// Use counts are recorded against the store each Verify call receives, so a
// batch running inside a transaction discards them when it aborts.
func TestChainVerifierService_CaveatUsesFollowStore(t *testing.T) {
	ctx := context.Background()
	root := testutil.AddressOf(testutil.MustKey(t, testutil.RootKeyHex))
	delegate2 := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))

	verifier, enc := newVerifier(t, nil)
	chain, _, _ := twoLinkChain(t, enc, nil, []business.Caveat{
		{Enforcer: caveats.LimitedCallsEnforcerAddress, Terms: unixTerms(1)},
	})

	storeA := testutil.NewFakeQuerier()
	storeB := testutil.NewFakeQuerier()
	require.NoError(t, storeA.AddRootPublisher(ctx, root.Hex()))
	require.NoError(t, storeB.AddRootPublisher(ctx, root.Hex()))

	// The single allowed use is spent against storeA.
	_, err := verifier.Verify(ctx, storeA, chain, business.Transaction{}, delegate2)
	require.NoError(t, err)
	_, err = verifier.Verify(ctx, storeA, chain, business.Transaction{}, delegate2)
	var cavErr *caveats.CaveatError
	require.ErrorAs(t, err, &cavErr)
	assert.Contains(t, cavErr.Reason, "exhausted")

	// A store that never saw the use still has the full allowance.
	_, err = verifier.Verify(ctx, storeB, chain, business.Transaction{}, delegate2)
	assert.NoError(t, err)
}

// recordingEnforcer appends its address to a shared order slice.
type recordingEnforcer struct {
	address common.Address
	order   *[]common.Address
	err     error
}

func (r recordingEnforcer) Enforce(_ context.Context, _ caveats.UseCounter, _ []byte, _ business.Transaction, _ common.Hash) error {
	*r.order = append(*r.order, r.address)
	return r.err
}

func setAuthorityRevoked(address common.Address, revoked bool) db.SetAuthorityRevokedParams {
	return db.SetAuthorityRevokedParams{Address: address.Hex(), Revoked: revoked}
}

func setDelegationRevoked(hash common.Hash, revoked bool) db.SetDelegationRevokedParams {
	return db.SetDelegationRevokedParams{DelegationHash: hash.Hex(), Revoked: revoked}
}

// unixTerms encodes a uint64 as 32-byte big-endian caveat terms.
func unixTerms(unix uint64) []byte {
	terms := make([]byte, 32)
	for i := 0; i < 8; i++ {
		terms[31-i] = byte(unix >> (8 * i))
	}
	return terms
}
