package typeddata_test

import (
	"math/big"
	"testing"

	"github.com/cyphera/delegatable/testutil"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRegistry = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	testEnforcer = common.HexToAddress("0x0000000000000000000000000000000000000101")
)

func newTestEncoder(t *testing.T) *typeddata.Encoder {
	t.Helper()
	enc, err := typeddata.NewEncoder(typeddata.DefaultDomain(big.NewInt(1), testRegistry))
	require.NoError(t, err)
	return enc
}

func sampleDelegation(delegate common.Address) business.Delegation {
	return business.Delegation{
		Delegate:  delegate,
		Authority: common.Hash{},
		Caveats: []business.Caveat{
			{Enforcer: testEnforcer, Terms: []byte{0x01, 0x02}},
		},
	}
}

func TestNewEncoder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		domain  typeddata.Domain
		wantErr string
	}{
		{
			name:    "missing name",
			domain:  typeddata.Domain{Version: "1", ChainID: big.NewInt(1)},
			wantErr: "domain name and version are required",
		},
		{
			name:    "missing version",
			domain:  typeddata.Domain{Name: "Delegatable", ChainID: big.NewInt(1)},
			wantErr: "domain name and version are required",
		},
		{
			name:    "missing chain ID",
			domain:  typeddata.Domain{Name: "Delegatable", Version: "1"},
			wantErr: "domain chain ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := typeddata.NewEncoder(tt.domain)
			require.Error(t, err)
			var encErr *typeddata.EncodingError
			assert.ErrorAs(t, err, &encErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHashDelegation_ContentAddressing(t *testing.T) {
	enc := newTestEncoder(t)
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))

	base := sampleDelegation(delegate)
	baseHash, err := enc.HashDelegation(base)
	require.NoError(t, err)

	// Same payload hashes identically.
	again, err := enc.HashDelegation(base)
	require.NoError(t, err)
	assert.Equal(t, baseHash, again)

	// Any field change yields a different digest.
	changedDelegate := base
	changedDelegate.Delegate = testutil.AddressOf(testutil.MustKey(t, testutil.Delegate2KeyHex))
	changedAuthority := base
	changedAuthority.Authority = common.HexToHash("0x01")
	changedTerms := base
	changedTerms.Caveats = []business.Caveat{{Enforcer: testEnforcer, Terms: []byte{0xff}}}
	noCaveats := base
	noCaveats.Caveats = nil

	for name, d := range map[string]business.Delegation{
		"delegate":  changedDelegate,
		"authority": changedAuthority,
		"terms":     changedTerms,
		"caveats":   noCaveats,
	} {
		hash, err := enc.HashDelegation(d)
		require.NoError(t, err, name)
		assert.NotEqual(t, baseHash, hash, "changing %s must change the digest", name)
	}
}

func TestHashDelegation_DomainSeparation(t *testing.T) {
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))
	d := sampleDelegation(delegate)

	enc1 := newTestEncoder(t)
	enc2, err := typeddata.NewEncoder(typeddata.DefaultDomain(big.NewInt(5), testRegistry))
	require.NoError(t, err)
	enc3, err := typeddata.NewEncoder(typeddata.Domain{
		Name:              "SomethingElse",
		Version:           "1",
		ChainID:           big.NewInt(1),
		VerifyingContract: testRegistry,
	})
	require.NoError(t, err)

	h1, err := enc1.HashDelegation(d)
	require.NoError(t, err)
	h2, err := enc2.HashDelegation(d)
	require.NoError(t, err)
	h3, err := enc3.HashDelegation(d)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "different chain IDs must not share digests")
	assert.NotEqual(t, h1, h3, "different domain names must not share digests")
}

func TestSignAndRecover_Delegation(t *testing.T) {
	enc := newTestEncoder(t)
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))

	signed, err := enc.SignDelegation(rootKey, sampleDelegation(delegate))
	require.NoError(t, err)

	signer, err := enc.RecoverDelegationSigner(signed)
	require.NoError(t, err)
	assert.Equal(t, testutil.AddressOf(rootKey), signer)
}

func TestSignAndRecover_Invocations(t *testing.T) {
	enc := newTestEncoder(t)
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)
	delegateKey := testutil.MustKey(t, testutil.Delegate1KeyHex)

	signedDelegation, err := enc.SignDelegation(rootKey, sampleDelegation(testutil.AddressOf(delegateKey)))
	require.NoError(t, err)

	inv := business.Invocations{
		ReplayProtection: business.ReplayProtection{Nonce: 0, Queue: 0},
		Batch: []business.Invocation{
			{
				Transaction: business.Transaction{
					To:       testRegistry,
					GasLimit: 500000,
					Data:     []byte{0xa9, 0x05, 0x9c, 0xbb},
				},
				Authority: []business.SignedDelegation{signedDelegation},
			},
		},
	}

	signed, err := enc.SignInvocations(delegateKey, inv)
	require.NoError(t, err)

	signer, err := enc.RecoverInvocationsSigner(signed)
	require.NoError(t, err)
	assert.Equal(t, testutil.AddressOf(delegateKey), signer)

	// Tamper with the batch after signing; the recovered identity changes.
	tampered := signed
	tampered.Invocations.ReplayProtection.Nonce = 7
	other, err := enc.RecoverInvocationsSigner(tampered)
	require.NoError(t, err)
	assert.NotEqual(t, testutil.AddressOf(delegateKey), other)
}

func TestSignAndRecover_IntentionToRevoke(t *testing.T) {
	enc := newTestEncoder(t)
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)

	signed, err := enc.SignIntentionToRevoke(rootKey, business.IntentionToRevoke{
		DelegationHash: common.HexToHash("0xdeadbeef"),
	})
	require.NoError(t, err)

	signer, err := enc.RecoverRevocationSigner(signed)
	require.NoError(t, err)
	assert.Equal(t, testutil.AddressOf(rootKey), signer)
}

func TestRecover_LegacyRecoveryID(t *testing.T) {
	enc := newTestEncoder(t)
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))

	signed, err := enc.SignDelegation(rootKey, sampleDelegation(delegate))
	require.NoError(t, err)

	// Wallets emit v in {27, 28}; the recovery path must accept both forms.
	legacy := make([]byte, len(signed.Signature))
	copy(legacy, signed.Signature)
	legacy[64] += 27
	signed.Signature = legacy

	signer, err := enc.RecoverDelegationSigner(signed)
	require.NoError(t, err)
	assert.Equal(t, testutil.AddressOf(rootKey), signer)
}

func TestRecover_BadSignatureLength(t *testing.T) {
	enc := newTestEncoder(t)
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))

	_, err := enc.RecoverDelegationSigner(business.SignedDelegation{
		Delegation: sampleDelegation(delegate),
		Signature:  []byte{0x01, 0x02, 0x03},
	})
	require.Error(t, err)
	var encErr *typeddata.EncodingError
	assert.ErrorAs(t, err, &encErr)
}
