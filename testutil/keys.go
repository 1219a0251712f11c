package testutil

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Deterministic test keys so hashes and recovered addresses are stable
// across runs. Never use outside tests.
const (
	RootKeyHex      = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	Delegate1KeyHex = "8a1f9a8f95be41cd7ccb6168179afb4504aefe388d1e14474d32c45c72ce7b7a"
	Delegate2KeyHex = "0dbbe8e4ae425a6d2687f1a7e3ba17bc98c673636790f1b8ad91193c05875ef1"
	RelayerKeyHex   = "c88b703fb08cbea894b6aeff5a544fb92e78a18e19814cd85da83b71f772aa6c"
)

// MustKey parses a hex private key or fails the test.
func MustKey(t *testing.T, hexKey string) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		t.Fatalf("failed to parse test key: %v", err)
	}
	return key
}

// AddressOf returns the address controlled by a private key.
func AddressOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
