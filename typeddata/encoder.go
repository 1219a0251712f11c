// Package typeddata builds the canonical EIP-712 representations of
// delegations, invocation batches, and revocation intents, and recovers
// signer identities from signatures over their digests. Any standard EIP-712
// signer (wallet tooling, ethers, etc.) can produce signatures this package
// accepts, given the same domain.
package typeddata

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/cyphera/delegatable/constants"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Domain identifies the signing context. The same payload hashed under two
// different domains yields two different digests, which is what prevents
// cross-context replay of signed messages.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// DefaultDomain returns the engine's domain for a given chain and verifying
// contract scope.
func DefaultDomain(chainID *big.Int, verifyingContract common.Address) Domain {
	return Domain{
		Name:              constants.DomainName,
		Version:           constants.DomainVersion,
		ChainID:           chainID,
		VerifyingContract: verifyingContract,
	}
}

// delegatableTypes is the complete EIP-712 type dictionary for every payload
// the engine signs. Field order is part of the encoding; do not reorder.
var delegatableTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Caveat": {
		{Name: "enforcer", Type: "address"},
		{Name: "terms", Type: "bytes"},
	},
	"Delegation": {
		{Name: "delegate", Type: "address"},
		{Name: "authority", Type: "bytes32"},
		{Name: "caveats", Type: "Caveat[]"},
	},
	"SignedDelegation": {
		{Name: "delegation", Type: "Delegation"},
		{Name: "signature", Type: "bytes"},
	},
	"Transaction": {
		{Name: "to", Type: "address"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "data", Type: "bytes"},
	},
	"ReplayProtection": {
		{Name: "nonce", Type: "uint256"},
		{Name: "queue", Type: "uint256"},
	},
	"Invocation": {
		{Name: "transaction", Type: "Transaction"},
		{Name: "authority", Type: "SignedDelegation[]"},
	},
	"Invocations": {
		{Name: "batch", Type: "Invocation[]"},
		{Name: "replayProtection", Type: "ReplayProtection"},
	},
	"IntentionToRevoke": {
		{Name: "delegationHash", Type: "bytes32"},
	},
}

// Encoder hashes typed payloads under a fixed domain. Pure; safe for
// concurrent use.
type Encoder struct {
	domain apitypes.TypedDataDomain
}

// NewEncoder creates an encoder bound to the given domain.
func NewEncoder(domain Domain) (*Encoder, error) {
	if domain.Name == "" || domain.Version == "" {
		return nil, &EncodingError{Reason: "domain name and version are required"}
	}
	if domain.ChainID == nil {
		return nil, &EncodingError{Reason: "domain chain ID is required"}
	}
	return &Encoder{
		domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(domain.ChainID)),
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
	}, nil
}

// HashDelegation returns the domain-separated digest of a delegation. The
// digest is the chain-linking key and the revocation key for the delegation.
func (e *Encoder) HashDelegation(d business.Delegation) (common.Hash, error) {
	return e.hash("Delegation", delegationMessage(d))
}

// HashInvocations returns the domain-separated digest of an invocation batch.
func (e *Encoder) HashInvocations(inv business.Invocations) (common.Hash, error) {
	return e.hash("Invocations", invocationsMessage(inv))
}

// HashIntentionToRevoke returns the domain-separated digest of a revocation
// intent.
func (e *Encoder) HashIntentionToRevoke(r business.IntentionToRevoke) (common.Hash, error) {
	return e.hash("IntentionToRevoke", apitypes.TypedDataMessage{
		"delegationHash": r.DelegationHash.Hex(),
	})
}

// RecoverDelegationSigner recovers the delegator from a signed delegation.
func (e *Encoder) RecoverDelegationSigner(sd business.SignedDelegation) (common.Address, error) {
	digest, err := e.HashDelegation(sd.Delegation)
	if err != nil {
		return common.Address{}, err
	}
	return recoverSigner(digest, sd.Signature)
}

// RecoverInvocationsSigner recovers the submitter from a signed invocation
// batch.
func (e *Encoder) RecoverInvocationsSigner(si business.SignedInvocations) (common.Address, error) {
	digest, err := e.HashInvocations(si.Invocations)
	if err != nil {
		return common.Address{}, err
	}
	return recoverSigner(digest, si.Signature)
}

// RecoverRevocationSigner recovers the signer of a revocation intent.
func (e *Encoder) RecoverRevocationSigner(sr business.SignedIntentionToRevoke) (common.Address, error) {
	digest, err := e.HashIntentionToRevoke(sr.IntentionToRevoke)
	if err != nil {
		return common.Address{}, err
	}
	return recoverSigner(digest, sr.Signature)
}

// SignDelegation signs a delegation with the given key. Client-side helper;
// the engine itself only ever verifies.
func (e *Encoder) SignDelegation(key *ecdsa.PrivateKey, d business.Delegation) (business.SignedDelegation, error) {
	digest, err := e.HashDelegation(d)
	if err != nil {
		return business.SignedDelegation{}, err
	}
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return business.SignedDelegation{}, fmt.Errorf("failed to sign delegation: %w", err)
	}
	return business.SignedDelegation{Delegation: d, Signature: sig}, nil
}

// SignInvocations signs an invocation batch with the given key.
func (e *Encoder) SignInvocations(key *ecdsa.PrivateKey, inv business.Invocations) (business.SignedInvocations, error) {
	digest, err := e.HashInvocations(inv)
	if err != nil {
		return business.SignedInvocations{}, err
	}
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return business.SignedInvocations{}, fmt.Errorf("failed to sign invocations: %w", err)
	}
	return business.SignedInvocations{Invocations: inv, Signature: sig}, nil
}

// SignIntentionToRevoke signs a revocation intent with the given key.
func (e *Encoder) SignIntentionToRevoke(key *ecdsa.PrivateKey, r business.IntentionToRevoke) (business.SignedIntentionToRevoke, error) {
	digest, err := e.HashIntentionToRevoke(r)
	if err != nil {
		return business.SignedIntentionToRevoke{}, err
	}
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return business.SignedIntentionToRevoke{}, fmt.Errorf("failed to sign revocation intent: %w", err)
	}
	return business.SignedIntentionToRevoke{IntentionToRevoke: r, Signature: sig}, nil
}

// hash runs the full EIP-712 encoding: keccak256(0x1901 || domainSeparator ||
// hashStruct(primaryType, message)).
func (e *Encoder) hash(primaryType string, message apitypes.TypedDataMessage) (common.Hash, error) {
	typed := apitypes.TypedData{
		Types:       delegatableTypes,
		PrimaryType: primaryType,
		Domain:      e.domain,
		Message:     message,
	}
	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return common.Hash{}, &EncodingError{Reason: fmt.Sprintf("failed to encode %s", primaryType), Cause: err}
	}
	return common.BytesToHash(digest), nil
}

func delegationMessage(d business.Delegation) apitypes.TypedDataMessage {
	caveats := make([]interface{}, len(d.Caveats))
	for i, c := range d.Caveats {
		caveats[i] = map[string]interface{}{
			"enforcer": c.Enforcer.Hex(),
			"terms":    hexutil.Encode(c.Terms),
		}
	}
	return apitypes.TypedDataMessage{
		"delegate":  d.Delegate.Hex(),
		"authority": d.Authority.Hex(),
		"caveats":   caveats,
	}
}

func transactionMessage(tx business.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"to":       tx.To.Hex(),
		"gasLimit": (*math.HexOrDecimal256)(new(big.Int).SetUint64(tx.GasLimit)),
		"data":     hexutil.Encode(tx.Data),
	}
}

func invocationsMessage(inv business.Invocations) apitypes.TypedDataMessage {
	batch := make([]interface{}, len(inv.Batch))
	for i, item := range inv.Batch {
		authority := make([]interface{}, len(item.Authority))
		for j, sd := range item.Authority {
			authority[j] = map[string]interface{}{
				"delegation": map[string]interface{}(delegationMessage(sd.Delegation)),
				"signature":  hexutil.Encode(sd.Signature),
			}
		}
		batch[i] = map[string]interface{}{
			"transaction": transactionMessage(item.Transaction),
			"authority":   authority,
		}
	}
	return apitypes.TypedDataMessage{
		"batch": batch,
		"replayProtection": map[string]interface{}{
			"nonce": (*math.HexOrDecimal256)(new(big.Int).SetUint64(inv.ReplayProtection.Nonce)),
			"queue": (*math.HexOrDecimal256)(new(big.Int).SetUint64(inv.ReplayProtection.Queue)),
		},
	}
}

// recoverSigner recovers the address that produced sig over digest. Accepts
// both the raw {0,1} and the Ethereum-legacy {27,28} recovery identifiers so
// wallet-produced signatures verify without adjustment by the caller.
func recoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, &EncodingError{Reason: fmt.Sprintf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))}
	}
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
