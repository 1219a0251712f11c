package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// updateMetadataArgs is the ABI layout of the registry's single guarded
// operation: updateMetadata(chainId, contract, method, language,
// description, inputs).
var updateMetadataArgs abi.Arguments

// UpdateMetadataSelector is the 4-byte selector of the registry operation.
var UpdateMetadataSelector [4]byte

func init() {
	mustType := func(t string) abi.Type {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic("invalid ABI type " + t + ": " + err.Error())
		}
		return typ
	}
	updateMetadataArgs = abi.Arguments{
		{Name: "chainId", Type: mustType("uint256")},
		{Name: "contractAddress", Type: mustType("address")},
		{Name: "method", Type: mustType("bytes4")},
		{Name: "language", Type: mustType("bytes4")},
		{Name: "description", Type: mustType("string")},
		{Name: "inputs", Type: mustType("string[]")},
	}
	copy(UpdateMetadataSelector[:], crypto.Keccak256([]byte("updateMetadata(uint256,address,bytes4,bytes4,string,string[])"))[:4])
}

// RegistryService is the metadata-publishing registry: the sample target
// operation this engine guards. It stores method descriptions keyed by
// (chain, contract, method selector) and language.
type RegistryService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewRegistryService creates a new registry service
func NewRegistryService(queries db.Querier) *RegistryService {
	return &RegistryService{
		queries: queries,
		logger:  logger.Log,
	}
}

// LookupKey derives the deterministic storage key for a registry row:
// keccak256 over the chain ID (as a 32-byte word), the contract address, and
// the method selector.
func LookupKey(chainID *big.Int, contract common.Address, method [4]byte) common.Hash {
	var chainWord [32]byte
	chainID.FillBytes(chainWord[:])
	return crypto.Keccak256Hash(chainWord[:], contract.Bytes(), method[:])
}

// Execute implements TargetOperation. It decodes the forwarded call payload
// and performs the state mutation as the resolved effective caller.
func (s *RegistryService) Execute(ctx context.Context, q db.Querier, effectiveCaller common.Address, tx business.Transaction) error {
	entry, err := DecodeUpdateMetadataCall(tx.Data)
	if err != nil {
		return err
	}
	return s.UpdateMetadata(ctx, q, effectiveCaller, entry)
}

// UpdateMetadata upserts a registry row as effectiveCaller. The caller must
// be an authorized root publisher whose delegation authority is not revoked;
// the same rule holds whether the registry is invoked directly or through a
// delegation chain.
func (s *RegistryService) UpdateMetadata(ctx context.Context, q db.Querier, effectiveCaller common.Address, entry business.MetadataEntry) error {
	isPublisher, err := q.IsRootPublisher(ctx, effectiveCaller.Hex())
	if err != nil {
		return fmt.Errorf("failed to check publisher standing: %w", err)
	}
	if !isPublisher {
		return fmt.Errorf("caller %s is not an authorized publisher: %w", effectiveCaller.Hex(), ErrUnauthorized)
	}
	revoked, err := q.IsAuthorityRevoked(ctx, effectiveCaller.Hex())
	if err != nil {
		return fmt.Errorf("failed to check authority revocation: %w", err)
	}
	if revoked {
		return fmt.Errorf("caller %s has revoked delegation authority: %w", effectiveCaller.Hex(), ErrUnauthorized)
	}

	inputs, err := json.Marshal(entry.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	key := LookupKey(entry.ChainID, entry.Contract, entry.Method)
	if err := q.UpsertContractMetadata(ctx, db.UpsertContractMetadataParams{
		LookupKey:   key.Hex(),
		Language:    hexutil.Encode(entry.Language[:]),
		ChainID:     entry.ChainID.String(),
		Contract:    entry.Contract.Hex(),
		Method:      hexutil.Encode(entry.Method[:]),
		Description: entry.Description,
		Inputs:      inputs,
		UpdatedBy:   effectiveCaller.Hex(),
	}); err != nil {
		return fmt.Errorf("failed to upsert metadata: %w", err)
	}

	s.logger.Info("Updated contract metadata",
		zap.String("lookup_key", key.Hex()),
		zap.String("language", hexutil.Encode(entry.Language[:])),
		zap.String("updated_by", effectiveCaller.Hex()),
	)
	return nil
}

// LookupMetadata fetches one registry row.
func (s *RegistryService) LookupMetadata(ctx context.Context, chainID *big.Int, contract common.Address, method, language [4]byte) (business.MetadataEntry, error) {
	key := LookupKey(chainID, contract, method)
	row, err := s.queries.GetContractMetadata(ctx, db.GetContractMetadataParams{
		LookupKey: key.Hex(),
		Language:  hexutil.Encode(language[:]),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.MetadataEntry{}, ErrMetadataNotFound
		}
		return business.MetadataEntry{}, fmt.Errorf("failed to look up metadata: %w", err)
	}

	var inputs []string
	if len(row.Inputs) > 0 {
		if err := json.Unmarshal(row.Inputs, &inputs); err != nil {
			return business.MetadataEntry{}, fmt.Errorf("failed to decode inputs: %w", err)
		}
	}
	return business.MetadataEntry{
		ChainID:     chainID,
		Contract:    contract,
		Method:      method,
		Language:    language,
		Description: row.Description,
		Inputs:      inputs,
	}, nil
}

// EncodeUpdateMetadataCall builds the call payload for a registry update:
// the 4-byte selector followed by the ABI-encoded arguments. Clients embed
// this in the transaction they ask a delegation chain to authorize.
func EncodeUpdateMetadataCall(entry business.MetadataEntry) ([]byte, error) {
	if entry.ChainID == nil {
		return nil, fmt.Errorf("chain ID is required")
	}
	packed, err := updateMetadataArgs.Pack(
		entry.ChainID,
		entry.Contract,
		entry.Method,
		entry.Language,
		entry.Description,
		entry.Inputs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack metadata call: %w", err)
	}
	return append(UpdateMetadataSelector[:], packed...), nil
}

// DecodeUpdateMetadataCall parses a forwarded call payload back into a
// metadata entry, rejecting payloads for any other method.
func DecodeUpdateMetadataCall(data []byte) (business.MetadataEntry, error) {
	if len(data) < 4 {
		return business.MetadataEntry{}, fmt.Errorf("call payload too short")
	}
	if !bytes.Equal(data[:4], UpdateMetadataSelector[:]) {
		return business.MetadataEntry{}, fmt.Errorf("unknown method selector %#x", data[:4])
	}
	values, err := updateMetadataArgs.Unpack(data[4:])
	if err != nil {
		return business.MetadataEntry{}, fmt.Errorf("failed to unpack metadata call: %w", err)
	}

	entry := business.MetadataEntry{
		ChainID:     values[0].(*big.Int),
		Contract:    values[1].(common.Address),
		Method:      values[2].([4]byte),
		Language:    values[3].([4]byte),
		Description: values[4].(string),
		Inputs:      values[5].([]string),
	}
	return entry, nil
}
