// Command smoke-test exercises a running engine end to end: it signs a
// root-issued delegation, wraps an updateMetadata call in a signed invocation
// batch, submits it, and reads the stored row back. Intended against a local
// server seeded with the root key's address as a publisher.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/cyphera/delegatable/services"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/api/requests"
	"github.com/cyphera/delegatable/types/api/responses"
	"github.com/cyphera/delegatable/types/business"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "Engine base URL")
	rootKeyFlag := flag.String("root-key", "", "Root publisher private key (hex, no 0x)")
	delegateKeyFlag := flag.String("delegate-key", "", "Delegate private key (hex, no 0x)")
	chainIDFlag := flag.Int64("chain-id", 1, "Signing domain chain ID")
	registryFlag := flag.String("registry", "", "Registry (verifying contract) address")
	contractFlag := flag.String("contract", "0x00000000000000000000000000000000000000E1", "Described contract address")
	methodFlag := flag.String("method", "0xa9059cbb", "Described method selector")
	languageFlag := flag.String("language", "0x01010101", "Language tag")
	descriptionFlag := flag.String("description", "A public goods API endpoint", "Method description")
	nonceFlag := flag.Uint64("nonce", 0, "Invocation nonce")
	queueFlag := flag.Uint64("queue", 0, "Invocation queue")
	flag.Parse()

	if *rootKeyFlag == "" || *delegateKeyFlag == "" || *registryFlag == "" {
		log.Fatal("-root-key, -delegate-key, and -registry are required")
	}

	rootKey, err := crypto.HexToECDSA(*rootKeyFlag)
	if err != nil {
		log.Fatalf("Invalid root key: %v", err)
	}
	delegateKey, err := crypto.HexToECDSA(*delegateKeyFlag)
	if err != nil {
		log.Fatalf("Invalid delegate key: %v", err)
	}
	registry := common.HexToAddress(*registryFlag)
	method, err := fourBytes(*methodFlag)
	if err != nil {
		log.Fatalf("Invalid method selector: %v", err)
	}
	language, err := fourBytes(*languageFlag)
	if err != nil {
		log.Fatalf("Invalid language tag: %v", err)
	}

	encoder, err := typeddata.NewEncoder(typeddata.DefaultDomain(big.NewInt(*chainIDFlag), registry))
	if err != nil {
		log.Fatalf("Failed to create encoder: %v", err)
	}

	log.Printf("Root publisher: %s", crypto.PubkeyToAddress(rootKey.PublicKey).Hex())
	log.Printf("Delegate:       %s", crypto.PubkeyToAddress(delegateKey.PublicKey).Hex())

	// Root signs a caveat-free delegation to the delegate.
	signedDelegation, err := encoder.SignDelegation(rootKey, business.Delegation{
		Delegate: crypto.PubkeyToAddress(delegateKey.PublicKey),
	})
	if err != nil {
		log.Fatalf("Failed to sign delegation: %v", err)
	}

	entry := business.MetadataEntry{
		ChainID:     big.NewInt(*chainIDFlag),
		Contract:    common.HexToAddress(*contractFlag),
		Method:      method,
		Language:    language,
		Description: *descriptionFlag,
		Inputs:      []string{"recipient", "amount"},
	}
	data, err := services.EncodeUpdateMetadataCall(entry)
	if err != nil {
		log.Fatalf("Failed to encode metadata call: %v", err)
	}

	// The delegate signs the invocation batch that carries the call.
	signedInvocations, err := encoder.SignInvocations(delegateKey, business.Invocations{
		ReplayProtection: business.ReplayProtection{Nonce: *nonceFlag, Queue: *queueFlag},
		Batch: []business.Invocation{
			{
				Transaction: business.Transaction{To: registry, GasLimit: 500000, Data: data},
				Authority:   []business.SignedDelegation{signedDelegation},
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to sign invocations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := &http.Client{Timeout: 30 * time.Second}

	log.Println("Submitting invocation batch...")
	var dispatchResp responses.DispatchResponse
	if err := postJSON(ctx, client, *baseURL+"/api/v1/invocations",
		requests.DispatchRequest{SignedInvocations: signedInvocations}, &dispatchResp); err != nil {
		log.Fatalf("Dispatch failed: %v", err)
	}
	for _, result := range dispatchResp.Results {
		log.Printf("Executed against %s as %s", result.Target.Hex(), result.EffectiveCaller.Hex())
	}

	log.Println("Reading the stored row back...")
	query := url.Values{
		"chain_id": {entry.ChainID.String()},
		"contract": {entry.Contract.Hex()},
		"method":   {hexutil.Encode(entry.Method[:])},
		"language": {hexutil.Encode(entry.Language[:])},
	}
	var meta responses.MetadataResponse
	if err := getJSON(ctx, client, *baseURL+"/api/v1/metadata?"+query.Encode(), &meta); err != nil {
		log.Fatalf("Metadata lookup failed: %v", err)
	}
	if meta.Description != entry.Description {
		log.Fatalf("Stored description %q does not match %q", meta.Description, entry.Description)
	}

	log.Println("Smoke test passed")
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, out)
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s returned %d: %s", req.URL.Path, resp.StatusCode, apiErr.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fourBytes(s string) ([4]byte, error) {
	var out [4]byte
	raw, err := hexutil.Decode(s)
	if err != nil {
		return out, err
	}
	if len(raw) != 4 {
		return out, fmt.Errorf("expected 4 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
