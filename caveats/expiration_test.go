package caveats_test

import (
	"context"
	"testing"
	"time"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expirationTerms encodes a unix timestamp as 32-byte big-endian terms.
func expirationTerms(unix uint64) []byte {
	terms := make([]byte, 32)
	for i := 0; i < 8; i++ {
		terms[31-i] = byte(unix >> (8 * i))
	}
	return terms
}

func TestExpirationEnforcer(t *testing.T) {
	limit := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		terms   []byte
		wantErr string
	}{
		{
			name:  "before the limit",
			now:   limit.Add(-time.Second),
			terms: expirationTerms(uint64(limit.Unix())),
		},
		{
			name:    "exactly at the limit",
			now:     limit,
			terms:   expirationTerms(uint64(limit.Unix())),
			wantErr: "expired",
		},
		{
			name:    "after the limit",
			now:     limit.Add(time.Hour),
			terms:   expirationTerms(uint64(limit.Unix())),
			wantErr: "expired",
		},
		{
			name:    "malformed terms",
			now:     limit.Add(-time.Second),
			terms:   []byte{0x01, 0x02},
			wantErr: "terms must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enforcer := &caveats.ExpirationEnforcer{Now: func() time.Time { return tt.now }}
			err := enforcer.Enforce(context.Background(), nil, tt.terms, business.Transaction{}, common.Hash{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
