package caveats_test

import (
	"context"
	"testing"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCELEnforcer(t *testing.T) {
	target := common.HexToAddress("0x00000000000000000000000000000000000000A1")
	tx := business.Transaction{
		To:       target,
		GasLimit: 100000,
		Data:     []byte{0xa9, 0x05, 0x9c, 0xbb},
	}

	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{
			name: "target predicate allows",
			expr: `target == "` + target.Hex() + `"`,
		},
		{
			name: "gas bound allows",
			expr: `gas_limit <= 200000u`,
		},
		{
			name: "payload size allows",
			expr: `size(data) == 4`,
		},
		{
			name:    "predicate denies",
			expr:    `gas_limit <= 1000u`,
			wantErr: "did not allow",
		},
		{
			name:    "non-boolean result denies",
			expr:    `gas_limit`,
			wantErr: "did not allow",
		},
		{
			name:    "compile error blocks",
			expr:    `target ==`,
			wantErr: "CEL compilation failed",
		},
		{
			name:    "unknown attribute blocks",
			expr:    `value > 0`,
			wantErr: "CEL compilation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enforcer, err := caveats.NewCELEnforcer()
			require.NoError(t, err)

			err = enforcer.Enforce(context.Background(), nil, []byte(tt.expr), tx, common.HexToHash("0x01"))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCELEnforcer_EmptyTerms(t *testing.T) {
	enforcer, err := caveats.NewCELEnforcer()
	require.NoError(t, err)

	err = enforcer.Enforce(context.Background(), nil, nil, business.Transaction{}, common.Hash{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty CEL terms")
}

func TestCELEnforcer_ProgramReuse(t *testing.T) {
	enforcer, err := caveats.NewCELEnforcer()
	require.NoError(t, err)

	// The same terms evaluate consistently across repeated calls; the
	// compiled program is shared.
	terms := []byte(`gas_limit > 0u`)
	for i := 0; i < 3; i++ {
		assert.NoError(t, enforcer.Enforce(context.Background(), nil, terms,
			business.Transaction{GasLimit: 1}, common.Hash{}))
	}
}
