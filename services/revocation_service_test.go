package services_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/mocks"
	"github.com/cyphera/delegatable/services"
	"github.com/cyphera/delegatable/testutil"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var registryAddress = common.HexToAddress("0x00000000000000000000000000000000000000A1")

func newEncoder(t *testing.T) *typeddata.Encoder {
	t.Helper()
	enc, err := typeddata.NewEncoder(typeddata.DefaultDomain(big.NewInt(1), registryAddress))
	require.NoError(t, err)
	return enc
}

func TestRevocationService_RevokeDelegation(t *testing.T) {
	enc := newEncoder(t)
	rootKey := testutil.MustKey(t, testutil.RootKeyHex)
	delegate := testutil.AddressOf(testutil.MustKey(t, testutil.Delegate1KeyHex))
	ctx := context.Background()

	delegation := business.Delegation{Delegate: delegate}
	signedDelegation, err := enc.SignDelegation(rootKey, delegation)
	require.NoError(t, err)
	delegationHash, err := enc.HashDelegation(delegation)
	require.NoError(t, err)

	t.Run("delegator revokes its own delegation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockQuerier := mocks.NewMockQuerier(ctrl)
		service := services.NewRevocationService(mockQuerier, enc)

		intent, err := enc.SignIntentionToRevoke(rootKey, business.IntentionToRevoke{DelegationHash: delegationHash})
		require.NoError(t, err)

		mockQuerier.EXPECT().
			SetDelegationRevoked(ctx, db.SetDelegationRevokedParams{
				DelegationHash: delegationHash.Hex(),
				Revoked:        true,
			}).
			Return(nil)

		assert.NoError(t, service.RevokeDelegation(ctx, signedDelegation, intent))
	})

	t.Run("intent signed by someone else is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockQuerier := mocks.NewMockQuerier(ctrl)
		service := services.NewRevocationService(mockQuerier, enc)

		otherKey := testutil.MustKey(t, testutil.Delegate2KeyHex)
		intent, err := enc.SignIntentionToRevoke(otherKey, business.IntentionToRevoke{DelegationHash: delegationHash})
		require.NoError(t, err)

		err = service.RevokeDelegation(ctx, signedDelegation, intent)
		assert.ErrorIs(t, err, services.ErrRevocationUnauthorized)
	})

	t.Run("intent referencing a different delegation is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockQuerier := mocks.NewMockQuerier(ctrl)
		service := services.NewRevocationService(mockQuerier, enc)

		intent, err := enc.SignIntentionToRevoke(rootKey, business.IntentionToRevoke{
			DelegationHash: common.HexToHash("0x0badc0de"),
		})
		require.NoError(t, err)

		err = service.RevokeDelegation(ctx, signedDelegation, intent)
		assert.ErrorIs(t, err, services.ErrRevocationUnauthorized)
	})
}

func TestRevocationService_AuthorityFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockQuerier := mocks.NewMockQuerier(ctrl)
	service := services.NewRevocationService(mockQuerier, newEncoder(t))

	address := common.HexToAddress("0x00000000000000000000000000000000000000C1")
	ctx := context.Background()

	mockQuerier.EXPECT().
		SetAuthorityRevoked(ctx, db.SetAuthorityRevokedParams{Address: address.Hex(), Revoked: true}).
		Return(nil)
	require.NoError(t, service.RevokeAuthority(ctx, address))

	mockQuerier.EXPECT().
		SetAuthorityRevoked(ctx, db.SetAuthorityRevokedParams{Address: address.Hex(), Revoked: false}).
		Return(nil)
	require.NoError(t, service.UnrevokeAuthority(ctx, address))

	mockQuerier.EXPECT().
		IsAuthorityRevoked(ctx, address.Hex()).
		Return(true, nil)
	revoked, err := service.IsAuthorityRevoked(ctx, address)
	require.NoError(t, err)
	assert.True(t, revoked)

	hash := common.HexToHash("0x01")
	mockQuerier.EXPECT().
		IsDelegationRevoked(ctx, hash.Hex()).
		Return(false, nil)
	revoked, err = service.IsDelegationRevoked(ctx, hash)
	require.NoError(t, err)
	assert.False(t, revoked)
}
