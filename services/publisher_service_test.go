package services_test

import (
	"context"
	"testing"

	"github.com/cyphera/delegatable/mocks"
	"github.com/cyphera/delegatable/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPublisherService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mocks.NewMockQuerier(ctrl)
	service := services.NewPublisherService(mockQuerier)
	ctx := context.Background()
	address := common.HexToAddress("0x00000000000000000000000000000000000000C1")

	mockQuerier.EXPECT().AddRootPublisher(ctx, address.Hex()).Return(nil)
	require.NoError(t, service.AddRootPublisher(ctx, address))

	mockQuerier.EXPECT().IsRootPublisher(ctx, address.Hex()).Return(true, nil)
	ok, err := service.IsRootPublisher(ctx, address)
	require.NoError(t, err)
	assert.True(t, ok)

	mockQuerier.EXPECT().ListRootPublishers(ctx).Return([]string{address.Hex()}, nil)
	publishers, err := service.ListRootPublishers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{address}, publishers)

	mockQuerier.EXPECT().RemoveRootPublisher(ctx, address.Hex()).Return(nil)
	require.NoError(t, service.RemoveRootPublisher(ctx, address))
}
