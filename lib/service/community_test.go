package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	community, err := svc.CreateCommunity(ctx, "Test Community", payoutAddress, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), community.ID)
	assert.Equal(t, "Test Community", community.Name)
	assert.Equal(t, payoutAddress, community.PayoutAddress)
	assert.Equal(t, owner, community.Owner)

	events, err := svc.ListEvents(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, common.EventTypeCommunityCreate, events[0].Type)
	assert.Equal(t, int64(0), events[0].CommunityID)
	assert.Nil(t, events[0].PaymentID)
	assert.Equal(t, "Test Community", events[0].Name)
	assert.Equal(t, payoutAddress, events[0].PayoutAddress)
	assert.Equal(t, owner, events[0].Identity)

	found, err := svc.FindCommunity(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, community.Name, found.Name)
	assert.Equal(t, community.Owner, found.Owner)
}

func TestCommunityIdsAreSequential(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		community, err := svc.CreateCommunity(ctx, "Community", payoutAddress, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(i), community.ID)
	}

	// a rejected call must not consume an id
	_, err := svc.CreateCommunity(ctx, "", payoutAddress, owner)
	assert.Error(t, err)

	community, err := svc.CreateCommunity(ctx, "Community", payoutAddress, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(5), community.ID)

	communities, err := svc.CommunitiesFor(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, communities, 5)
}

func TestCreateCommunityValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCommunity(ctx, "", payoutAddress, owner)
	assert.ErrorIs(t, err, service.ErrInvalidName)

	_, err = svc.CreateCommunity(ctx, strings.Repeat("a", 257), payoutAddress, owner)
	assert.ErrorIs(t, err, service.ErrInvalidName)

	_, err = svc.CreateCommunity(ctx, "Test Community", "", owner)
	assert.ErrorIs(t, err, service.ErrInvalidAddress)

	events, err := svc.ListEvents(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFindCommunityNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.FindCommunity(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
