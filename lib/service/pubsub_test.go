package service

import (
	"testing"
	"time"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubsub(t *testing.T) {
	ps := NewPubsub()

	created := make(chan models.LedgerEvent, 2)
	all := make(chan models.LedgerEvent, 2)
	createdId, err := ps.Subscribe(common.EventTypeCommunityCreate, created)
	require.NoError(t, err)
	allId, err := ps.Subscribe(TopicAll, all)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.CountSubs(common.EventTypeCommunityCreate))
	assert.Equal(t, 1, ps.CountSubs(TopicAll))

	ps.Publish(common.EventTypeCommunityCreate, models.LedgerEvent{ID: 1, Type: common.EventTypeCommunityCreate})
	ps.Publish(common.EventTypeCommunityPaymentSent, models.LedgerEvent{ID: 2, Type: common.EventTypeCommunityPaymentSent})

	assert.Len(t, created, 1)
	assert.Equal(t, int64(1), (<-created).ID)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(1), (<-all).ID)
	assert.Equal(t, int64(2), (<-all).ID)

	ps.Unsubscribe(createdId, common.EventTypeCommunityCreate)
	_, open := <-created
	assert.False(t, open)
	assert.Equal(t, 0, ps.CountSubs(common.EventTypeCommunityCreate))

	ps.Unsubscribe(allId, TopicAll)
	// unsubscribing twice is a no-op
	ps.Unsubscribe(allId, TopicAll)
	assert.Equal(t, 0, ps.CountSubs(TopicAll))
}

func TestPubsubPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	ps := NewPubsub()

	// nobody reads from this channel
	stuck := make(chan models.LedgerEvent, 1)
	stuckId, err := ps.Subscribe(TopicAll, stuck)
	require.NoError(t, err)

	done := make(chan int)
	go func() {
		dropped := 0
		for i := int64(1); i <= 3; i++ {
			dropped += ps.Publish(common.EventTypeCommunityPaymentSent, models.LedgerEvent{ID: i, Type: common.EventTypeCommunityPaymentSent})
		}
		done <- dropped
	}()

	select {
	case dropped := <-done:
		assert.Equal(t, 2, dropped)
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	assert.Equal(t, int64(1), (<-stuck).ID)

	// unsubscribing must not wait for a publisher
	ps.Unsubscribe(stuckId, TopicAll)
	assert.Equal(t, 0, ps.CountSubs(TopicAll))
}
