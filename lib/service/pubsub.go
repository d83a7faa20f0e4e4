package service

import (
	"sync"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/google/uuid"
)

// TopicAll receives every published message regardless of its topic.
const TopicAll = "*"

type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan models.LedgerEvent
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.LedgerEvent)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.LedgerEvent) (subId string, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.LedgerEvent)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId, nil
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

// Publish never blocks: a subscriber whose buffer is full misses msg.
// It returns the number of subscribers that missed it.
func (ps *Pubsub) Publish(topic string, msg models.LedgerEvent) (dropped int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subs[topic] {
		if !trySend(ch, msg) {
			dropped++
		}
	}
	if topic == TopicAll {
		return dropped
	}
	for _, ch := range ps.subs[TopicAll] {
		if !trySend(ch, msg) {
			dropped++
		}
	}
	return dropped
}

func trySend(ch chan models.LedgerEvent, msg models.LedgerEvent) bool {
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

func (ps *Pubsub) CountSubs(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subs[topic])
}
