package service

import (
	"context"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type CommunityhubService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	EventPubSub    *Pubsub
	RabbitMQClient rabbitmq.Client
}

// appendEvents writes events to the ledger event log as part of tx.
// The log order is the commit order of the calls that emitted them.
func (svc *CommunityhubService) appendEvents(ctx context.Context, tx bun.Tx, events ...*models.LedgerEvent) error {
	for _, event := range events {
		if _, err := tx.NewInsert().Model(event).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// publishEvents hands committed events to in-process subscribers (rabbitmq publisher, webhook).
func (svc *CommunityhubService) publishEvents(events ...*models.LedgerEvent) {
	if svc.EventPubSub == nil {
		return
	}
	for _, event := range events {
		// the event is already in ledger_events, a missed delivery can be republished
		if dropped := svc.EventPubSub.Publish(event.Type, *event); dropped > 0 {
			svc.Logger.Warnf("Ledger event not delivered to %d slow subscribers: id:%d type:%s", dropped, event.ID, event.Type)
		}
	}
}
