package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/rabbitmq"
)

const (
	DefaultEventPageSize = 100
	MaxEventPageSize     = 1000
)

// ListEvents returns a page of the ledger event log in emission order,
// starting right after afterID.
func (svc *CommunityhubService) ListEvents(ctx context.Context, afterID int64, limit int) ([]models.LedgerEvent, error) {
	if limit <= 0 {
		limit = DefaultEventPageSize
	}
	if limit > MaxEventPageSize {
		limit = MaxEventPageSize
	}
	events := []models.LedgerEvent{}
	err := svc.DB.NewSelect().Model(&events).
		Where("id > ?", afterID).
		OrderExpr("id ASC").
		Limit(limit).
		Scan(ctx)
	return events, err
}

func (svc *CommunityhubService) EventsForPayment(ctx context.Context, communityID, paymentID int64) ([]models.LedgerEvent, error) {
	events := []models.LedgerEvent{}
	err := svc.DB.NewSelect().Model(&events).
		Where("community_id = ? AND payment_id = ?", communityID, paymentID).
		OrderExpr("id ASC").
		Scan(ctx)
	return events, err
}

// SubscribeLedgerEvents subscribes a buffered channel to every ledger event.
func (svc *CommunityhubService) SubscribeLedgerEvents() (chan models.LedgerEvent, func(), error) {
	if svc.EventPubSub == nil {
		return nil, nil, errors.New("event pubsub is not configured")
	}
	events := make(chan models.LedgerEvent, 100)
	subId, err := svc.EventPubSub.Subscribe(TopicAll, events)
	if err != nil {
		return nil, nil, err
	}
	return events, func() { svc.EventPubSub.Unsubscribe(subId, TopicAll) }, nil
}

func (svc *CommunityhubService) EncodeLedgerEvent(ctx context.Context, w io.Writer, event models.LedgerEvent) error {
	return json.NewEncoder(w).Encode(event)
}

// StartRabbitMQPublisher forwards every committed ledger event to rabbitmq until ctx is done.
func (svc *CommunityhubService) StartRabbitMQPublisher(ctx context.Context) error {
	return svc.RabbitMQClient.StartPublishLedgerEvents(ctx, svc.SubscribeLedgerEvents, svc.EncodeLedgerEvent)
}

// RepublishEvents publishes the stored events with fromID <= id <= toID again.
func (svc *CommunityhubService) RepublishEvents(ctx context.Context, fromID, toID int64) (int, error) {
	count := 0
	afterID := fromID - 1
	for {
		events, err := svc.ListEvents(ctx, afterID, MaxEventPageSize)
		if err != nil {
			return count, err
		}
		for _, event := range events {
			if toID > 0 && event.ID > toID {
				return count, nil
			}
			if err := svc.RabbitMQClient.PublishLedgerEvent(ctx, event, svc.EncodeLedgerEvent); err != nil {
				return count, err
			}
			count++
			afterID = event.ID
		}
		if len(events) < MaxEventPageSize {
			return count, nil
		}
	}
}

// ProcessContribution books a contribution received from rabbitmq. A message
// that was already booked is acknowledged without booking it twice.
func (svc *CommunityhubService) ProcessContribution(ctx context.Context, msg rabbitmq.ContributionMessage) error {
	_, err := svc.Contribute(ctx, ContributionRequest{
		CommunityID: msg.CommunityID,
		PaymentID:   msg.PaymentID,
		Amount:      msg.Amount,
		Contributor: msg.Contributor,
		Reference:   msg.Reference,
	})
	if errors.Is(err, ErrDuplicateContribution) {
		svc.Logger.Infof("Contribution already booked: reference:%s", msg.Reference)
		return nil
	}
	return err
}
