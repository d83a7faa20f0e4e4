package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool lets the publisher reuse encoding buffers instead of allocating one per event.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	contributionRoutingKey = "contribution.#"
)

// ContributionMessage is a contribution announced by an external system,
// e.g. a payment processor that received the funds.
type ContributionMessage struct {
	CommunityID int64  `json:"community_id"`
	PaymentID   int64  `json:"payment_id"`
	Amount      int64  `json:"amount"`
	Contributor string `json:"contributor"`
	Reference   string `json:"reference"`
}

type (
	ContributionHandler         = func(ctx context.Context, msg ContributionMessage) error
	SubscribeToLedgerEventsFunc = func() (events chan models.LedgerEvent, unsubscribe func(), err error)
	EncodeLedgerEventFunc       = func(ctx context.Context, w io.Writer, event models.LedgerEvent) error
)

type Client interface {
	SubscribeToContributions(context.Context, ContributionHandler) error
	StartPublishLedgerEvents(context.Context, SubscribeToLedgerEventsFunc, EncodeLedgerEventFunc) error
	PublishLedgerEvent(context.Context, models.LedgerEvent, EncodeLedgerEventFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	ledgerEventExchange           string
	contributionExchange          string
	contributionConsumerQueueName string
}

type ClientOption = func(client *DefaultClient)

func WithLedgerEventExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.ledgerEventExchange = exchange
	}
}

func WithContributionExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.contributionExchange = exchange
	}
}

func WithContributionConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.contributionConsumerQueueName = name
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		ledgerEventExchange:           "community_ledger_events",
		contributionExchange:          "community_contributions",
		contributionConsumerQueueName: "community_contribution_consumer",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Dial connects to rabbitmq and returns a client using that connection
func Dial(uri string, options ...ClientOption) (Client, error) {
	client, err := NewClient(nil, options...)
	if err != nil {
		return nil, err
	}
	defaultClient := client.(*DefaultClient)
	amqpClient, err := DialAMQP(uri, WithAMQPLogger(defaultClient.logger))
	if err != nil {
		return nil, err
	}
	defaultClient.amqpClient = amqpClient
	return defaultClient, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) SubscribeToContributions(ctx context.Context, handler ContributionHandler) error {
	deliveryChan, err := client.amqpClient.Listen(ctx, client.contributionExchange, contributionRoutingKey, client.contributionConsumerQueueName)
	if err != nil {
		return err
	}

	client.logger.Info("Starting RabbitMQ contribution consumer loop")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveryChan:
			if !ok {
				return fmt.Errorf("Disconnected from RabbitMQ")
			}
			var msg ContributionMessage

			err := json.Unmarshal(delivery.Body, &msg)
			if err != nil {
				captureErr(client.logger, err)

				// badly formatted messages will never succeed, drop them
				if err := delivery.Nack(false, false); err != nil {
					captureErr(client.logger, err)
				}
				continue
			}

			err = handler(ctx, msg)
			if err != nil {
				captureErr(client.logger, err)

				// no requeue: a message failing on every attempt would loop forever
				if err := delivery.Nack(false, false); err != nil {
					captureErr(client.logger, err)
				}
				continue
			}

			if err := delivery.Ack(false); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) StartPublishLedgerEvents(ctx context.Context, subscribeFunc SubscribeToLedgerEventsFunc, payloadFunc EncodeLedgerEventFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.ledgerEventExchange,
		// topic exchanges let consumers bind on community.<event type>
		"topic",
		// durable and not auto deleted, survives broker restarts
		true,
		false,
		false,
		// wait for the broker to confirm the declaration
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq ledger event publisher")

	events, unsubscribe, err := subscribeFunc()
	if err != nil {
		return err
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := client.PublishLedgerEvent(ctx, event, payloadFunc); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) PublishLedgerEvent(ctx context.Context, event models.LedgerEvent, payloadFunc EncodeLedgerEventFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	defer func() {
		payload.Reset()
		bufPool.Put(payload)
	}()

	if err := payloadFunc(ctx, payload, event); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.ledgerEventExchange,
		RoutingKey(event),
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			MessageId:   fmt.Sprintf("%d", event.ID),
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Successfully published ledger event %d of type %s to rabbitmq", event.ID, event.Type)
	return nil
}

// RoutingKey is the routing key a ledger event is published with.
func RoutingKey(event models.LedgerEvent) string {
	return "community." + event.Type
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
