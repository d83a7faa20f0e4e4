package rabbitmq

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat   = 10 * time.Second
	defaultLocale      = "en_US"
	defaultDialTimeout = 3 * time.Second

	msgReconnect = "RECONNECT_DONE"
	msgClose     = "CLOSE"
)

var ErrReconnecting = errors.New("amqp: trying to publish during reconnect")

type listenerMsg = string

type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Close() error
}

type defaultAMQPClient struct {
	uri string

	mu   sync.RWMutex
	conn *amqp.Connection
	// publishers and consumers get separate channels so a consumer is not
	// slowed down by flow control applied to publishing
	consumeChannel  *amqp.Channel
	publishChannel  *amqp.Channel
	notifyCloseChan chan *amqp.Error

	listenersMu  sync.Mutex
	listeners    []chan listenerMsg
	reconnecting atomic.Bool

	logger *lecho.Logger
}

type DialOption = func(client *defaultAMQPClient)

func WithAMQPLogger(logger *lecho.Logger) DialOption {
	return func(client *defaultAMQPClient) {
		client.logger = logger
	}
}

// DialAMQP connects to rabbitmq and keeps reconnecting in the background
// whenever the server closes the connection.
func DialAMQP(uri string, options ...DialOption) (AMQPClient, error) {
	client := &defaultAMQPClient{
		uri: uri,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(client)
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	go client.reconnectionLoop()

	return client, nil
}

func (c *defaultAMQPClient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(defaultDialTimeout),
	})
	if err != nil {
		return err
	}

	consumeChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	notifyCloseChan := conn.NotifyClose(make(chan *amqp.Error, 1))

	c.mu.Lock()
	c.conn = conn
	c.consumeChannel = consumeChannel
	c.publishChannel = publishChannel
	c.notifyCloseChan = notifyCloseChan
	c.mu.Unlock()

	return nil
}

func newReconnectBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = time.Minute
	return b
}

func (c *defaultAMQPClient) reconnectionLoop() {
	for {
		c.mu.RLock()
		notifyCloseChan := c.notifyCloseChan
		c.mu.RUnlock()

		amqpError, ok := <-notifyCloseChan
		// a closed channel without an error means Close was called on purpose
		if !ok || amqpError == nil {
			c.notifyListeners(msgClose)
			return
		}
		c.logger.Error(amqpError)

		c.reconnecting.Store(true)
		c.logger.Info("amqp: trying to reconnect...")
		if err := backoff.Retry(c.connect, newReconnectBackOff()); err != nil {
			c.logger.Errorf("amqp: giving up reconnecting: %v", err)
			c.notifyListeners(msgClose)
			return
		}
		c.reconnecting.Store(false)
		c.logger.Info("amqp: successfully reconnected")

		c.notifyListeners(msgReconnect)
	}
}

func (c *defaultAMQPClient) notifyListeners(msg listenerMsg) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	for _, listener := range c.listeners {
		select {
		case listener <- msg:
		default:
		}
	}
}

func (c *defaultAMQPClient) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn.Close()
}

func (c *defaultAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	// short lived management channel, the consume and publish channels stay untouched
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

type ListenOptions struct {
	Durable    bool
	AutoDelete bool
	Internal   bool
	Wait       bool
	Exclusive  bool
	AutoAck    bool
}

type AMQPListenOptions = func(opts ListenOptions) ListenOptions

func WithDurable(durable bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Durable = durable
		return opts
	}
}

func WithAutoDelete(autoDelete bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoDelete = autoDelete
		return opts
	}
}

func WithExclusive(exclusive bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Exclusive = exclusive
		return opts
	}
}

func WithAutoAck(autoAck bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoAck = autoAck
		return opts
	}
}

// Listen binds queueName to exchange with routingKey and returns a delivery
// channel that survives reconnects. It is closed once reconnecting fails.
func (c *defaultAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	deliveries, err := c.consume(exchange, routingKey, queueName, options...)
	if err != nil {
		return nil, err
	}

	clientChannel := make(chan amqp.Delivery)
	notifyReconnectChan := make(chan listenerMsg, 2)

	c.listenersMu.Lock()
	c.listeners = append(c.listeners, notifyReconnectChan)
	c.listenersMu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-notifyReconnectChan:
				switch msg {
				case msgReconnect:
					d, err := c.consume(exchange, routingKey, queueName, options...)
					if err != nil {
						c.logger.Error(err)
						close(clientChannel)
						return
					}
					c.logger.Infof("amqp: consuming routing key %s from a new deliveries channel", routingKey)
					deliveries = d

				case msgClose:
					close(clientChannel)
					return
				}

			case delivery, ok := <-deliveries:
				if !ok {
					// wait for the reconnection loop to hand out a new channel
					deliveries = nil
					continue
				}
				select {
				case clientChannel <- delivery:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return clientChannel, nil
}

func (c *defaultAMQPClient) consume(exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	opts := ListenOptions{
		Durable: true,
	}
	for _, opt := range options {
		opts = opt(opts)
	}

	c.mu.RLock()
	ch := c.consumeChannel
	c.mu.RUnlock()

	// topic exchanges route on the routing key, durable ones survive broker restarts
	err := ch.ExchangeDeclare(exchange, "topic", opts.Durable, opts.AutoDelete, opts.Internal, opts.Wait, nil)
	if err != nil {
		return nil, err
	}

	queue, err := ch.QueueDeclare(
		queueName,
		opts.Durable,
		opts.AutoDelete,
		// non exclusive queues spread their messages over every instance consuming them
		opts.Exclusive,
		opts.Wait,
		// bound redeliveries of messages that are requeued
		amqp.Table{
			"delivery-limit": 10,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(queue.Name, routingKey, exchange, opts.Wait, nil); err != nil {
		return nil, err
	}

	return ch.Consume(queue.Name, "", opts.AutoAck, opts.Exclusive, false, opts.Wait, nil)
}

func (c *defaultAMQPClient) PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error {
	if c.reconnecting.Load() {
		err := backoff.Retry(func() error {
			if c.reconnecting.Load() {
				return ErrReconnecting
			}
			return nil
		}, backoff.WithContext(newReconnectBackOff(), ctx))
		if err != nil {
			return err
		}
	}

	c.mu.RLock()
	ch := c.publishChannel
	c.mu.RUnlock()

	return ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
