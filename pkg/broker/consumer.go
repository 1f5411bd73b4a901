package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrDiscard tells the consumer a message can never be handled, so it is
// rejected without requeue instead of looping forever.
var ErrDiscard = errors.New("discard message")

// HandlerFunc processes one message body. A nil error acks the delivery,
// any other error nacks it back onto the queue.
type HandlerFunc func(ctx context.Context, body []byte) error

type Consumer struct {
	url      string
	queues   []string
	queue    string
	prefetch int
	dialer   Dialer
	log      *zap.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewConsumer(cfg utils.BrokerConfig, dialer Dialer, log *zap.Logger) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 10
	}
	return &Consumer{
		url:        cfg.URL,
		queue:      cfg.NotificationQueue,
		queues:     []string{cfg.NotificationQueue, cfg.EventsQueue},
		prefetch:   prefetch,
		dialer:     dialer,
		log:        log.With(zap.String("component", "consumer"), zap.String("queue", cfg.NotificationQueue)),
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff
// whenever the connection or the delivery stream ends.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	backoff := c.minBackoff
	for {
		conn, err := c.dialer.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = c.minBackoff

		err = c.consume(ctx, conn, handle)
		_ = conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn Connection, handle HandlerFunc) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.log.Warn("Set QoS failed", zap.Error(err))
	}

	for _, q := range c.queues {
		if q == "" {
			continue
		}
		if err := declareQueue(ch, q); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.log.Info("Consuming")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.process(ctx, d, handle)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery, handle HandlerFunc) {
	err := handle(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			c.log.Error("Ack failed", zap.Error(ackErr), zap.Uint64("delivery_tag", d.DeliveryTag))
		}
	case errors.Is(err, ErrDiscard):
		c.log.Error("Discarding message", zap.Error(err), zap.Uint64("delivery_tag", d.DeliveryTag))
		_ = d.Nack(false, false)
	default:
		c.log.Warn("Handle message failed, requeueing",
			zap.Error(err),
			zap.Uint64("delivery_tag", d.DeliveryTag),
			zap.Bool("redelivered", d.Redelivered),
		)
		_ = d.Nack(false, true)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
