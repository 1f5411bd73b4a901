package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"flight-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	ErrPublisherClosed = errors.New("publisher is closed")
	ErrNoChannel       = errors.New("no broker channel available")
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Publisher holds one connection and one channel to the broker. They are
// dialed on the first Publish, dropped together when the broker closes the
// connection, and re-dialed after the reconnect delay.
//
// Messages are persistent on durable queues but publisher confirms are not
// used: a message in flight when the connection drops can be lost.
type Publisher struct {
	url            string
	queues         []string // declared on every connect
	reconnectDelay time.Duration
	dialer         Dialer
	log            *zap.Logger

	mu        sync.Mutex
	state     State
	conn      Connection
	ch        Channel
	reconnect *time.Timer
	closed    bool
}

func NewPublisher(cfg utils.BrokerConfig, dialer Dialer, log *zap.Logger) *Publisher {
	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	var queues []string
	for _, q := range []string{cfg.NotificationQueue, cfg.EventsQueue} {
		if q != "" {
			queues = append(queues, q)
		}
	}
	return &Publisher{
		url:            cfg.URL,
		queues:         queues,
		reconnectDelay: delay,
		dialer:         dialer,
		log:            log.With(zap.String("component", "publisher")),
	}
}

func (p *Publisher) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Publish declares queue durable and sends payload to it as a persistent
// JSON message.
func (p *Publisher) Publish(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	if err := declareQueue(ch, queue); err != nil {
		p.dropLocked("queue declare failed", err)
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.dropLocked("publish failed", err)
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	p.log.Debug("Message published", zap.String("queue", queue), zap.Int("bytes", len(body)))
	return nil
}

// Close tears down the connection and cancels any pending reconnect.
// Publish fails with ErrPublisherClosed afterwards.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.reconnect != nil {
		p.reconnect.Stop()
		p.reconnect = nil
	}
	return p.teardownLocked()
}

func (p *Publisher) channelLocked() (Channel, error) {
	if p.closed {
		return nil, ErrPublisherClosed
	}
	if p.state == StateConnected && p.ch != nil {
		return p.ch, nil
	}
	return p.connectLocked()
}

func (p *Publisher) connectLocked() (Channel, error) {
	p.state = StateConnecting

	conn, err := p.dialer.Dial(p.url)
	if err != nil {
		p.state = StateDisconnected
		p.scheduleReconnectLocked()
		return nil, fmt.Errorf("%w: dial: %v", ErrNoChannel, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.state = StateDisconnected
		p.scheduleReconnectLocked()
		return nil, fmt.Errorf("%w: open channel: %v", ErrNoChannel, err)
	}

	for _, q := range p.queues {
		if err := declareQueue(ch, q); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			p.state = StateDisconnected
			p.scheduleReconnectLocked()
			return nil, fmt.Errorf("%w: declare %s: %v", ErrNoChannel, q, err)
		}
	}

	p.conn = conn
	p.ch = ch
	p.state = StateConnected

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go p.watch(conn, closed)

	p.log.Info("Connected to broker")
	return ch, nil
}

func (p *Publisher) watch(conn Connection, closed <-chan *amqp.Error) {
	amqpErr := <-closed

	p.mu.Lock()
	defer p.mu.Unlock()

	// a newer connection already replaced this one
	if p.conn != conn {
		return
	}

	p.ch = nil
	p.conn = nil
	p.state = StateDisconnected
	if p.closed {
		return
	}

	if amqpErr != nil {
		p.log.Warn("Broker connection lost", zap.String("reason", amqpErr.Reason), zap.Int("code", amqpErr.Code))
	} else {
		p.log.Warn("Broker connection closed")
	}
	p.scheduleReconnectLocked()
}

// dropLocked discards the current handle after a channel level failure.
func (p *Publisher) dropLocked(msg string, err error) {
	p.log.Warn(msg, zap.Error(err))
	if tErr := p.teardownLocked(); tErr != nil {
		p.log.Debug("Teardown after failure", zap.Error(tErr))
	}
	p.scheduleReconnectLocked()
}

func (p *Publisher) teardownLocked() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.ch = nil
	p.conn = nil
	p.state = StateDisconnected
	return errors.Join(errs...)
}

func (p *Publisher) scheduleReconnectLocked() {
	if p.closed || p.reconnect != nil {
		return
	}
	p.reconnect = time.AfterFunc(p.reconnectDelay, p.reconnectNow)
}

func (p *Publisher) reconnectNow() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reconnect = nil
	if p.closed || p.state == StateConnected {
		return
	}

	if _, err := p.connectLocked(); err != nil {
		p.log.Warn("Reconnect failed", zap.Error(err), zap.Duration("retry_in", p.reconnectDelay))
	}
}
