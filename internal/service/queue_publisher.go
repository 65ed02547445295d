// Package service connects store changes to the services around the list
// views: the RabbitMQ audit trail and the Redis response cache.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/room-booking-admin/internal/listview"
	q "github.com/iliyamo/room-booking-admin/internal/queue"
)

// Publisher sends RecordChangedEvent messages to RabbitMQ.  A connection is
// dialed lazily and reused; a failed publish drops it so the next call
// redials.
type Publisher struct {
	url     string
	timeout time.Duration

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Publisher{url: url, timeout: timeout}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.RecordChangedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Publish sends event as a persistent JSON message.  Errors are logged and
// returned so the caller can choose to ignore them.
func (p *Publisher) Publish(ctx context.Context, event q.RecordChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: connect failed")
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.RecordChangedQueue, false, false, pub); err != nil {
		log.Warn().Err(err).Str("event_id", event.EventID).Msg("rabbitmq: publish failed")
		p.reset()
		return err
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

// EventPublisher is what AuditSubscriber needs from a Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event q.RecordChangedEvent) error
}

// AuditSubscriber returns a store subscriber that publishes every change.
// Publishing happens off the mutating goroutine so a slow broker never
// stalls a request.
func AuditSubscriber(pub EventPublisher, timeout time.Duration) listview.Subscriber {
	return func(ch listview.Change) {
		ev := q.NewRecordChangedEvent(ch.Entity, string(ch.Op), ch.ID, ch.Revision)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			_ = pub.Publish(ctx, ev)
		}()
	}
}
