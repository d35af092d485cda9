// Package rabbitmq delivers order notifications through RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is used when no queue name is configured.
const DefaultQueue = "order.notifications"

const publishTimeout = 3 * time.Second

// Publisher writes each notification as a persistent JSON message to a durable queue
// through the default exchange.
type Publisher struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

var _ ports.NotificationDispatcher = (*Publisher)(nil)

// NewPublisher opens a channel on conn and declares the queue so that publishing
// never fails because of missing infrastructure.
func NewPublisher(conn *amqp.Connection, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}

	return &Publisher{ch: ch, queue: queue}, nil
}

func (p *Publisher) Dispatch(ctx context.Context, msg notification.Notification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",      // default exchange
		p.queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         "OrderNotification",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

// Close closes the channel. The connection is owned by the caller.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
