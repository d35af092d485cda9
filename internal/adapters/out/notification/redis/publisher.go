// Package redis delivers order notifications over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// ChannelPrefix is followed by the user id; customer apps subscribe to their own channel.
const ChannelPrefix = "notifications:"

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

type Publisher struct {
	client publisher
}

var _ ports.NotificationDispatcher = (*Publisher)(nil)

// NewPublisher accepts a *redis.Client, *redis.ClusterClient or any other client
// that can PUBLISH.
func NewPublisher(client publisher) *Publisher {
	return &Publisher{client: client}
}

// Dispatch publishes the JSON-encoded notification. A message with no subscriber
// is not an error.
func (p *Publisher) Dispatch(ctx context.Context, msg notification.Notification) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	channel := ChannelPrefix + msg.UserID
	if err = p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}
