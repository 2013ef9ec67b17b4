package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// Notifier publishes topic events on a per-topic pub/sub channel that the
// platform's live-update bus subscribes to.
type Notifier struct {
	client *redis.Client
	prefix string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier. Channels are named <prefix><topic_id>.
func NewNotifier(client *redis.Client, prefix string) *Notifier {
	if prefix == "" {
		prefix = "/time-registration/topic/"
	}
	return &Notifier{client: client, prefix: prefix}
}

func (n *Notifier) Notify(ctx context.Context, event domain.TopicEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode topic event: %w", err)
	}
	if err := n.client.Publish(ctx, n.Channel(event.TopicID), payload).Err(); err != nil {
		return fmt.Errorf("publish topic event: %w", err)
	}
	return nil
}

// Channel returns the pub/sub channel for a topic.
func (n *Notifier) Channel(topicID string) string {
	return n.prefix + topicID
}
