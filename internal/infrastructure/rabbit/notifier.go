// Package rabbit delivers topic events to a RabbitMQ topic exchange.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// Config captures the broker connection settings.
type Config struct {
	URL      string
	Exchange string
}

// Notifier publishes each topic event with routing key
// "topic.<topic_id>.<kind>". The connection is re-established lazily after
// a failed publish.
type Notifier struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier dials the broker and declares the exchange. An initial
// connection failure is returned; later failures trigger a reconnect.
func NewNotifier(cfg Config, log zerolog.Logger) (*Notifier, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = "time_registration"
	}
	n := &Notifier{cfg: cfg, log: log}

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.connect(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) connect() error {
	n.closeLocked()

	conn, err := amqp.Dial(n.cfg.URL)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		n.cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("amqp declare exchange: %w", err)
	}

	n.conn = conn
	n.channel = ch
	n.log.Info().Str("exchange", n.cfg.Exchange).Msg("connected to amqp broker")
	return nil
}

func (n *Notifier) Notify(ctx context.Context, event domain.TopicEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode topic event: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil || n.conn.IsClosed() {
		if err := n.connect(); err != nil {
			return err
		}
	}

	err = n.channel.Publish(
		n.cfg.Exchange,
		RoutingKey(event),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			MessageId:    event.EntryID,
			Body:         body,
			Headers: amqp.Table{
				"event_kind": string(event.Kind),
				"revision":   int32(event.Revision),
			},
		},
	)
	if err != nil {
		// force a reconnect on the next publish
		n.closeLocked()
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close shuts the channel and connection down.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeLocked()
}

func (n *Notifier) closeLocked() {
	if n.channel != nil {
		_ = n.channel.Close()
		n.channel = nil
	}
	if n.conn != nil && !n.conn.IsClosed() {
		_ = n.conn.Close()
	}
	n.conn = nil
}

// RoutingKey returns the routing key an event is published with.
func RoutingKey(event domain.TopicEvent) string {
	return fmt.Sprintf("topic.%s.%s", event.TopicID, event.Kind)
}
