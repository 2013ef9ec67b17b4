package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// LogNotifier only logs topic events. It backs NOTIFIER=none.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, event domain.TopicEvent) error {
	n.log.Debug().
		Str("kind", string(event.Kind)).
		Str("topic_id", event.TopicID).
		Str("entry_id", event.EntryID).
		Str("text", event.Text).
		Msg("topic event")
	return nil
}
