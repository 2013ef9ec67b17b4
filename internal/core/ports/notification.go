package ports

import (
	"context"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// EventPublisher hands topic events off for asynchronous delivery.
type EventPublisher interface {
	Publish(event domain.TopicEvent)
}

// Notifier delivers a topic event to the platform's observers.
type Notifier interface {
	Notify(ctx context.Context, event domain.TopicEvent) error
}

// Narrator renders the human-readable text attached to topic events and the
// fixed report labels.
type Narrator interface {
	Started(description string) string
	Stopped(description, duration string) string
	Manual(description, duration string) string
	Edited(description, duration string) string
	NoDescription() string
	PersonalMessage() string
	Uncategorized() string
}

// UserLocker serializes state-changing requests per user.
type UserLocker interface {
	// Lock blocks until the user's lock is held or returns domain.ErrBusy.
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}
