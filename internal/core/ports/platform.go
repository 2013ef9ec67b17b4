package ports

import (
	"context"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// PlatformDirectory is the read-only view of the discussion platform's
// users, topics and categories.
type PlatformDirectory interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUsers(ctx context.Context, ids []string) (map[string]*domain.User, error)
	FindTopic(ctx context.Context, id string) (*domain.Topic, error)
	FindTopics(ctx context.Context, ids []string) (map[string]*domain.Topic, error)
	FindCategories(ctx context.Context, ids []string) (map[string]*domain.Category, error)
}

// TopicVisibility decides whether a user may see a topic.
type TopicVisibility interface {
	CanSee(ctx context.Context, user *domain.User, topic *domain.Topic) (bool, error)
}

// Authorizer holds the two capability checks. They are deliberately
// separate: group membership grants tracking, never editing others' entries.
type Authorizer interface {
	CanTrackTime(user *domain.User) bool
	CanEditEntry(user *domain.User, entry *domain.TimeEntry) bool
}
