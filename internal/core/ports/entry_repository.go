package ports

import (
	"context"
	"time"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// EntryQuery selects finalized entries for reporting. Zero values mean
// "no filter". Results are ordered by created_at descending.
type EntryQuery struct {
	UserID      string
	CreatedFrom time.Time // created_at >= CreatedFrom
	CreatedTo   time.Time // created_at <= CreatedTo
	Offset      int
	Limit       int
}

// EntryRepository persists time entries.
type EntryRepository interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	// FindByID returns domain.ErrEntryNotFound when no entry has the id.
	FindByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	// ListFinalized returns one page of entries with amount_seconds > 0.
	ListFinalized(ctx context.Context, q EntryQuery) ([]*domain.TimeEntry, error)
}

// ActiveTimerRepository persists the per-user running-timer pointer. Create
// must fail with domain.ErrTimerRunning when the user already has one.
type ActiveTimerRepository interface {
	Create(ctx context.Context, t *domain.ActiveTimer) error
	// FindByUser returns (nil, nil) when the user is idle.
	FindByUser(ctx context.Context, userID string) (*domain.ActiveTimer, error)
	DeleteByUser(ctx context.Context, userID string) error
}
