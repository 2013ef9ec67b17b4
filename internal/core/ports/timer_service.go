package ports

import (
	"context"
	"time"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// ToggleInput is the DTO for the single timer action exposed to clients.
// Duration is raw user input in minutes; it is parsed by the service.
type ToggleInput struct {
	UserID      string
	TopicID     string
	Description string
	ManualEntry bool
	Duration    string
}

// StartInput carries the parameters of a stopwatch start.
type StartInput struct {
	UserID      string
	TopicID     string
	Description string
}

// StopInput carries the parameters of a stopwatch stop. An empty Duration
// means "use the rounded elapsed time"; Description replaces the entry's
// description when non-empty.
type StopInput struct {
	UserID      string
	Description string
	Duration    string
}

// ManualEntryInput carries a finished entry recorded after the fact.
type ManualEntryInput struct {
	UserID      string
	TopicID     string
	Description string
	Duration    string
}

// EditInput carries an owner or admin correction of a finalized entry. A nil
// Description keeps the current one.
type EditInput struct {
	EditorID    string
	EntryID     string
	Description *string
	Duration    string
}

// TimerResult reports the caller's timer state after an operation. Manual
// results carry no timer state.
type TimerResult struct {
	Active    bool
	Manual    bool
	EntryID   string
	TopicID   string
	StartedAt *time.Time
}

// TimerService is the timer state machine.
type TimerService interface {
	Toggle(ctx context.Context, in ToggleInput) (*TimerResult, error)
	Start(ctx context.Context, in StartInput) (*TimerResult, error)
	Stop(ctx context.Context, in StopInput) (*TimerResult, error)
	CreateManualEntry(ctx context.Context, in ManualEntryInput) (*TimerResult, error)
	Edit(ctx context.Context, in EditInput) (*domain.TimeEntry, error)
	Active(ctx context.Context, userID string) (*domain.ActiveTimer, error)
}
