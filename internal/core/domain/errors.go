package domain

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map on these with errors.Is; the specific
// sentinels below wrap exactly one class.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("access forbidden")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrTopicNotFound = fmt.Errorf("topic %w", ErrNotFound)
	ErrEntryNotFound = fmt.Errorf("time entry %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)

	ErrTimerRunning = fmt.Errorf("%w: a timer is already running for this user", ErrConflict)
	ErrEntryRunning = fmt.Errorf("%w: time entry is still running", ErrConflict)
	ErrBusy         = fmt.Errorf("%w: another request for this user is in progress", ErrConflict)
)

// Invalid builds a validation error for a single input field.
func Invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
