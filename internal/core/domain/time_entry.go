package domain

import "time"

// TimeEntry is one tracked activity against a topic. It is either running
// (StartedAt set, AmountSeconds zero) or finalized (AmountSeconds > 0,
// StartedAt nil).
type TimeEntry struct {
	ID            string     `json:"id" bson:"_id"`
	TopicID       string     `json:"topic_id" bson:"topic_id"`
	UserID        string     `json:"user_id" bson:"user_id"`
	Description   string     `json:"description" bson:"description"`
	StartedAt     *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	AmountSeconds int64      `json:"amount_seconds" bson:"amount_seconds"`
	Revision      int        `json:"revision" bson:"revision"`
	EditedBy      string     `json:"edited_by,omitempty" bson:"edited_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

// Running reports whether the stopwatch for this entry is still going.
func (e *TimeEntry) Running() bool {
	return e.StartedAt != nil
}

// Finalized reports whether the entry carries a recorded amount.
func (e *TimeEntry) Finalized() bool {
	return e.StartedAt == nil && e.AmountSeconds > 0
}

// Finalize records the amount and clears the start, moving a running entry
// into the finalized state.
func (e *TimeEntry) Finalize(seconds int64, at time.Time) {
	e.AmountSeconds = seconds
	e.StartedAt = nil
	e.UpdatedAt = at
}

// ActiveTimer is the per-user pointer to the single running entry.
type ActiveTimer struct {
	UserID      string    `json:"user_id" bson:"_id"`
	EntryID     string    `json:"entry_id" bson:"entry_id"`
	TopicID     string    `json:"topic_id" bson:"topic_id"`
	Description string    `json:"description" bson:"description"`
	StartedAt   time.Time `json:"started_at" bson:"started_at"`
}
