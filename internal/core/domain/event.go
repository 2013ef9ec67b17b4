package domain

import "time"

// TopicEventKind names the transition that produced a TopicEvent.
type TopicEventKind string

const (
	EventStarted TopicEventKind = "started"
	EventStopped TopicEventKind = "stopped"
	EventManual  TopicEventKind = "manual"
	EventEdited  TopicEventKind = "edited"
)

// TopicEvent announces a time entry change to observers of a topic.
type TopicEvent struct {
	Kind            TopicEventKind `json:"kind"`
	EntryID         string         `json:"entry_id"`
	TopicID         string         `json:"topic_id"`
	UserID          string         `json:"user_id"`
	Revision        int            `json:"revision"`
	DurationSeconds int64          `json:"duration_seconds,omitempty"`
	Text            string         `json:"text"`
	OccurredAt      time.Time      `json:"occurred_at"`
}
