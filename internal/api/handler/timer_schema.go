package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// minutesInput is a duration in minutes as sent by the client. The composer
// posts it either as a JSON number or as the raw text of an input field;
// both are kept as text and parsed by the service.
type minutesInput string

func (m *minutesInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = minutesInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a number of minutes")
	}
	*m = minutesInput(n.String())
	return nil
}

// --- Request types ---

type toggleRequest struct {
	TopicID     string       `json:"topic_id"`
	Description string       `json:"description" validate:"max=1000"`
	ManualEntry bool         `json:"manual_entry"`
	Duration    minutesInput `json:"duration" swaggertype:"string" example:"45"`
}

type stopRequest struct {
	Description string       `json:"description" validate:"max=1000"`
	Duration    minutesInput `json:"duration" swaggertype:"string" example:"30"`
}

type editEntryRequest struct {
	Description *string      `json:"description" validate:"omitempty,max=1000"`
	Duration    minutesInput `json:"duration" swaggertype:"string" example:"60"`
}

// --- Response types ---

type timerResponse struct {
	Success   bool   `json:"success"`
	Active    bool   `json:"active"`
	Manual    bool   `json:"manual,omitempty"`
	EntryID   string `json:"entry_id,omitempty"`
	TopicID   string `json:"topic_id,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
}

type activeTimerResponse struct {
	Active      bool   `json:"active"`
	EntryID     string `json:"entry_id,omitempty"`
	TopicID     string `json:"topic_id,omitempty"`
	Description string `json:"description,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
}

type entryResponse struct {
	ID                string `json:"id"`
	TopicID           string `json:"topic_id"`
	UserID            string `json:"user_id"`
	Description       string `json:"description"`
	AmountSeconds     int64  `json:"amount_seconds"`
	DurationFormatted string `json:"duration_formatted"`
	Revision          int    `json:"revision"`
	EditedBy          string `json:"edited_by,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

const timestampLayout = "2006-01-02T15:04:05Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func toTimerResponse(r *ports.TimerResult) timerResponse {
	resp := timerResponse{
		Success: true,
		Active:  r.Active,
		Manual:  r.Manual,
		EntryID: r.EntryID,
		TopicID: r.TopicID,
	}
	if r.StartedAt != nil {
		resp.StartedAt = formatTimestamp(*r.StartedAt)
	}
	return resp
}

func toEntryResponse(e *domain.TimeEntry) entryResponse {
	return entryResponse{
		ID:                e.ID,
		TopicID:           e.TopicID,
		UserID:            e.UserID,
		Description:       e.Description,
		AmountSeconds:     e.AmountSeconds,
		DurationFormatted: domain.FormatDuration(e.AmountSeconds),
		Revision:          e.Revision,
		EditedBy:          e.EditedBy,
		CreatedAt:         formatTimestamp(e.CreatedAt),
		UpdatedAt:         formatTimestamp(e.UpdatedAt),
	}
}

// timerAction labels a toggle/stop outcome for the transitions metric.
func timerAction(r *ports.TimerResult) string {
	switch {
	case r.Manual:
		return "manual"
	case r.Active:
		return "started"
	case r.EntryID != "":
		return "stopped"
	default:
		return "noop"
	}
}
