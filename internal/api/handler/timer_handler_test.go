package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

type stubTimerService struct {
	toggleFn func(ctx context.Context, in ports.ToggleInput) (*ports.TimerResult, error)
	stopFn   func(ctx context.Context, in ports.StopInput) (*ports.TimerResult, error)
	editFn   func(ctx context.Context, in ports.EditInput) (*domain.TimeEntry, error)
	activeFn func(ctx context.Context, userID string) (*domain.ActiveTimer, error)
}

func (s *stubTimerService) Toggle(ctx context.Context, in ports.ToggleInput) (*ports.TimerResult, error) {
	return s.toggleFn(ctx, in)
}

func (s *stubTimerService) Start(context.Context, ports.StartInput) (*ports.TimerResult, error) {
	return nil, errors.New("not used")
}

func (s *stubTimerService) Stop(ctx context.Context, in ports.StopInput) (*ports.TimerResult, error) {
	return s.stopFn(ctx, in)
}

func (s *stubTimerService) CreateManualEntry(context.Context, ports.ManualEntryInput) (*ports.TimerResult, error) {
	return nil, errors.New("not used")
}

func (s *stubTimerService) Edit(ctx context.Context, in ports.EditInput) (*domain.TimeEntry, error) {
	return s.editFn(ctx, in)
}

func (s *stubTimerService) Active(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	return s.activeFn(ctx, userID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestTimerHandler_Toggle_Starts(t *testing.T) {
	e := newTestEcho()
	started := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	stub := &stubTimerService{
		toggleFn: func(ctx context.Context, in ports.ToggleInput) (*ports.TimerResult, error) {
			if in.UserID != "u-1" || in.TopicID != "t-9" || in.Description != "fixing printer" || in.ManualEntry {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.TimerResult{Active: true, EntryID: "e-1", TopicID: "t-9", StartedAt: &started}, nil
		},
	}
	h := NewTimerHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/toggle", `{"topic_id":"t-9","description":"fixing printer"}`), rec)
	c.Set("user_id", "u-1")

	if err := h.Toggle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["active"] != true || resp["entry_id"] != "e-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["started_at"] != "2024-03-04T09:30:00Z" {
		t.Fatalf("started_at = %v", resp["started_at"])
	}
}

func TestTimerHandler_Toggle_DurationAsNumberOrString(t *testing.T) {
	for _, body := range []string{
		`{"topic_id":"t-9","manual_entry":true,"duration":45}`,
		`{"topic_id":"t-9","manual_entry":true,"duration":"45"}`,
	} {
		e := newTestEcho()
		var got ports.ToggleInput
		h := NewTimerHandler(&stubTimerService{
			toggleFn: func(_ context.Context, in ports.ToggleInput) (*ports.TimerResult, error) {
				got = in
				return &ports.TimerResult{Manual: true, EntryID: "e-2", TopicID: in.TopicID}, nil
			},
		})

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/toggle", body), rec)
		c.Set("user_id", "u-1")

		if err := h.Toggle(c); err != nil {
			t.Fatalf("%s: handler error: %v", body, err)
		}
		if !got.ManualEntry || got.Duration != "45" {
			t.Fatalf("%s: input = %+v", body, got)
		}
		if !strings.Contains(rec.Body.String(), `"manual":true`) {
			t.Fatalf("%s: body = %s", body, rec.Body.String())
		}
	}
}

func TestTimerHandler_Toggle_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewTimerHandler(&stubTimerService{
		toggleFn: func(context.Context, ports.ToggleInput) (*ports.TimerResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/toggle", `{"duration":[1]}`), rec)
	c.Set("user_id", "u-1")

	err := h.Toggle(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTimerHandler_Toggle_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	h := NewTimerHandler(&stubTimerService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/toggle", `{}`), rec)

	if err := h.Toggle(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTimerHandler_Toggle_PassesDomainErrors(t *testing.T) {
	for _, want := range []error{domain.ErrForbidden, domain.ErrTopicNotFound, domain.ErrBusy, domain.Invalid("duration", "is required")} {
		e := newTestEcho()
		h := NewTimerHandler(&stubTimerService{
			toggleFn: func(context.Context, ports.ToggleInput) (*ports.TimerResult, error) {
				return nil, want
			},
		})

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/toggle", `{"topic_id":"t-1"}`), rec)
		c.Set("user_id", "u-1")

		if err := h.Toggle(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestTimerHandler_Stop(t *testing.T) {
	e := newTestEcho()
	h := NewTimerHandler(&stubTimerService{
		stopFn: func(_ context.Context, in ports.StopInput) (*ports.TimerResult, error) {
			if in.UserID != "u-1" || in.Duration != "30" || in.Description != "done" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.TimerResult{Active: false, EntryID: "e-1", TopicID: "t-1"}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/time-registration/stop", `{"description":"done","duration":30}`), rec)
	c.Set("user_id", "u-1")

	if err := h.Stop(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"active":false`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestTimerHandler_Active(t *testing.T) {
	started := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		active *domain.ActiveTimer
		want   string
	}{
		{"idle", nil, `{"active":false}`},
		{"running", &domain.ActiveTimer{UserID: "u-1", EntryID: "e-1", TopicID: "t-1", Description: "call", StartedAt: started},
			`{"active":true,"entry_id":"e-1","topic_id":"t-1","description":"call","started_at":"2024-03-04T09:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewTimerHandler(&stubTimerService{
				activeFn: func(context.Context, string) (*domain.ActiveTimer, error) { return tt.active, nil },
			})

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/time-registration/active", nil), rec)
			c.Set("user_id", "u-1")

			if err := h.Active(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Fatalf("body = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTimerHandler_EditEntry(t *testing.T) {
	e := newTestEcho()
	created := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	h := NewTimerHandler(&stubTimerService{
		editFn: func(_ context.Context, in ports.EditInput) (*domain.TimeEntry, error) {
			if in.EditorID != "u-admin" || in.EntryID != "e-7" || in.Duration != "90" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Description == nil || *in.Description != "corrected" {
				t.Fatalf("description = %v", in.Description)
			}
			return &domain.TimeEntry{
				ID: "e-7", TopicID: "t-1", UserID: "u-1", Description: "corrected",
				AmountSeconds: 5400, Revision: 2, EditedBy: "u-admin", CreatedAt: created, UpdatedAt: created,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/time-registration/entries/e-7", `{"description":"corrected","duration":"90"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("e-7")
	c.Set("user_id", "u-admin")

	if err := h.EditEntry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.DurationFormatted != "01:30" || resp.Revision != 2 || resp.EditedBy != "u-admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTimerHandler_EditEntry_OmittedDescription(t *testing.T) {
	e := newTestEcho()
	h := NewTimerHandler(&stubTimerService{
		editFn: func(_ context.Context, in ports.EditInput) (*domain.TimeEntry, error) {
			if in.Description != nil {
				t.Fatalf("expected nil description, got %q", *in.Description)
			}
			return nil, domain.ErrForbidden
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/time-registration/entries/e-7", `{"duration":10}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("e-7")
	c.Set("user_id", "u-bob")

	if err := h.EditEntry(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTimerAction(t *testing.T) {
	tests := []struct {
		result ports.TimerResult
		want   string
	}{
		{ports.TimerResult{Manual: true, EntryID: "e"}, "manual"},
		{ports.TimerResult{Active: true, EntryID: "e"}, "started"},
		{ports.TimerResult{EntryID: "e"}, "stopped"},
		{ports.TimerResult{}, "noop"},
	}
	for _, tt := range tests {
		if got := timerAction(&tt.result); got != tt.want {
			t.Errorf("timerAction(%+v) = %s, want %s", tt.result, got, tt.want)
		}
	}
}
