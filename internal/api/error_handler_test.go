package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
)

type recordingReporter struct {
	errs []error
	tags []map[string]string
}

func (r *recordingReporter) CaptureError(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", fmt.Errorf("manual entry: %w", domain.Invalid("duration", "is required")), http.StatusUnprocessableEntity, "duration is required"},
		{"topic", fmt.Errorf("start timer: %w", domain.ErrTopicNotFound), http.StatusNotFound, "topic not found"},
		{"entry", domain.ErrEntryNotFound, http.StatusNotFound, "time entry not found"},
		{"user", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"forbidden", fmt.Errorf("edit entry: %w", domain.ErrForbidden), http.StatusForbidden, "access forbidden"},
		{"timer running", domain.ErrTimerRunning, http.StatusConflict, "a timer is already running"},
		{"entry running", domain.ErrEntryRunning, http.StatusConflict, "time entry is still running"},
		{"busy", domain.ErrBusy, http.StatusConflict, "another request is in progress"},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/time-registration/toggle", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop(), reporter)(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.msg) {
				t.Fatalf("body %s does not contain %q", rec.Body.String(), tt.msg)
			}
			if len(reporter.errs) != 0 {
				t.Fatalf("client errors must not be reported: %v", reporter.errs)
			}
		})
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsHiddenAndReported(t *testing.T) {
	reporter := &recordingReporter{}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/time-registration/report", nil), rec)
	c.SetPath("/time-registration/report")

	boom := errors.New("connection refused: mongo-0:27017")
	NewHTTPErrorHandler(zerolog.Nop(), reporter)(fmt.Errorf("query report: %w", boom), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if len(reporter.errs) != 1 || !errors.Is(reporter.errs[0], boom) {
		t.Fatalf("expected the error to be reported, got %v", reporter.errs)
	}
	if reporter.tags[0]["route"] != "/time-registration/report" {
		t.Fatalf("tags = %v", reporter.tags[0])
	}
}

func TestHTTPErrorHandler_NilReporter(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop(), nil)(errors.New("boom"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
