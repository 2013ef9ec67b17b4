package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorReporter receives errors that could not be mapped to a client error.
type ErrorReporter interface {
	CaptureError(err error, tags map[string]string)
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error classes to their HTTP status codes.
//   - Logs and reports unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// reporter may be nil.
func NewHTTPErrorHandler(log zerolog.Logger, reporter ErrorReporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, reporter, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, reporter ErrorReporter, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrTopicNotFound):
		return http.StatusNotFound, "topic not found"
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, "time entry not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrTimerRunning):
		return http.StatusConflict, "a timer is already running"
	case errors.Is(err, domain.ErrEntryRunning):
		return http.StatusConflict, "time entry is still running"
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict, "another request is in progress, try again"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if reporter != nil {
		reporter.CaptureError(err, map[string]string{
			"method": c.Request().Method,
			"route":  c.Path(),
		})
	}

	return http.StatusInternalServerError, "internal server error"
}
