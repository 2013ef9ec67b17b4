package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communiteq/time-registration/internal/api/metrics"
	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// TimerHandler handles HTTP requests for the per-user timer.
type TimerHandler struct {
	service ports.TimerService
}

func NewTimerHandler(service ports.TimerService) *TimerHandler {
	return &TimerHandler{service: service}
}

// Toggle handles POST /time-registration/toggle.
//
// @Summary      Start, stop or record time on a topic
// @Description  With manual_entry the duration is recorded as a finished entry. Otherwise a running timer is stopped and an idle user starts one on topic_id.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleRequest  true  "Toggle parameters"
// @Success      200   {object}  timerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /time-registration/toggle [post]
func (h *TimerHandler) Toggle(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Toggle(c.Request().Context(), ports.ToggleInput{
		UserID:      userID,
		TopicID:     req.TopicID,
		Description: req.Description,
		ManualEntry: req.ManualEntry,
		Duration:    string(req.Duration),
	})
	if err != nil {
		return timerError(err)
	}

	metrics.TimerTransitionsTotal.WithLabelValues(timerAction(result)).Inc()
	return c.JSON(http.StatusOK, toTimerResponse(result))
}

// Stop handles POST /time-registration/stop.
//
// @Summary      Stop the running timer
// @Description  Stopping while idle succeeds and reports an inactive timer.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      stopRequest  false  "Optional description and duration override in minutes"
// @Success      200   {object}  timerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /time-registration/stop [post]
func (h *TimerHandler) Stop(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req stopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Stop(c.Request().Context(), ports.StopInput{
		UserID:      userID,
		Description: req.Description,
		Duration:    string(req.Duration),
	})
	if err != nil {
		return timerError(err)
	}

	metrics.TimerTransitionsTotal.WithLabelValues(timerAction(result)).Inc()
	return c.JSON(http.StatusOK, toTimerResponse(result))
}

// Active handles GET /time-registration/active.
//
// @Summary      Get the caller's running timer
// @Tags         timer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  activeTimerResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /time-registration/active [get]
func (h *TimerHandler) Active(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	active, err := h.service.Active(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if active == nil {
		return c.JSON(http.StatusOK, activeTimerResponse{Active: false})
	}

	return c.JSON(http.StatusOK, activeTimerResponse{
		Active:      true,
		EntryID:     active.EntryID,
		TopicID:     active.TopicID,
		Description: active.Description,
		StartedAt:   formatTimestamp(active.StartedAt),
	})
}

// EditEntry handles PUT /time-registration/entries/:id.
//
// @Summary      Correct a finalized time entry
// @Description  Allowed for the entry's owner and administrators. Omitting description keeps the current one.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Time entry id"
// @Param        body  body      editEntryRequest  true  "New description and duration in minutes"
// @Success      200   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /time-registration/entries/{id} [put]
func (h *TimerHandler) EditEntry(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req editEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.service.Edit(c.Request().Context(), ports.EditInput{
		EditorID:    userID,
		EntryID:     c.Param("id"),
		Description: req.Description,
		Duration:    string(req.Duration),
	})
	if err != nil {
		return timerError(err)
	}

	metrics.TimerTransitionsTotal.WithLabelValues("edited").Inc()
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// timerError counts a failed timer operation by class and passes the error
// on to the HTTP error handler.
func timerError(err error) error {
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrValidation):
		reason = "validation"
	case errors.Is(err, domain.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, domain.ErrForbidden):
		reason = "forbidden"
	case errors.Is(err, domain.ErrConflict):
		reason = "conflict"
	}
	metrics.TimerErrorsTotal.WithLabelValues(reason).Inc()
	return err
}
