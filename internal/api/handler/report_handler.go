package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/communiteq/time-registration/internal/api/metrics"
	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ReportHandler serves the time registration report.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Report handles GET /time-registration/report.
//
// @Summary      Query finalized time entries
// @Description  Returns at most 500 rows, newest first. Entries on topics the caller cannot see are left out. total_seconds sums the returned rows.
// @Tags         report
// @Produce      json
// @Security     BearerAuth
// @Param        from         query     string  false  "First day (YYYY-MM-DD), inclusive"
// @Param        to           query     string  false  "Last day (YYYY-MM-DD), inclusive"
// @Param        category_id  query     string  false  "Only topics in this category"
// @Param        username     query     string  false  "Only entries of this user"
// @Success      200          {object}  reportResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /time-registration/report [get]
func (h *ReportHandler) Report(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var q reportQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	from, err := parseDay("from", q.From)
	if err != nil {
		return err
	}
	to, err := parseDay("to", q.To)
	if err != nil {
		return err
	}

	report, err := h.service.QueryReport(c.Request().Context(), ports.ReportInput{
		RequesterID: userID,
		From:        from,
		To:          to,
		CategoryID:  q.CategoryID,
		Username:    q.Username,
	})
	if err != nil {
		return err
	}

	metrics.ReportRows.Observe(float64(len(report.Rows)))
	return c.JSON(http.StatusOK, toReportResponse(report))
}

// parseDay reads an optional YYYY-MM-DD calendar day. The empty string is the
// zero time, which disables the bound.
func parseDay(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "must be a date formatted as YYYY-MM-DD")
	}
	return d, nil
}
