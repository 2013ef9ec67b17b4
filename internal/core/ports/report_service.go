package ports

import (
	"context"
	"time"

	"github.com/communiteq/time-registration/internal/core/domain"
)

// ReportInput carries the report filters. From and To are calendar days;
// the zero time disables the bound.
type ReportInput struct {
	RequesterID string
	From        time.Time
	To          time.Time
	CategoryID  string
	Username    string
}

// ReportService aggregates finalized entries into report rows.
type ReportService interface {
	QueryReport(ctx context.Context, in ReportInput) (*domain.Report, error)
}
