package handler

import "github.com/communiteq/time-registration/internal/core/domain"

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error" example:"access forbidden"`
}

type reportQuery struct {
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"category_id"`
	Username   string `query:"username"`
}

type reportRowResponse struct {
	EntryID           string `json:"entry_id"`
	TopicID           string `json:"topic_id"`
	TopicTitle        string `json:"topic_title"`
	CategoryName      string `json:"category_name"`
	Username          string `json:"username"`
	Description       string `json:"description"`
	DurationSeconds   int64  `json:"duration_seconds"`
	DurationFormatted string `json:"duration_formatted"`
	CreatedAt         string `json:"created_at"`
}

type reportResponse struct {
	Report         []reportRowResponse `json:"report"`
	TotalSeconds   int64               `json:"total_seconds"`
	TotalFormatted string              `json:"total_formatted"`
}

func toReportResponse(r *domain.Report) reportResponse {
	rows := make([]reportRowResponse, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, reportRowResponse{
			EntryID:           row.EntryID,
			TopicID:           row.TopicID,
			TopicTitle:        row.TopicTitle,
			CategoryName:      row.CategoryName,
			Username:          row.Username,
			Description:       row.Description,
			DurationSeconds:   row.DurationSeconds,
			DurationFormatted: domain.FormatDuration(row.DurationSeconds),
			CreatedAt:         formatTimestamp(row.CreatedAt),
		})
	}
	return reportResponse{
		Report:         rows,
		TotalSeconds:   r.TotalSeconds,
		TotalFormatted: domain.FormatDuration(r.TotalSeconds),
	}
}
