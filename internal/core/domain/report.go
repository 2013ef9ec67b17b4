package domain

import "time"

// MaxReportRows caps the number of rows a single report returns.
const MaxReportRows = 500

// ReportRow is one display-ready projection of a finalized entry.
type ReportRow struct {
	EntryID         string
	TopicID         string
	TopicTitle      string
	CategoryName    string
	Username        string
	Description     string
	DurationSeconds int64
	CreatedAt       time.Time
}

// Report is the result of a report query. TotalSeconds sums the returned
// rows only, so it reflects the row cap.
type Report struct {
	Rows         []ReportRow
	TotalSeconds int64
}
