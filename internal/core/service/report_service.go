package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// reportPageSize is how many entries are read from the store per round trip.
const reportPageSize = domain.MaxReportRows

// ReportService builds time reports scoped to what the requester can see.
type ReportService struct {
	entries    ports.EntryRepository
	directory  ports.PlatformDirectory
	visibility ports.TopicVisibility
	narrator   ports.Narrator
	location   *time.Location
	logger     zerolog.Logger
}

// NewReportService returns a ReportService. Day bounds of the date filters
// are computed in loc (UTC when nil).
func NewReportService(
	entries ports.EntryRepository,
	directory ports.PlatformDirectory,
	visibility ports.TopicVisibility,
	narrator ports.Narrator,
	loc *time.Location,
	logger zerolog.Logger,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		entries:    entries,
		directory:  directory,
		visibility: visibility,
		narrator:   narrator,
		location:   loc,
		logger:     logger,
	}
}

// QueryReport returns at most domain.MaxReportRows finalized entries, newest
// first, plus the total of the returned rows. An unknown username yields an
// empty report rather than an error.
func (s *ReportService) QueryReport(ctx context.Context, in ports.ReportInput) (*domain.Report, error) {
	requester, err := s.directory.FindUser(ctx, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	q := ports.EntryQuery{Limit: reportPageSize}
	if !in.From.IsZero() {
		q.CreatedFrom = startOfDay(in.From, s.location)
	}
	if !in.To.IsZero() {
		q.CreatedTo = endOfDay(in.To, s.location)
	}
	if name := strings.TrimSpace(in.Username); name != "" {
		user, err := s.directory.FindUserByUsername(ctx, name)
		if errors.Is(err, domain.ErrUserNotFound) {
			return &domain.Report{Rows: []domain.ReportRow{}}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query report: resolve username: %w", err)
		}
		q.UserID = user.ID
	}

	selected, topics, err := s.collect(ctx, requester, in.CategoryID, q)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	rows, err := s.project(ctx, selected, topics)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	report := &domain.Report{Rows: rows}
	for _, r := range rows {
		report.TotalSeconds += r.DurationSeconds
	}

	s.logger.Debug().
		Str("requester_id", requester.ID).
		Int("rows", len(rows)).
		Int64("total_seconds", report.TotalSeconds).
		Msg("report generated")

	return report, nil
}

// collect pages through the store until the row cap is reached, dropping
// entries on topics the requester cannot see or outside the category.
func (s *ReportService) collect(
	ctx context.Context,
	requester *domain.User,
	categoryID string,
	q ports.EntryQuery,
) ([]*domain.TimeEntry, map[string]*domain.Topic, error) {
	topics := make(map[string]*domain.Topic)
	visible := make(map[string]bool)
	selected := make([]*domain.TimeEntry, 0)
	// Offset pages shift when entries are finalized mid-scan, so the same
	// entry can come back on the next page.
	taken := make(map[string]bool)

	for len(selected) < domain.MaxReportRows {
		page, err := s.entries.ListFinalized(ctx, q)
		if err != nil {
			return nil, nil, fmt.Errorf("list entries: %w", err)
		}
		if len(page) == 0 {
			break
		}

		if err := s.loadTopics(ctx, page, topics); err != nil {
			return nil, nil, err
		}

		for _, e := range page {
			if e.AmountSeconds <= 0 || taken[e.ID] {
				continue
			}
			topic := topics[e.TopicID]
			if topic == nil {
				continue
			}
			canSee, seen := visible[topic.ID]
			if !seen {
				canSee, err = s.visibility.CanSee(ctx, requester, topic)
				if err != nil {
					return nil, nil, fmt.Errorf("topic visibility: %w", err)
				}
				visible[topic.ID] = canSee
			}
			if !canSee {
				continue
			}
			if categoryID != "" && topic.CategoryID != categoryID {
				continue
			}
			taken[e.ID] = true
			selected = append(selected, e)
			if len(selected) == domain.MaxReportRows {
				break
			}
		}

		if len(page) < q.Limit {
			break
		}
		q.Offset += len(page)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].CreatedAt.After(selected[j].CreatedAt)
	})
	return selected, topics, nil
}

func (s *ReportService) loadTopics(ctx context.Context, page []*domain.TimeEntry, topics map[string]*domain.Topic) error {
	var missing []string
	for _, e := range page {
		if _, ok := topics[e.TopicID]; !ok {
			missing = append(missing, e.TopicID)
			topics[e.TopicID] = nil
		}
	}
	if len(missing) == 0 {
		return nil
	}
	found, err := s.directory.FindTopics(ctx, missing)
	if err != nil {
		return fmt.Errorf("load topics: %w", err)
	}
	// ids the directory does not know stay mapped to nil
	for _, id := range missing {
		topics[id] = found[id]
	}
	return nil
}

func (s *ReportService) project(ctx context.Context, entries []*domain.TimeEntry, topics map[string]*domain.Topic) ([]domain.ReportRow, error) {
	rows := make([]domain.ReportRow, 0, len(entries))
	if len(entries) == 0 {
		return rows, nil
	}

	userIDs := make([]string, 0, len(entries))
	categoryIDs := make([]string, 0)
	for _, e := range entries {
		userIDs = append(userIDs, e.UserID)
		if t := topics[e.TopicID]; t.CategoryID != "" {
			categoryIDs = append(categoryIDs, t.CategoryID)
		}
	}

	users, err := s.directory.FindUsers(ctx, dedupe(userIDs))
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	categories, err := s.directory.FindCategories(ctx, dedupe(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	for _, e := range entries {
		topic := topics[e.TopicID]
		row := domain.ReportRow{
			EntryID:         e.ID,
			TopicID:         topic.ID,
			TopicTitle:      topic.Title,
			CategoryName:    s.categoryName(topic, categories),
			Description:     e.Description,
			DurationSeconds: e.AmountSeconds,
			CreatedAt:       e.CreatedAt,
		}
		if u, ok := users[e.UserID]; ok {
			row.Username = u.Username
		}
		if strings.TrimSpace(row.Description) == "" {
			row.Description = s.narrator.NoDescription()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ReportService) categoryName(topic *domain.Topic, categories map[string]*domain.Category) string {
	if topic.PrivateMessage {
		return s.narrator.PersonalMessage()
	}
	if c, ok := categories[topic.CategoryID]; ok && topic.CategoryID != "" {
		return c.Name
	}
	return s.narrator.Uncategorized()
}

func startOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func endOfDay(d time.Time, loc *time.Location) time.Time {
	return startOfDay(d, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
