package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const entryColumns = `id, topic_id, user_id, description, started_at, amount_seconds, revision, edited_by, created_at, updated_at`

// EntryRepository implements ports.EntryRepository using a SQLite database.
type EntryRepository struct {
	db *sql.DB
}

var _ ports.EntryRepository = (*EntryRepository)(nil)

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TopicID,
		e.UserID,
		e.Description,
		nullableTime(e.StartedAt),
		e.AmountSeconds,
		e.Revision,
		e.EditedBy,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	return e, err
}

func (r *EntryRepository) Update(ctx context.Context, e *domain.TimeEntry) error {
	query := `UPDATE time_entries
		SET description = ?, started_at = ?, amount_seconds = ?, revision = ?, edited_by = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Description,
		nullableTime(e.StartedAt),
		e.AmountSeconds,
		e.Revision,
		e.EditedBy,
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) ListFinalized(ctx context.Context, q ports.EntryQuery) ([]*domain.TimeEntry, error) {
	where := []string{"amount_seconds > 0"}
	var args []interface{}
	if q.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, q.UserID)
	}
	if !q.CreatedFrom.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, formatTime(q.CreatedFrom))
	}
	if !q.CreatedTo.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, formatTime(q.CreatedTo))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // no limit
	}
	args = append(args, limit, q.Offset)

	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*domain.TimeEntry, error) {
	var (
		e                    domain.TimeEntry
		startedAt            sql.NullString
		createdAt, updatedAt string
	)
	err := s.Scan(
		&e.ID,
		&e.TopicID,
		&e.UserID,
		&e.Description,
		&startedAt,
		&e.AmountSeconds,
		&e.Revision,
		&e.EditedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}

	if e.StartedAt, err = parseNullableTime(startedAt); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
