package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// ActiveTimerRepository implements ports.ActiveTimerRepository. The user_id
// primary key allows one pointer per user.
type ActiveTimerRepository struct {
	db *sql.DB
}

var _ ports.ActiveTimerRepository = (*ActiveTimerRepository)(nil)

func NewActiveTimerRepository(db *sql.DB) *ActiveTimerRepository {
	return &ActiveTimerRepository{db: db}
}

func (r *ActiveTimerRepository) Create(ctx context.Context, t *domain.ActiveTimer) error {
	query := `INSERT INTO active_timers (user_id, entry_id, topic_id, description, started_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.UserID, t.EntryID, t.TopicID, t.Description, formatTime(t.StartedAt))
	if isConstraintViolation(err) {
		return domain.ErrTimerRunning
	}
	if err != nil {
		return fmt.Errorf("inserting active timer: %w", err)
	}
	return nil
}

func (r *ActiveTimerRepository) FindByUser(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	var (
		t         domain.ActiveTimer
		startedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, entry_id, topic_id, description, started_at FROM active_timers WHERE user_id = ?`, userID,
	).Scan(&t.UserID, &t.EntryID, &t.TopicID, &t.Description, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading active timer: %w", err)
	}
	if t.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ActiveTimerRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_timers WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting active timer: %w", err)
	}
	return nil
}
