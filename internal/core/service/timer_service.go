package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// RoundingConfig holds the site settings the stop transition rounds with.
type RoundingConfig struct {
	IntervalMinutes  int
	RoundUpAtMinutes int
}

// TimerDeps bundles the collaborators of the timer state machine.
type TimerDeps struct {
	Entries   ports.EntryRepository
	Timers    ports.ActiveTimerRepository
	Directory ports.PlatformDirectory
	Authz     ports.Authorizer
	Locker    ports.UserLocker
	Narrator  ports.Narrator
	Events    ports.EventPublisher
}

// TimerService implements the per-user Idle/Running state machine. Running
// is represented only by the stored ActiveTimer pointer and the entry's
// start timestamp.
type TimerService struct {
	deps     TimerDeps
	rounding RoundingConfig
	logger   zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewTimerService(deps TimerDeps, rounding RoundingConfig, logger zerolog.Logger) *TimerService {
	return &TimerService{
		deps:     deps,
		rounding: rounding,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Toggle is the single timer action: a manual entry is recorded directly,
// otherwise a running timer is stopped and an idle user starts one.
func (s *TimerService) Toggle(ctx context.Context, in ports.ToggleInput) (*ports.TimerResult, error) {
	if in.ManualEntry {
		return s.CreateManualEntry(ctx, ports.ManualEntryInput{
			UserID:      in.UserID,
			TopicID:     in.TopicID,
			Description: in.Description,
			Duration:    in.Duration,
		})
	}

	user, err := s.trackingUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("toggle timer: %w", err)
	}

	unlock, err := s.deps.Locker.Lock(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("toggle timer: %w", err)
	}
	defer unlock()

	active, err := s.deps.Timers.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("toggle timer: find active: %w", err)
	}
	if active != nil {
		return s.stop(ctx, user, active, in.Description, in.Duration)
	}
	return s.start(ctx, user, in.TopicID, in.Description)
}

// Start begins a stopwatch for an idle user.
func (s *TimerService) Start(ctx context.Context, in ports.StartInput) (*ports.TimerResult, error) {
	user, err := s.trackingUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}

	unlock, err := s.deps.Locker.Lock(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}
	defer unlock()

	active, err := s.deps.Timers.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("start timer: find active: %w", err)
	}
	if active != nil {
		return nil, fmt.Errorf("start timer: %w", domain.ErrTimerRunning)
	}
	return s.start(ctx, user, in.TopicID, in.Description)
}

// Stop finalizes the user's running entry. Stopping an idle user is not an
// error: any stale pointer is cleared and the result is inactive.
func (s *TimerService) Stop(ctx context.Context, in ports.StopInput) (*ports.TimerResult, error) {
	user, err := s.trackingUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("stop timer: %w", err)
	}

	unlock, err := s.deps.Locker.Lock(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("stop timer: %w", err)
	}
	defer unlock()

	active, err := s.deps.Timers.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("stop timer: find active: %w", err)
	}
	return s.stop(ctx, user, active, in.Description, in.Duration)
}

// CreateManualEntry records a finished entry without touching the user's
// running timer.
func (s *TimerService) CreateManualEntry(ctx context.Context, in ports.ManualEntryInput) (*ports.TimerResult, error) {
	user, err := s.trackingUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("manual entry: %w", err)
	}

	topic, err := s.resolveTopic(ctx, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("manual entry: %w", err)
	}

	minutes, err := domain.ParseMinutes("duration", in.Duration)
	if err != nil {
		return nil, fmt.Errorf("manual entry: %w", err)
	}
	if minutes < 1 {
		return nil, fmt.Errorf("manual entry: %w", domain.Invalid("duration", "must be at least one minute"))
	}

	now := s.now().UTC()
	entry := &domain.TimeEntry{
		ID:            s.newID(),
		TopicID:       topic.ID,
		UserID:        user.ID,
		Description:   in.Description,
		AmountSeconds: minutes.Seconds(),
		Revision:      1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.deps.Entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("manual entry: create: %w", err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("topic_id", entry.TopicID).
		Str("user_id", user.ID).
		Int64("seconds", entry.AmountSeconds).
		Msg("manual time entry recorded")

	s.publish(domain.EventManual, entry,
		s.deps.Narrator.Manual(s.describe(entry.Description), domain.FormatDuration(entry.AmountSeconds)))

	return &ports.TimerResult{EntryID: entry.ID, TopicID: entry.TopicID, Manual: true}, nil
}

// Edit overwrites the description and amount of a finalized entry. Only the
// owner or an admin may edit; running entries are rejected.
func (s *TimerService) Edit(ctx context.Context, in ports.EditInput) (*domain.TimeEntry, error) {
	editor, err := s.deps.Directory.FindUser(ctx, in.EditorID)
	if err != nil {
		return nil, fmt.Errorf("edit entry: %w", err)
	}

	entry, err := s.deps.Entries.FindByID(ctx, in.EntryID)
	if err != nil {
		return nil, fmt.Errorf("edit entry: %w", err)
	}
	if !s.deps.Authz.CanEditEntry(editor, entry) {
		return nil, fmt.Errorf("edit entry: %w", domain.ErrForbidden)
	}
	if entry.Running() {
		return nil, fmt.Errorf("edit entry: %w", domain.ErrEntryRunning)
	}

	minutes, err := domain.ParseMinutes("duration", in.Duration)
	if err != nil {
		return nil, fmt.Errorf("edit entry: %w", err)
	}
	if minutes < 1 {
		return nil, fmt.Errorf("edit entry: %w", domain.Invalid("duration", "must be at least one minute"))
	}

	if in.Description != nil {
		entry.Description = *in.Description
	}
	entry.AmountSeconds = minutes.Seconds()
	entry.Revision++
	entry.EditedBy = editor.ID
	entry.UpdatedAt = s.now().UTC()

	if err := s.deps.Entries.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("edit entry: update: %w", err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("editor_id", editor.ID).
		Int("revision", entry.Revision).
		Msg("time entry edited")

	s.publish(domain.EventEdited, entry,
		s.deps.Narrator.Edited(s.describe(entry.Description), domain.FormatDuration(entry.AmountSeconds)))

	return entry, nil
}

// Active returns the user's running timer, or nil when idle.
func (s *TimerService) Active(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	active, err := s.deps.Timers.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("active timer: %w", err)
	}
	return active, nil
}

func (s *TimerService) start(ctx context.Context, user *domain.User, topicID, description string) (*ports.TimerResult, error) {
	topic, err := s.resolveTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}

	now := s.now().UTC()
	id := s.newID()

	// The pointer goes in first: its per-user uniqueness is what keeps two
	// concurrent starts from both succeeding.
	pointer := &domain.ActiveTimer{
		UserID:      user.ID,
		EntryID:     id,
		TopicID:     topic.ID,
		Description: description,
		StartedAt:   now,
	}
	if err := s.deps.Timers.Create(ctx, pointer); err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}

	entry := &domain.TimeEntry{
		ID:          id,
		TopicID:     topic.ID,
		UserID:      user.ID,
		Description: description,
		StartedAt:   &now,
		Revision:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Entries.Create(ctx, entry); err != nil {
		if delErr := s.deps.Timers.DeleteByUser(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).Msg("failed to roll back active timer")
		}
		return nil, fmt.Errorf("start timer: create entry: %w", err)
	}

	s.logger.Info().
		Str("entry_id", id).
		Str("topic_id", topic.ID).
		Str("user_id", user.ID).
		Msg("timer started")

	s.publish(domain.EventStarted, entry, s.deps.Narrator.Started(s.describe(description)))

	return &ports.TimerResult{Active: true, EntryID: id, TopicID: topic.ID, StartedAt: &now}, nil
}

func (s *TimerService) stop(ctx context.Context, user *domain.User, active *domain.ActiveTimer, description, duration string) (*ports.TimerResult, error) {
	if active == nil {
		if err := s.deps.Timers.DeleteByUser(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("stop timer: clear pointer: %w", err)
		}
		return &ports.TimerResult{Active: false}, nil
	}

	entry, err := s.deps.Entries.FindByID(ctx, active.EntryID)
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		s.logger.Warn().Str("user_id", user.ID).Str("entry_id", active.EntryID).Msg("active timer points at a missing entry")
		return s.clearPointer(ctx, user.ID)
	case err != nil:
		return nil, fmt.Errorf("stop timer: find entry: %w", err)
	case !entry.Running():
		s.logger.Warn().Str("user_id", user.ID).Str("entry_id", entry.ID).Msg("active timer points at a finalized entry")
		return s.clearPointer(ctx, user.ID)
	}

	// The override is only parsed once there is a running entry to stop, so
	// an idle stop never fails on its input.
	var override *domain.Minutes
	if strings.TrimSpace(duration) != "" {
		m, err := domain.ParseMinutes("duration", duration)
		if err != nil {
			return nil, fmt.Errorf("stop timer: %w", err)
		}
		override = &m
	}

	now := s.now().UTC()
	var seconds int64
	if override != nil {
		seconds = override.AtLeastOne().Seconds()
	} else {
		elapsed := int64(now.Sub(*entry.StartedAt) / time.Second)
		seconds = domain.RoundDuration(elapsed, s.rounding.IntervalMinutes, s.rounding.RoundUpAtMinutes)
	}
	// Finalized entries carry a positive amount, even for sub-second stops
	// with rounding disabled or a clock that went backwards.
	if seconds < 1 {
		seconds = 1
	}

	if description != "" {
		entry.Description = description
	}
	entry.Finalize(seconds, now)

	if err := s.deps.Entries.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("stop timer: update entry: %w", err)
	}
	if err := s.deps.Timers.DeleteByUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("stop timer: clear pointer: %w", err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("user_id", user.ID).
		Int64("seconds", seconds).
		Bool("override", override != nil).
		Msg("timer stopped")

	s.publish(domain.EventStopped, entry,
		s.deps.Narrator.Stopped(s.describe(entry.Description), domain.FormatDuration(seconds)))

	return &ports.TimerResult{Active: false, EntryID: entry.ID, TopicID: entry.TopicID}, nil
}

func (s *TimerService) clearPointer(ctx context.Context, userID string) (*ports.TimerResult, error) {
	if err := s.deps.Timers.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("stop timer: clear pointer: %w", err)
	}
	return &ports.TimerResult{Active: false}, nil
}

// trackingUser loads the acting user and enforces the may-track-time capability.
func (s *TimerService) trackingUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.deps.Directory.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.deps.Authz.CanTrackTime(user) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *TimerService) resolveTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	if strings.TrimSpace(topicID) == "" {
		return nil, domain.Invalid("topic_id", "is required")
	}
	topic, err := s.deps.Directory.FindTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic.Deleted {
		return nil, domain.ErrTopicNotFound
	}
	return topic, nil
}

func (s *TimerService) describe(description string) string {
	if strings.TrimSpace(description) == "" {
		return s.deps.Narrator.NoDescription()
	}
	return description
}

func (s *TimerService) publish(kind domain.TopicEventKind, entry *domain.TimeEntry, text string) {
	s.deps.Events.Publish(domain.TopicEvent{
		Kind:            kind,
		EntryID:         entry.ID,
		TopicID:         entry.TopicID,
		UserID:          entry.UserID,
		Revision:        entry.Revision,
		DurationSeconds: entry.AmountSeconds,
		Text:            text,
		OccurredAt:      entry.UpdatedAt,
	})
}
