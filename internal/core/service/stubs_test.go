package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubEntryRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.TimeEntry
	createErr error
	updateErr error
	listCalls int
	// onList runs under the lock at the start of each ListFinalized call,
	// letting a test change the store between pages.
	onList func(call int, byID map[string]*domain.TimeEntry)
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{byID: make(map[string]*domain.TimeEntry)}
}

func (r *stubEntryRepo) Create(_ context.Context, e *domain.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEntryRepo) FindByID(_ context.Context, id string) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEntryRepo) Update(_ context.Context, e *domain.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[e.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

// ListFinalized applies the same filters and ordering the real stores use.
func (r *stubEntryRepo) ListFinalized(_ context.Context, q ports.EntryQuery) ([]*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.onList != nil {
		r.onList(r.listCalls, r.byID)
	}

	var matched []*domain.TimeEntry
	for _, e := range r.byID {
		if e.AmountSeconds <= 0 {
			continue
		}
		if q.UserID != "" && e.UserID != q.UserID {
			continue
		}
		if !q.CreatedFrom.IsZero() && e.CreatedAt.Before(q.CreatedFrom) {
			continue
		}
		if !q.CreatedTo.IsZero() && e.CreatedAt.After(q.CreatedTo) {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if q.Offset >= len(matched) {
		return []*domain.TimeEntry{}, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], nil
}

type stubTimerRepo struct {
	mu        sync.Mutex
	byUser    map[string]*domain.ActiveTimer
	deletes   int
	createErr error
}

func newStubTimerRepo() *stubTimerRepo {
	return &stubTimerRepo{byUser: make(map[string]*domain.ActiveTimer)}
}

// Create mirrors the unique user key of the real stores.
func (r *stubTimerRepo) Create(_ context.Context, t *domain.ActiveTimer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byUser[t.UserID]; exists {
		return domain.ErrTimerRunning
	}
	clone := *t
	r.byUser[t.UserID] = &clone
	return nil
}

func (r *stubTimerRepo) FindByUser(_ context.Context, userID string) (*domain.ActiveTimer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (r *stubTimerRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	delete(r.byUser, userID)
	return nil
}

func (r *stubTimerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}

type stubDirectory struct {
	users      map[string]*domain.User
	topics     map[string]*domain.Topic
	categories map[string]*domain.Category
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		users:      make(map[string]*domain.User),
		topics:     make(map[string]*domain.Topic),
		categories: make(map[string]*domain.Category),
	}
}

func (d *stubDirectory) addUser(u *domain.User)         { d.users[u.ID] = u }
func (d *stubDirectory) addTopic(t *domain.Topic)       { d.topics[t.ID] = t }
func (d *stubDirectory) addCategory(c *domain.Category) { d.categories[c.ID] = c }

func (d *stubDirectory) FindUser(_ context.Context, id string) (*domain.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (d *stubDirectory) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range d.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *stubDirectory) FindUsers(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d *stubDirectory) FindTopic(_ context.Context, id string) (*domain.Topic, error) {
	t, ok := d.topics[id]
	if !ok {
		return nil, domain.ErrTopicNotFound
	}
	return t, nil
}

func (d *stubDirectory) FindTopics(_ context.Context, ids []string) (map[string]*domain.Topic, error) {
	out := make(map[string]*domain.Topic)
	for _, id := range ids {
		if t, ok := d.topics[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (d *stubDirectory) FindCategories(_ context.Context, ids []string) (map[string]*domain.Category, error) {
	out := make(map[string]*domain.Category)
	for _, id := range ids {
		if c, ok := d.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

type stubLocker struct {
	mu     sync.Mutex
	err    error
	locked []string
}

func (l *stubLocker) Lock(_ context.Context, userID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, userID)
	return func() {}, nil
}

type stubNarrator struct{}

func (stubNarrator) Started(d string) string      { return "started: " + d }
func (stubNarrator) Stopped(d, dur string) string { return fmt.Sprintf("stopped: %s (%s)", d, dur) }
func (stubNarrator) Manual(d, dur string) string  { return fmt.Sprintf("manual: %s (%s)", d, dur) }
func (stubNarrator) Edited(d, dur string) string  { return fmt.Sprintf("edited: %s (%s)", d, dur) }
func (stubNarrator) NoDescription() string        { return "(no description)" }
func (stubNarrator) PersonalMessage() string      { return "Personal message" }
func (stubNarrator) Uncategorized() string        { return "Uncategorized" }

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TopicEvent
}

func (p *recordingPublisher) Publish(e domain.TopicEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []domain.TopicEventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.TopicEventKind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}

var discardLogger = zerolog.Nop()
