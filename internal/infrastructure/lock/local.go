// Package lock provides the in-process per-user lock used when no Redis is
// configured. It only serializes requests within a single instance.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const defaultWait = 3 * time.Second

type slot struct {
	held chan struct{}
	refs int
}

// LocalLocker is a keyed mutex with a bounded wait.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

var _ ports.UserLocker = (*LocalLocker)(nil)

func NewLocalLocker(wait time.Duration) *LocalLocker {
	if wait <= 0 {
		wait = defaultWait
	}
	return &LocalLocker{slots: make(map[string]*slot), wait: wait}
}

func (l *LocalLocker) Lock(ctx context.Context, userID string) (func(), error) {
	s := l.acquire(userID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.held <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.held
				l.release(userID)
			})
		}, nil
	case <-ctx.Done():
		l.release(userID)
		return nil, ctx.Err()
	case <-timer.C:
		l.release(userID)
		return nil, domain.ErrBusy
	}
}

func (l *LocalLocker) acquire(userID string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[userID]
	if !ok {
		s = &slot{held: make(chan struct{}, 1)}
		l.slots[userID] = s
	}
	s.refs++
	return s
}

// release drops a reference; idle users do not keep a slot around.
func (l *LocalLocker) release(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[userID]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, userID)
	}
}
