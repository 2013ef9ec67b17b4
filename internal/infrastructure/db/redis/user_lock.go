package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const (
	defaultLockTTL     = 10 * time.Second
	defaultLockWait    = 3 * time.Second
	defaultLockBackoff = 50 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockOptions tunes the per-user lock. Zero values fall back to defaults.
type LockOptions struct {
	TTL     time.Duration
	Wait    time.Duration
	Backoff time.Duration
}

// UserLocker serializes timer operations per user across instances.
// Key format: time-registration:lock:<user_id>
type UserLocker struct {
	client *redis.Client
	opts   LockOptions
	log    zerolog.Logger
}

var _ ports.UserLocker = (*UserLocker)(nil)

// NewUserLocker creates a UserLocker wrapping the given Redis client.
func NewUserLocker(client *redis.Client, opts LockOptions, log zerolog.Logger) *UserLocker {
	if opts.TTL <= 0 {
		opts.TTL = defaultLockTTL
	}
	if opts.Wait <= 0 {
		opts.Wait = defaultLockWait
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultLockBackoff
	}
	return &UserLocker{client: client, opts: opts, log: log}
}

// Lock polls SET NX until the lock is acquired, the wait budget is spent
// (domain.ErrBusy) or ctx is done.
func (l *UserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := lockKey(userID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.opts.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire user lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.opts.Backoff):
		}
	}
}

func (l *UserLocker) releaser(key, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("failed to release user lock")
		}
	}
}

func lockKey(userID string) string {
	return "time-registration:lock:" + userID
}
