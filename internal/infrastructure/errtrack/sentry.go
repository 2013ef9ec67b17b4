// Package errtrack reports unexpected errors to Sentry (or any
// Sentry-compatible collector such as Bugsink).
package errtrack

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Options configures the tracker. An empty DSN disables reporting.
type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Tracker is a thin wrapper around the Sentry hub. A nil *Tracker is valid
// and reports nothing.
type Tracker struct {
	hub *sentry.Hub
}

// New initialises the Sentry client. It returns (nil, nil) when no DSN is
// configured.
func New(opts Options) (*Tracker, error) {
	if opts.DSN == "" {
		return nil, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Tags == nil {
				event.Tags = make(map[string]string)
			}
			event.Tags["service"] = "time-registration"
			return event
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &Tracker{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Enabled reports whether errors are being sent anywhere.
func (t *Tracker) Enabled() bool {
	return t != nil && t.hub != nil
}

// CaptureError sends err with the given tags attached.
func (t *Tracker) CaptureError(err error, tags map[string]string) {
	if !t.Enabled() || err == nil {
		return
	}
	t.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		t.hub.CaptureException(err)
	})
}

// Recover reports a panic without re-raising it. Use with defer.
func (t *Tracker) Recover() {
	if r := recover(); r != nil {
		t.CaptureError(fmt.Errorf("panic recovered: %v", r), map[string]string{"kind": "panic"})
	}
}

// Flush waits up to timeout for buffered events to be delivered.
func (t *Tracker) Flush(timeout time.Duration) bool {
	if !t.Enabled() {
		return true
	}
	return t.hub.Flush(timeout)
}
