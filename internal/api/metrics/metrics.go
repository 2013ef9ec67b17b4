// Package metrics defines and registers the custom Prometheus metrics of the
// time registration API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "time_registration"

// ── Timer metrics ─────────────────────────────────────────────────────────────

// TimerTransitionsTotal counts completed timer operations.
// Label:
//   - action: "started", "stopped", "manual", "edited" or "noop" (stop while idle)
var TimerTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timer_transitions_total",
		Help:      "Total number of timer operations, by resulting action.",
	},
	[]string{"action"},
)

// TimerErrorsTotal counts rejected timer operations.
// Label:
//   - reason: "validation", "not_found", "forbidden", "conflict" or "internal"
var TimerErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timer_errors_total",
		Help:      "Total number of timer operations that failed, by error class.",
	},
	[]string{"reason"},
)

// TrackedSecondsTotal accumulates the seconds recorded on finalized entries.
var TrackedSecondsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracked_seconds_total",
		Help:      "Total number of seconds recorded by stops and manual entries.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportRows observes how many rows each report returned.
var ReportRows = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_rows",
		Help:      "Number of rows returned per report query.",
		Buckets:   []float64{0, 10, 50, 100, 250, 500},
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// TopicEventsTotal counts topic event deliveries.
// Labels:
//   - kind: "started", "stopped", "manual" or "edited"
//   - result: "delivered", "failed" or "dropped" (queue full)
var TopicEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "topic_events_total",
		Help:      "Total number of topic events handled by the dispatcher, by kind and result.",
	},
	[]string{"kind", "result"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDuration measures how long a single notifier call takes.
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of topic event delivery to the notifier.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
