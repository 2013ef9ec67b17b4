package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/communiteq/time-registration/internal/api/metrics"
	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	notifyTimeout  = 5 * time.Second
)

// Dispatcher routes topic events to a fixed set of workers using consistent
// hashing on the topic id, so observers of one topic see its events in order.
type Dispatcher struct {
	workers  []chan domain.TopicEvent
	notifier ports.Notifier
	log      zerolog.Logger
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.TopicEvent, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TopicEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands the event to the worker owning its topic. A full shard
// drops the event instead of blocking the request that produced it.
func (d *Dispatcher) Publish(event domain.TopicEvent) {
	shard := d.shardIndex(event.TopicID)
	select {
	case d.workers[shard] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(shard)).Inc()
		if event.Kind == domain.EventStopped || event.Kind == domain.EventManual {
			metrics.TrackedSecondsTotal.Add(float64(event.DurationSeconds))
		}
	default:
		metrics.TopicEventsTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		d.log.Warn().
			Str("topic_id", event.TopicID).
			Str("kind", string(event.Kind)).
			Msg("notification queue full, event dropped")
	}
}

// shardIndex maps a topic id deterministically to a worker index.
func (d *Dispatcher) shardIndex(topicID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(topicID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TopicEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, event domain.TopicEvent) {
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	timer := prometheus.NewTimer(metrics.NotificationDuration.WithLabelValues(string(event.Kind)))
	err := d.notifier.Notify(notifyCtx, event)
	timer.ObserveDuration()

	if err != nil {
		metrics.TopicEventsTotal.WithLabelValues(string(event.Kind), "failed").Inc()
		d.log.Error().Err(err).
			Str("topic_id", event.TopicID).
			Str("entry_id", event.EntryID).
			Int("worker_id", worker).
			Msg("topic notification failed")
		return
	}
	metrics.TopicEventsTotal.WithLabelValues(string(event.Kind), "delivered").Inc()
}
