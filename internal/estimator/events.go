package estimator

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/couchcryptid/solar-roi-service/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// BatchPublisher writes estimate events to the destination.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, events []domain.EstimateEvent) error
}

// Event queue tuning.
const (
	DefaultQueueSize = 256
	maxBatch         = 50
	maxAttempts      = 3
	initialBackoff   = 200 * time.Millisecond
	maxBackoff       = 5 * time.Second
	flushTimeout     = 5 * time.Second
)

// EventQueue decouples estimate requests from event publication. Enqueue
// never blocks; Run drains the queue in batches and retries failed writes
// a bounded number of times before dropping the batch.
type EventQueue struct {
	events    chan domain.EstimateEvent
	publisher BatchPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	failing   atomic.Bool
}

// NewEventQueue creates a queue holding up to size pending events.
func NewEventQueue(publisher BatchPublisher, size int, logger *slog.Logger, metrics *observability.Metrics) *EventQueue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &EventQueue{
		events:    make(chan domain.EstimateEvent, size),
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Enqueue schedules an event for publication. It reports false and drops the
// event when the queue is full.
func (q *EventQueue) Enqueue(ev domain.EstimateEvent) bool {
	select {
	case q.events <- ev:
		return true
	default:
		q.metrics.EventsPublished.WithLabelValues("dropped").Inc()
		q.logger.Warn("event queue full, dropping estimate event", "id", ev.ID)
		return false
	}
}

// CheckReadiness reports an error while the most recent publish is failing.
func (q *EventQueue) CheckReadiness(_ context.Context) error {
	if q.failing.Load() {
		return errors.New("estimate event publishing is failing")
	}
	return nil
}

// Run publishes queued events until the context is cancelled, then makes a
// single best-effort attempt to flush what is still queued.
func (q *EventQueue) Run(ctx context.Context) error {
	q.logger.Info("event queue started", "capacity", cap(q.events))

	for {
		select {
		case <-ctx.Done():
			q.logger.Info("event queue stopping", "reason", ctx.Err())
			q.flush(ctx, nil)
			return nil
		case ev := <-q.events:
			batch := q.drain([]domain.EstimateEvent{ev})
			if pending := q.publish(ctx, batch); pending != nil {
				q.logger.Info("event queue stopping", "reason", ctx.Err())
				q.flush(ctx, pending)
				return nil
			}
		}
	}
}

// drain appends whatever is already queued, up to maxBatch events.
func (q *EventQueue) drain(batch []domain.EstimateEvent) []domain.EstimateEvent {
	for len(batch) < maxBatch {
		select {
		case ev := <-q.events:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
	return batch
}

// publish writes one batch, backing off between failed attempts. If ctx ends
// before the batch is written, the batch is returned for the final flush.
func (q *EventQueue) publish(ctx context.Context, batch []domain.EstimateEvent) []domain.EstimateEvent {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := q.publisher.PublishBatch(ctx, batch)
		if err == nil {
			q.failing.Store(false)
			q.metrics.EventsPublished.WithLabelValues("success").Add(float64(len(batch)))
			return nil
		}

		q.failing.Store(true)
		q.logger.Error("publish estimate events failed",
			"error", err,
			"batch_size", len(batch),
			"attempt", attempt,
		)
		if attempt >= maxAttempts {
			q.metrics.EventsPublished.WithLabelValues("error").Add(float64(len(batch)))
			return nil
		}
		if ctx.Err() != nil || !retry.SleepWithContext(ctx, backoff) {
			return batch
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}

// flush writes pending and then everything still queued, on a context
// detached from the cancelled one and bounded by flushTimeout.
func (q *EventQueue) flush(ctx context.Context, pending []domain.EstimateEvent) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	for {
		batch := q.drain(pending)
		pending = nil
		if len(batch) == 0 {
			return
		}
		if err := q.publisher.PublishBatch(flushCtx, batch); err != nil {
			q.metrics.EventsPublished.WithLabelValues("error").Add(float64(len(batch)))
			q.logger.Error("flush estimate events failed", "error", err, "batch_size", len(batch))
			return
		}
		q.failing.Store(false)
		q.metrics.EventsPublished.WithLabelValues("success").Add(float64(len(batch)))
	}
}
