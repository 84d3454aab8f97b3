// Package audit buffers action events and publishes them in batches.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	defaultBufferSize     = 1024
	defaultFlushInterval  = 500 * time.Millisecond
	defaultMaxAttempts    = 5
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	shutdownFlushTimeout  = 5 * time.Second
)

// BatchLoader writes multiple action events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.ActionEvent) error
}

// Publisher collects events from request handlers and hands them to a
// BatchLoader from a single goroutine. Record never blocks.
type Publisher struct {
	events        chan domain.ActionEvent
	loader        BatchLoader
	clock         clockwork.Clock
	logger        *slog.Logger
	metrics       *observability.Metrics
	batchSize     int
	flushInterval time.Duration

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithClock sets the clock driving the flush ticker and retry backoff.
func WithClock(c clockwork.Clock) Option {
	return func(p *Publisher) { p.clock = c }
}

// WithBufferSize sets how many events may wait for publishing before new ones are dropped.
func WithBufferSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.events = make(chan domain.ActionEvent, n)
		}
	}
}

// WithRetry overrides the attempt limit and backoff bounds for failed batches.
func WithRetry(maxAttempts int, initial, maxBackoff time.Duration) Option {
	return func(p *Publisher) {
		if maxAttempts > 0 {
			p.maxAttempts = maxAttempts
		}
		p.initialBackoff = initial
		p.maxBackoff = maxBackoff
	}
}

// New creates a Publisher that flushes when batchSize events are pending or
// flushInterval has elapsed, whichever comes first.
func New(loader BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, flushInterval time.Duration, opts ...Option) *Publisher {
	p := &Publisher{
		events:         make(chan domain.ActionEvent, defaultBufferSize),
		loader:         loader,
		clock:          clockwork.NewRealClock(),
		logger:         logger,
		metrics:        metrics,
		batchSize:      max(batchSize, 1),
		flushInterval:  flushInterval,
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
	}
	if p.flushInterval <= 0 {
		p.flushInterval = defaultFlushInterval
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Record queues an event for publishing, dropping it if the buffer is full.
func (p *Publisher) Record(event domain.ActionEvent) {
	select {
	case p.events <- event:
	default:
		p.metrics.AuditDropped.Inc()
		p.logger.Warn("audit buffer full, dropping event", "action", event.Action, "event_id", event.ID)
	}
}

// Run publishes queued events until the context is cancelled, then flushes
// whatever is still buffered.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("audit publisher started", "batch_size", p.batchSize, "flush_interval", p.flushInterval)

	ticker := p.clock.NewTicker(p.flushInterval)
	defer ticker.Stop()

	batch := make([]domain.ActionEvent, 0, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			p.shutdown(ctx, batch)
			return nil
		case event := <-p.events:
			batch = append(batch, event)
			if len(batch) >= p.batchSize {
				if p.flush(ctx, batch) {
					p.shutdown(ctx, batch)
					return nil
				}
				batch = make([]domain.ActionEvent, 0, p.batchSize)
			}
		case <-ticker.Chan():
			if len(batch) > 0 {
				if p.flush(ctx, batch) {
					p.shutdown(ctx, batch)
					return nil
				}
				batch = make([]domain.ActionEvent, 0, p.batchSize)
			}
		}
	}
}

// shutdown drains the buffer and writes it with a single attempt per batch.
func (p *Publisher) shutdown(ctx context.Context, batch []domain.ActionEvent) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
	defer cancel()

drain:
	for {
		select {
		case event := <-p.events:
			batch = append(batch, event)
		default:
			break drain
		}
	}

	for len(batch) > 0 {
		n := min(len(batch), p.batchSize)
		p.write(flushCtx, batch[:n], 1)
		batch = batch[n:]
	}
	p.logger.Info("audit publisher stopped")
}

// flush writes a batch with retries. It reports true when the context was
// cancelled mid-retry; the batch is then still pending and belongs to the
// shutdown drain.
func (p *Publisher) flush(ctx context.Context, batch []domain.ActionEvent) bool {
	return p.write(ctx, batch, p.maxAttempts)
}

// write loads one batch, retrying with exponential backoff. After the last
// failed attempt the batch is dropped. A cancelled backoff returns true and
// leaves the batch to the caller.
func (p *Publisher) write(ctx context.Context, batch []domain.ActionEvent, attempts int) bool {
	backoff := p.initialBackoff
	for attempt := 1; ; attempt++ {
		err := p.loader.LoadBatch(ctx, batch)
		if err == nil {
			p.metrics.AuditPublished.Add(float64(len(batch)))
			p.metrics.AuditBatchSize.Observe(float64(len(batch)))
			return false
		}

		p.metrics.AuditErrors.Inc()
		p.logger.Error("audit batch failed", "error", err, "batch_size", len(batch), "attempt", attempt)

		if attempt >= attempts {
			p.metrics.AuditDropped.Add(float64(len(batch)))
			p.logger.Warn("dropping audit batch", "batch_size", len(batch), "attempts", attempt)
			return false
		}
		if !sleepWithContext(ctx, p.clock, backoff) {
			p.logger.Info("audit retry interrupted, deferring batch to shutdown", "batch_size", len(batch))
			return true
		}
		backoff = nextBackoff(backoff, p.maxBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
