package worker

import (
	"context"
	"log/slog"
	"time"

	"posbridge/internal/audit"
)

const (
	defaultInterval  = 5 * time.Second
	defaultBatchSize = 100
)

type Batcher interface {
	InsertBatch(ctx context.Context, records []audit.Record) error
}

// AuditWorker moves queued invocation records into the store.
type AuditWorker struct {
	queue     *audit.Queue
	store     Batcher
	interval  time.Duration
	batchSize int
}

func NewAuditWorker(queue *audit.Queue, store Batcher, interval time.Duration, batchSize int) *AuditWorker {
	if interval <= 0 {
		interval = defaultInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &AuditWorker{
		queue:     queue,
		store:     store,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start flushes on every tick until ctx is done, then flushes what is left.
func (w *AuditWorker) Start(ctx context.Context) {
	slog.Info("starting audit worker", "interval", w.interval, "batch", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is already cancelled; the final flush gets its own deadline.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx)
			cancel()
			slog.Info("audit worker stopped")
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// flush drains the queue batch by batch. A failed batch is logged and lost.
func (w *AuditWorker) flush(ctx context.Context) int {
	written := 0
	for {
		batch := w.queue.Drain(w.batchSize)
		if len(batch) == 0 {
			return written
		}
		if err := w.store.InsertBatch(ctx, batch); err != nil {
			slog.Error("audit batch failed", "records", len(batch), "error", err)
		} else {
			written += len(batch)
		}
		if len(batch) < w.batchSize {
			return written
		}
	}
}
