// Package audit records tool invocation metadata. Records never carry the
// arguments or results of a call, only what was called, for whom, and how it
// ended.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"posbridge/internal/metrics"
)

var ErrAuditDisabled = errors.New("audit log disabled")

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Record struct {
	ID         uuid.UUID `json:"id"`
	Tool       string    `json:"tool"`
	Tenant     string    `json:"tenant,omitempty"`
	Client     string    `json:"client,omitempty"`
	Status     string    `json:"status"`
	ErrorType  string    `json:"errorType,omitempty"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewRecord stamps an invocation that finished now. An empty errorType means
// the call succeeded.
func NewRecord(tool, tenant, client, errorType string, elapsed time.Duration) Record {
	status := StatusOK
	if errorType != "" {
		status = StatusError
	}
	return Record{
		ID:         uuid.New(),
		Tool:       tool,
		Tenant:     tenant,
		Client:     client,
		Status:     status,
		ErrorType:  errorType,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
}

type clientKey struct{}

// WithClient tags ctx with the authenticated caller.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

func ClientFrom(ctx context.Context) string {
	client, _ := ctx.Value(clientKey{}).(string)
	return client
}

// Queue buffers records between the request path and the flushing worker.
// Enqueue never blocks: when the buffer is full the record is dropped.
type Queue struct {
	ch chan Record
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1024
	}
	return &Queue{ch: make(chan Record, size)}
}

func (q *Queue) Enqueue(r Record) {
	select {
	case q.ch <- r:
	default:
		metrics.AuditDroppedTotal.Inc()
		slog.Warn("audit queue full, record dropped", "tool", r.Tool, "id", r.ID)
	}
}

// Drain removes up to max queued records without waiting.
func (q *Queue) Drain(max int) []Record {
	out := make([]Record, 0, min(max, len(q.ch)))
	for len(out) < max {
		select {
		case r := <-q.ch:
			out = append(out, r)
		default:
			return out
		}
	}
	return out
}

func (q *Queue) Len() int { return len(q.ch) }
