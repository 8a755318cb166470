package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"posbridge/internal/audit"
	"posbridge/internal/metrics"
	"posbridge/internal/toast"
)

var ErrToolNotFound = errors.New("tool not found")

// Recorder receives one audit record per call.
type Recorder interface {
	Enqueue(audit.Record)
}

type Registry struct {
	tools    map[string]Tool
	recorder Recorder
}

// NewRegistry returns an empty registry. recorder may be nil.
func NewRegistry(recorder Recorder) *Registry {
	return &Registry{tools: make(map[string]Tool), recorder: recorder}
}

// Register adds tools. A duplicate name is a programming error and panics.
func (r *Registry) Register(tools ...Tool) {
	for _, t := range tools {
		if _, dup := r.tools[t.Name]; dup {
			panic("tool: duplicate registration of " + t.Name)
		}
		r.tools[t.Name] = t
	}
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns every tool sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool to completion.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	start := time.Now()
	result, err := t.Handler(ctx, args)
	elapsed := time.Since(start)

	kind := toast.Kind(err)
	outcome := kind
	if err == nil {
		outcome = audit.StatusOK
	}
	metrics.ToolInvocationsTotal.WithLabelValues(name, outcome).Inc()
	metrics.ToolInvocationDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	tenant := tenantOf(args)
	if err != nil {
		slog.Error("tool failed", "tool", name, "tenant", tenant, "kind", kind, "error", err)
	} else {
		slog.Info("tool called", "tool", name, "tenant", tenant, "duration", elapsed)
	}

	if r.recorder != nil {
		r.recorder.Enqueue(audit.NewRecord(name, tenant, audit.ClientFrom(ctx), kind, elapsed))
	}
	return result, err
}

// tenantOf reads the restaurant override from raw arguments, if any.
func tenantOf(args json.RawMessage) string {
	var s Scope
	if len(args) == 0 || json.Unmarshal(args, &s) != nil {
		return ""
	}
	return s.RestaurantGUID
}
