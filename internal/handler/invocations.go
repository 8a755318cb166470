package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"posbridge/internal/audit"
)

type InvocationLister interface {
	Recent(ctx context.Context, limit int) ([]audit.Record, error)
}

// InvocationsHandler lists the newest audit records. ?limit defaults to 50
// and is capped at 500.
func InvocationsHandler(store InvocationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := audit.DefaultRecentLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "validation", "limit must be a positive integer")
				return
			}
			limit = n
		}

		records, err := store.Recent(r.Context(), limit)
		if err != nil {
			if errors.Is(err, audit.ErrAuditDisabled) {
				writeError(w, http.StatusServiceUnavailable, "unavailable", err.Error())
				return
			}
			slog.Error("list invocations", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"invocations": records, "count": len(records)})
	}
}
