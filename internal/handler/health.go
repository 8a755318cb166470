package handler

import "net/http"

func HealthHandler(auditEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "audit": auditEnabled})
	}
}
