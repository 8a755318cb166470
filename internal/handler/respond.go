package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"posbridge/internal/toast"
	"posbridge/internal/tool"
)

type apiError struct {
	Type           string             `json:"type"`
	Message        string             `json:"message"`
	Status         int                `json:"status"`
	UpstreamStatus int                `json:"upstreamStatus,omitempty"`
	Fields         []toast.FieldError `json:"fields,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Type: errType, Message: message, Status: status}})
}

// writeFailure maps an error from the tool or service layer onto a status
// code. Upstream failures are 5xx because the caller's request was fine.
func writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, tool.ErrToolNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	body := apiError{Type: toast.Kind(err), Message: err.Error()}
	var (
		validErr *toast.ValidationError
		httpErr  *toast.HTTPError
	)
	switch body.Type {
	case "validation":
		body.Status = http.StatusBadRequest
		if errors.As(err, &validErr) {
			body.Fields = validErr.Fields
		}
	case "application":
		body.Status = http.StatusUnprocessableEntity
	case "auth":
		body.Status = http.StatusBadGateway
	case "http":
		body.Status = http.StatusBadGateway
		if errors.As(err, &httpErr) {
			body.UpstreamStatus = httpErr.Status
		}
	case "network":
		body.Status = http.StatusGatewayTimeout
	default:
		slog.Error("unexpected error", "error", err)
		body.Status = http.StatusInternalServerError
		body.Message = "internal error"
	}
	writeJSON(w, body.Status, errorResponse{Error: body})
}
