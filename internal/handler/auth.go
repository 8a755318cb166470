package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"posbridge/internal/service"
)

type tokenRequest struct {
	APIKey string `json:"apiKey"`
	Client string `json:"client"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

const defaultClient = "operator"

func TokenHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "validation", "invalid json")
			return
		}
		if req.APIKey == "" {
			writeError(w, http.StatusBadRequest, "validation", "apiKey is required")
			return
		}
		if req.Client == "" {
			req.Client = defaultClient
		}

		token, expires, err := authSvc.Issue(req.APIKey, req.Client)
		if err != nil {
			if errors.Is(err, service.ErrInvalidAPIKey) {
				slog.Warn("rejected api key", "client", req.Client)
				writeError(w, http.StatusUnauthorized, "auth", "invalid api key")
				return
			}
			slog.Error("token generation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "token generation failed")
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires})
	}
}
