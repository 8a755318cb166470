package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"posbridge/internal/metrics"
)

const (
	authPath          = "/authentication/v1/authentication/login"
	machineClientType = "TOAST_MACHINE_CLIENT"

	// ExpiryBuffer is how long before its expiry a token stops being reused.
	ExpiryBuffer    = 5 * time.Minute
	defaultLifetime = time.Hour
)

type AuthToken struct {
	AccessToken string
	TokenType   string
	Scope       string
	ExpiresAt   time.Time
}

// UsableAt reports whether the token may still be sent at now.
func (t AuthToken) UsableAt(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.ExpiresAt.Add(-ExpiryBuffer))
}

type authRequest struct {
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	UserAccessType string `json:"userAccessType"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
	Token       *struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		ExpiresIn   int64  `json:"expiresIn"`
		Scope       string `json:"scope"`
	} `json:"token"`
}

// TokenManager caches a client-credentials token and replaces it once it
// enters the expiry buffer. Concurrent callers that both see a stale token may
// both exchange; whichever exchange finishes last is kept.
type TokenManager struct {
	client       *http.Client
	authURL      string
	clientID     string
	clientSecret string
	now          func() time.Time

	mu    sync.Mutex
	token AuthToken
}

func NewTokenManager(baseURL, clientID, clientSecret string, timeout time.Duration) *TokenManager {
	return &TokenManager{
		client:       &http.Client{Timeout: timeout},
		authURL:      strings.TrimRight(baseURL, "/") + authPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns a bearer token that is usable now, exchanging credentials
// when the cached one is absent or stale.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	cached := m.token
	m.mu.Unlock()

	if cached.UsableAt(m.now()) {
		return cached.AccessToken, nil
	}

	fresh, err := m.exchange(ctx)
	if err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.TokenExchangesTotal.WithLabelValues("ok").Inc()

	m.mu.Lock()
	m.token = fresh
	m.mu.Unlock()

	slog.Debug("access token refreshed", "expires_at", fresh.ExpiresAt)
	return fresh.AccessToken, nil
}

// Current returns the cached token without refreshing it.
func (m *TokenManager) Current() AuthToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *TokenManager) exchange(ctx context.Context) (AuthToken, error) {
	payload, err := json.Marshal(authRequest{
		ClientID:       m.clientID,
		ClientSecret:   m.clientSecret,
		UserAccessType: machineClientType,
	})
	if err != nil {
		return AuthToken{}, &AuthError{Message: "encode credentials", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authURL, bytes.NewReader(payload))
	if err != nil {
		return AuthToken{}, &AuthError{Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	issuedAt := m.now()
	resp, err := m.client.Do(req)
	if err != nil {
		return AuthToken{}, &AuthError{Message: "no response from authentication endpoint", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AuthToken{}, &AuthError{Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return AuthToken{}, &AuthError{Status: resp.StatusCode, Message: errorMessage(body, resp.StatusCode)}
	}

	var res authResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return AuthToken{}, &AuthError{Message: "malformed authentication response", Err: err}
	}

	token := AuthToken{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		Scope:       res.Scope,
	}
	lifetime := time.Duration(res.ExpiresIn) * time.Second
	if res.Token != nil {
		token.AccessToken = res.Token.AccessToken
		token.TokenType = res.Token.TokenType
		token.Scope = res.Token.Scope
		lifetime = time.Duration(res.Token.ExpiresIn) * time.Second
	}
	if token.AccessToken == "" {
		return AuthToken{}, &AuthError{Message: "authentication response carried no access token"}
	}

	switch {
	case lifetime > 0:
		token.ExpiresAt = issuedAt.Add(lifetime)
	default:
		token.ExpiresAt = jwtExpiry(token.AccessToken, issuedAt)
	}

	return token, nil
}

// jwtExpiry reads the exp claim of an access token without verifying it. The
// signature is the API's concern; only the lifetime is needed here.
func jwtExpiry(accessToken string, issuedAt time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return issuedAt.Add(defaultLifetime)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(issuedAt) {
		return issuedAt.Add(defaultLifetime)
	}
	return exp.Time
}

func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
