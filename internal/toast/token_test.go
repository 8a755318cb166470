package toast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newAuthServer(t *testing.T, respond func(w http.ResponseWriter, n int32)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, authPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req authRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "id", req.ClientID)
		assert.Equal(t, "secret", req.ClientSecret)
		assert.Equal(t, machineClientType, req.UserAccessType)

		n := atomic.AddInt32(&calls, 1)
		respond(w, n)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestTokenManager_ReusesUntilBuffer(t *testing.T) {
	srv, calls := newAuthServer(t, func(w http.ResponseWriter, n int32) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-" + string(rune('0'+n)),
			"token_type":   "Bearer",
			"expires_in":   3600,
			"scope":        "orders:read",
		})
	})

	clock := &fakeClock{t: time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)}
	m := NewTokenManager(srv.URL, "id", "secret", time.Second)
	m.now = clock.now

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, "orders:read", m.Current().Scope)

	clock.advance(3000 * time.Second)
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))

	// 299s before expiry is inside the 300s buffer.
	clock.advance(301 * time.Second)
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestTokenManager_NestedResponseShape(t *testing.T) {
	srv, _ := newAuthServer(t, func(w http.ResponseWriter, _ int32) {
		_, _ = w.Write([]byte(`{"token":{"accessToken":"nested","tokenType":"Bearer","expiresIn":600}}`))
	})

	issued := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(srv.URL, "id", "secret", time.Second)
	m.now = func() time.Time { return issued }

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nested", tok)
	assert.Equal(t, issued.Add(600*time.Second), m.Current().ExpiresAt)
}

func TestTokenManager_LifetimeFromJWT(t *testing.T) {
	issued := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	exp := issued.Add(20 * time.Minute)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(exp),
	}).SignedString([]byte("upstream-key"))
	require.NoError(t, err)

	srv, _ := newAuthServer(t, func(w http.ResponseWriter, _ int32) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": signed})
	})

	m := NewTokenManager(srv.URL, "id", "secret", time.Second)
	m.now = func() time.Time { return issued }

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.True(t, exp.Equal(m.Current().ExpiresAt))
}

func TestTokenManager_DefaultLifetime(t *testing.T) {
	srv, _ := newAuthServer(t, func(w http.ResponseWriter, _ int32) {
		_, _ = w.Write([]byte(`{"access_token":"opaque"}`))
	})

	issued := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(srv.URL, "id", "secret", time.Second)
	m.now = func() time.Time { return issued }

	_, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), m.Current().ExpiresAt)
}

func TestTokenManager_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "rejected credentials", status: http.StatusUnauthorized, body: `{"message":"bad client"}`},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
		{name: "missing token", status: http.StatusOK, body: `{"token_type":"Bearer"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newAuthServer(t, func(w http.ResponseWriter, _ int32) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			m := NewTokenManager(srv.URL, "id", "secret", time.Second)
			_, err := m.Token(context.Background())

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, "auth", Kind(err))
		})
	}
}

func TestTokenManager_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := NewTokenManager(url, "id", "secret", time.Second)
	_, err := m.Token(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, authErr.Status)
}
