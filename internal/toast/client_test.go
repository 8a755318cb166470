package toast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokens struct{ err error }

func (f failingTokens) Token(context.Context) (string, error) { return "", f.err }

func newTestClient(t *testing.T, tenant string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, tenant, StaticToken("test-token"), 2*time.Second)
}

func TestClient_Do_Headers(t *testing.T) {
	c := newTestClient(t, "rest-default", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "rest-override", r.Header.Get(TenantHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/v2/orders/o1/void", r.URL.Path)
		assert.Equal(t, "rest-override", r.URL.Query().Get("restaurantGuid"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"voidReason":"dup"}`, string(body))
		_, _ = w.Write([]byte(`{"guid":"o1","voided":true}`))
	})

	raw, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/orders/v2/orders/o1/void",
		Query:  url.Values{"restaurantGuid": {"rest-override"}},
		Body:   map[string]string{"voidReason": "dup"},
		Tenant: "rest-override",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"guid":"o1","voided":true}`, string(raw))
}

func TestClient_Do_DefaultTenant(t *testing.T) {
	c := newTestClient(t, "rest-default", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rest-default", r.Header.Get(TenantHeader))
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Do(context.Background(), Request{Path: "/menus/v2/menus"})
	require.NoError(t, err)
}

func TestClient_Do_NoTenant(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Do(context.Background(), Request{Path: "/menus/v2/menus"})
	require.ErrorIs(t, err, ErrNoTenant)
	assert.Equal(t, "application", Kind(err))
	assert.False(t, called)
}

func TestClient_Do_NoContent(t *testing.T) {
	c := newTestClient(t, "r", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	raw, err := c.Do(context.Background(), Request{Method: http.MethodDelete, Path: "/cashmgmt/v1/entries/e1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))
}

func TestClient_Do_HTTPError(t *testing.T) {
	c := newTestClient(t, "r", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"order not found","code":"NOT_FOUND"}`))
	})

	_, err := c.Do(context.Background(), Request{Path: "/orders/v2/orders/missing"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "order not found", httpErr.Message)
	assert.Contains(t, string(httpErr.Body), "NOT_FOUND")
	assert.Equal(t, "http", Kind(err))
}

func TestClient_Do_HTTPErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, "r", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.Do(context.Background(), Request{Path: "/orders/v2/orders"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Bad Gateway", httpErr.Message)
}

func TestClient_Do_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, "r", StaticToken("t"), time.Second)
	_, err := c.Do(context.Background(), Request{Path: "/orders/v2/orders"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.Equal(t, "network", Kind(err))
}

func TestClient_Do_TokenFailure(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(srv.URL, "r", failingTokens{err: &AuthError{Status: 401, Message: "bad client"}}, time.Second)
	_, err := c.Do(context.Background(), Request{Path: "/orders/v2/orders"})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, called)
}

func TestGet_Decodes(t *testing.T) {
	c := newTestClient(t, "r", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20240215", r.URL.Query().Get("businessDate"))
		_, _ = w.Write([]byte(`{"guid":"o1","businessDate":20240215}`))
	})

	type order struct {
		GUID         string `json:"guid"`
		BusinessDate int    `json:"businessDate"`
	}
	got, err := Get[order](context.Background(), c, "", "/orders/v2/orders/o1", url.Values{"businessDate": {"20240215"}})
	require.NoError(t, err)
	assert.Equal(t, order{GUID: "o1", BusinessDate: 20240215}, got)
}

func TestGet_DecodeFailureIsNotTyped(t *testing.T) {
	c := newTestClient(t, "r", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"guid":`))
	})

	_, err := Get[json.RawMessage](context.Background(), c, "", "/orders/v2/orders/o1", nil)
	require.Error(t, err)
	assert.Equal(t, "internal", Kind(err))
}

func TestHostFor(t *testing.T) {
	host, err := HostFor("sandbox")
	require.NoError(t, err)
	assert.Equal(t, SandboxHost, host)

	host, err = HostFor("")
	require.NoError(t, err)
	assert.Equal(t, ProductionHost, host)

	_, err = HostFor("staging")
	assert.Error(t, err)
}

func TestKind_Wrapped(t *testing.T) {
	err := errors.Join(errors.New("context"), &ValidationError{Message: "limit must be positive"})
	assert.Equal(t, "validation", Kind(err))
	assert.Equal(t, "", Kind(nil))
}
