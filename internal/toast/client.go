package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"posbridge/internal/metrics"
)

const (
	ProductionHost = "https://ws-api.toasttab.com"
	SandboxHost    = "https://ws-sandbox-api.eng.toasttab.com"

	// TenantHeader scopes every request to one restaurant.
	TenantHeader = "Toast-Restaurant-External-ID"
)

// HostFor maps an environment name to the API host.
func HostFor(environment string) (string, error) {
	switch environment {
	case "", "production":
		return ProductionHost, nil
	case "sandbox":
		return SandboxHost, nil
	default:
		return "", fmt.Errorf("unknown environment %q", environment)
	}
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same bearer string.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// Client sends authenticated, tenant-scoped requests. It keeps no per-call
// state and may be shared between goroutines.
type Client struct {
	baseURL string
	tenant  string
	tokens  TokenSource
	client  *http.Client
}

func NewClient(baseURL, tenant string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tenant:  tenant,
		tokens:  tokens,
		client:  &http.Client{Timeout: timeout},
	}
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Tenant overrides the configured restaurant for this call.
	Tenant string
}

var successBody = json.RawMessage(`{"success":true}`)

// Tenant resolves the restaurant a call applies to.
func (c *Client) Tenant(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if c.tenant != "" {
		return c.tenant, nil
	}
	return "", &ApplicationError{Message: ErrNoTenant.Error(), Err: ErrNoTenant}
}

// Do performs the request and returns the raw JSON body. A 204 or empty body
// becomes {"success":true}.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	tenant, err := c.Tenant(r.Tenant)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(TenantHeader, tenant)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, &NetworkError{Method: method, Path: r.Path, Err: err}
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: r.Path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("api request failed", "method", method, "path", r.Path, "status", resp.StatusCode)
		return nil, &HTTPError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw, resp.StatusCode),
			Body:    raw,
		}
	}

	slog.Debug("api request", "method", method, "path", r.Path, "status", resp.StatusCode, "tenant", tenant)

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return successBody, nil
	}
	return raw, nil
}

// Get decodes a GET response into T.
func Get[T any](ctx context.Context, c *Client, tenant, path string, query url.Values) (T, error) {
	return Send[T](ctx, c, Request{Method: http.MethodGet, Path: path, Query: query, Tenant: tenant})
}

// Send performs r and decodes the response into T.
func Send[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var out T
	raw, err := c.Do(ctx, r)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", r.Path, err)
	}
	return out, nil
}
