package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"posbridge/internal/metrics"
)

const (
	DefaultPageSize = 100
	// MaxPages bounds a walk whose termination signal never arrives.
	MaxPages = 1000
)

type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasMore  bool `json:"hasMore"`
}

type TokenPage[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q)+2)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// FetchPage requests a single page. HasMore is set when the page came back
// full, which is the only continuation signal these endpoints give.
func FetchPage[T any](ctx context.Context, c *Client, r Request, page, pageSize int) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	r.Method = http.MethodGet
	r.Query = cloneQuery(r.Query)
	r.Query.Set("page", strconv.Itoa(page))
	r.Query.Set("pageSize", strconv.Itoa(pageSize))

	raw, err := c.Do(ctx, r)
	if err != nil {
		return Page[T]{}, err
	}
	metrics.PagesFetchedTotal.Inc()

	// A 204 or blank body is an empty page.
	var items []T
	if !bytes.Equal(raw, successBody) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode %s: %w", r.Path, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(items) == pageSize,
	}, nil
}

// WalkPages follows page/pageSize pagination from page 1 until a short or
// empty page. A final page that happens to be full costs one extra, empty
// request. Any failed page fails the whole walk.
func WalkPages[T any](ctx context.Context, c *Client, r Request, pageSize int) ([]T, error) {
	all := make([]T, 0)
	for page := 1; page <= MaxPages; page++ {
		p, err := FetchPage[T](ctx, c, r, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", r.Path, page, err)
		}
		all = append(all, p.Items...)
		if len(p.Items) == 0 || !p.HasMore {
			return all, nil
		}
	}
	return nil, Errorf("%s: pagination did not terminate after %d pages", r.Path, MaxPages)
}

// FetchTokenPage requests one page of a continuation-token endpoint. The
// response is either an envelope holding itemsKey and nextPageToken, or a bare
// array, which is treated as the only page.
func FetchTokenPage[T any](ctx context.Context, c *Client, r Request, pageToken, itemsKey string) (TokenPage[T], error) {
	r.Method = http.MethodGet
	r.Query = cloneQuery(r.Query)
	if pageToken != "" {
		r.Query.Set("pageToken", pageToken)
	}

	raw, err := c.Do(ctx, r)
	if err != nil {
		return TokenPage[T]{}, err
	}
	metrics.PagesFetchedTotal.Inc()

	itemsRaw, next, err := splitTokenPage(raw, itemsKey)
	if err != nil {
		return TokenPage[T]{}, fmt.Errorf("decode %s: %w", r.Path, err)
	}

	page := TokenPage[T]{Items: []T{}, NextPageToken: next}
	if len(itemsRaw) > 0 && !bytes.Equal(itemsRaw, []byte("null")) {
		if err := json.Unmarshal(itemsRaw, &page.Items); err != nil {
			return TokenPage[T]{}, fmt.Errorf("decode %s items: %w", r.Path, err)
		}
	}
	return page, nil
}

// WalkTokens follows continuation tokens until one comes back absent or
// empty. A token that repeats is treated as a malformed signal.
func WalkTokens[T any](ctx context.Context, c *Client, r Request, itemsKey string) ([]T, error) {
	all := make([]T, 0)
	seen := make(map[string]struct{})
	token := ""
	for i := 0; i < MaxPages; i++ {
		page, err := FetchTokenPage[T](ctx, c, r, token, itemsKey)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", r.Path, i+1, err)
		}
		all = append(all, page.Items...)

		if page.NextPageToken == "" {
			return all, nil
		}
		if _, dup := seen[page.NextPageToken]; dup {
			return nil, Errorf("%s: pagination token %q repeated", r.Path, page.NextPageToken)
		}
		seen[page.NextPageToken] = struct{}{}
		token = page.NextPageToken
	}
	return nil, Errorf("%s: pagination did not terminate after %d pages", r.Path, MaxPages)
}

func splitTokenPage(raw json.RawMessage, itemsKey string) (json.RawMessage, string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, "", nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, "", err
	}

	var next string
	if tok, ok := envelope["nextPageToken"]; ok && !bytes.Equal(tok, []byte("null")) {
		if err := json.Unmarshal(tok, &next); err != nil {
			return nil, "", fmt.Errorf("nextPageToken: %w", err)
		}
	}
	return envelope[itemsKey], next, nil
}
