// Package service maps each POS domain onto the API client: request paths,
// query parameters and request bodies live here, folds live in report.
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"posbridge/internal/toast"
)

// query builds url.Values from alternating key/value pairs, skipping empty
// strings and zero integers.
func query(kv ...any) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			if v != "" {
				q.Set(key, v)
			}
		case int:
			if v != 0 {
				q.Set(key, strconv.Itoa(v))
			}
		}
	}
	return q
}

// scope resolves the tenant for a call and starts its query with the
// restaurantGuid parameter the API expects alongside the header.
func scope(c *toast.Client, tenant string, kv ...any) (string, url.Values, error) {
	resolved, err := c.Tenant(tenant)
	if err != nil {
		return "", nil, err
	}
	return resolved, query(append([]any{"restaurantGuid", resolved}, kv...)...), nil
}

func getRaw(ctx context.Context, c *toast.Client, tenant, path string, kv ...any) (json.RawMessage, error) {
	resolved, q, err := scope(c, tenant, kv...)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, toast.Request{Method: http.MethodGet, Path: path, Query: q, Tenant: resolved})
}

// getList fetches an endpoint that answers with a bare array.
func getList(ctx context.Context, c *toast.Client, tenant, path string, kv ...any) ([]json.RawMessage, error) {
	resolved, q, err := scope(c, tenant, kv...)
	if err != nil {
		return nil, err
	}
	items, err := toast.Get[[]json.RawMessage](ctx, c, resolved, path, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// send issues a write scoped to the tenant, with restaurantGuid in the query.
func send(ctx context.Context, c *toast.Client, tenant, method, path string, body any, kv ...any) (json.RawMessage, error) {
	resolved, q, err := scope(c, tenant, kv...)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, toast.Request{Method: method, Path: path, Query: q, Body: body, Tenant: resolved})
}
