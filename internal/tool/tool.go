// Package tool exposes the POS services as named operations that take JSON
// arguments and return JSON-serializable results.
package tool

import (
	"context"
	"encoding/json"
	"reflect"
)

type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	InputSchema *Schema `json:"inputSchema"`
	Handler     Handler `json:"-"`
}

// Scope is embedded in every argument struct so each call can target a
// restaurant other than the configured one.
type Scope struct {
	RestaurantGUID string `json:"restaurantGuid,omitempty" desc:"Restaurant GUID (uses the configured default when omitted)"`
}

// New builds a tool whose schema is derived from A and whose handler decodes
// and validates A before calling fn.
func New[A any](name, description string, fn func(ctx context.Context, args A) (any, error)) Tool {
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: SchemaOf(reflect.TypeFor[A]()),
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args A
			if err := bind(raw, &args); err != nil {
				return nil, err
			}
			return fn(ctx, args)
		},
	}
}

// list wraps a collection with its count under key.
func list[T any](key string, items []T) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{key: items, "count": len(items)}
}

func one(key string, v any) map[string]any {
	return map[string]any{key: v}
}

func success(result any) map[string]any {
	return map[string]any{"success": true, "result": result}
}

// done reports a write that has no upstream payload worth echoing.
func done(kv ...any) map[string]any {
	out := map[string]any{"success": true}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			out[key] = kv[i+1]
		}
	}
	return out
}
