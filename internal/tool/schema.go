package tool

import (
	"reflect"
	"strings"
)

// Schema is the JSON-schema subset used to describe tool arguments.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// SchemaOf derives a schema from a Go type. Property names follow the json
// tag, descriptions the desc tag; "required" and "oneof" rules in the
// validate tag become required properties and enums.
func SchemaOf(t reflect.Type) *Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		s := &Schema{Type: "object", Properties: map[string]*Schema{}}
		addFields(s, t)
		return s
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: SchemaOf(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	default:
		return &Schema{}
	}
}

func addFields(s *Schema, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			addFields(s, f.Type)
			continue
		}
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}

		p := SchemaOf(f.Type)
		p.Description = f.Tag.Get("desc")
		for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
			switch {
			case rule == "required":
				s.Required = append(s.Required, name)
			case strings.HasPrefix(rule, "oneof="):
				p.Enum = strings.Fields(strings.TrimPrefix(rule, "oneof="))
			}
		}
		s.Properties[name] = p
	}
}
