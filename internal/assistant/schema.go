package assistant

import (
	"encoding/json"
	"sort"
	"strings"
)

// Type is a schema type in the upper-case spelling of the Gemini API
type Type string

const (
	TypeString  Type = "STRING"
	TypeNumber  Type = "NUMBER"
	TypeInteger Type = "INTEGER"
	TypeBoolean Type = "BOOLEAN"
	TypeArray   Type = "ARRAY"
	TypeObject  Type = "OBJECT"
)

// Schema describes the structure a structured response must follow
type Schema struct {
	Type       Type               `json:"type"`
	Items      *Schema            `json:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// IsArray reports whether the schema's top level is an array
func (s *Schema) IsArray() bool {
	return s != nil && s.Type == TypeArray
}

// JSONSchema converts the schema into standard JSON Schema (lower-case
// types). Every object lists all of its properties as required and rejects
// unknown ones.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{"type": strings.ToLower(string(s.Type))}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		names := make([]string, 0, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
			names = append(names, name)
		}
		sort.Strings(names)
		out["properties"] = props
		out["required"] = names
		out["additionalProperties"] = false
	}
	return out
}

// wrappedJSONSchema returns a JSON Schema whose top level is an object.
// Array schemas are placed under an "items" property.
func (s *Schema) wrappedJSONSchema() (json.RawMessage, error) {
	schema := s.JSONSchema()
	if s.IsArray() {
		schema = map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"items": schema},
			"required":             []string{"items"},
			"additionalProperties": false,
		}
	}
	return json.Marshal(schema)
}
