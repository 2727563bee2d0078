package schema

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONSchema renders the tool's filter schema as the JSON Schema the MCP
// tool listing advertises. additionalProperties is false so clients see
// up front that unrecognized filters are rejected.
func (s Schema) JSONSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s.Specs))
	var required []string

	for _, sp := range s.Specs {
		prop := &jsonschema.Schema{Description: sp.Desc}
		switch sp.Kind {
		case String, Date, Season, Enum:
			prop.Type = "string"
		case Int:
			prop.Type = "integer"
			if sp.Max > 0 {
				min := float64(sp.Min)
				max := float64(sp.Max)
				prop.Minimum = &min
				prop.Maximum = &max
			}
		case Float:
			prop.Type = "number"
		case Bool:
			prop.Type = "boolean"
		}
		if sp.Kind == Enum {
			prop.Enum = make([]any, len(sp.Allowed))
			for i, v := range sp.Allowed {
				prop.Enum[i] = v
			}
		}
		if sp.Kind == Season {
			prop.Pattern = seasonRe.String()
		}
		if sp.Default != nil {
			if raw, err := json.Marshal(sp.Default); err == nil {
				prop.Default = raw
			}
		}
		if sp.Required {
			required = append(required, sp.Name)
		}
		props[sp.Name] = prop
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}
