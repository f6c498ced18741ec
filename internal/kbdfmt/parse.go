package kbdfmt

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// definitionSchema constrains the document shape before decoding so a
// structurally broken file fails with a location instead of decoding
// into a half-empty Definition.
const definitionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "platforms"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "locale": {"type": "string"},
    "displayNames": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "platforms": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "variants": {
            "type": "object",
            "additionalProperties": {
              "type": "object",
              "additionalProperties": {"type": "string"}
            }
          },
          "transforms": {"$ref": "#/$defs/transforms"}
        }
      }
    },
    "transforms": {"$ref": "#/$defs/transforms"}
  },
  "$defs": {
    "transforms": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {"type": "string"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("kbdfmt/definition.schema.json", definitionSchema)

// Parse decodes and validates a YAML keyboard definition.
func Parse(data []byte) (*Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := compiledSchema.Validate(normalize(doc)); err != nil {
		return nil, fmt.Errorf("validate definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	if strings.TrimSpace(def.ID) == "" {
		return nil, fmt.Errorf("decode definition: empty id")
	}
	return &def, nil
}

// normalize rewrites yaml.v3's decoded value into the shapes the schema
// validator accepts: map keys become strings, numbers stay as-is.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = normalize(val)
		}
		return s
	default:
		return v
	}
}
