package data

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const typeListSchema = `{
  "type": "object",
  "required": ["types"],
  "properties": {
    "types": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "kind", "category", "width", "height"],
        "properties": {
          "id":                 {"type": "string", "minLength": 1},
          "kind":               {"enum": ["creature", "item", "staticObject"]},
          "category":           {"type": "string", "minLength": 1},
          "width":              {"type": "number", "exclusiveMinimum": 0},
          "height":             {"type": "number", "exclusiveMinimum": 0},
          "pickup":             {"type": "boolean"},
          "exempt":             {"type": "boolean"},
          "collision_modifier": {"type": "number", "minimum": 0, "maximum": 1},
          "health":             {"type": "number", "minimum": 0},
          "speed":              {"type": "number", "minimum": 0},
          "damage":             {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

const lootListSchema = `{
  "type": "object",
  "required": ["loot"],
  "properties": {
    "loot": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type_id", "drops"],
        "properties": {
          "type_id": {"type": "string", "minLength": 1},
          "drops": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["item_id", "probability"],
              "properties": {
                "item_id":     {"type": "string", "minLength": 1},
                "probability": {"type": "number", "minimum": 0, "maximum": 1},
                "min":         {"type": "integer", "minimum": 1},
                "max":         {"type": "integer", "minimum": 1}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	typeListValidator = jsonschema.MustCompileString("types.schema.json", typeListSchema)
	lootListValidator = jsonschema.MustCompileString("loot.schema.json", lootListSchema)
)

// validateYAML checks raw YAML against a compiled schema. The document is
// normalised through JSON so numbers reach the validator as float64.
func validateYAML(s *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("normalise: %w", err)
	}
	return s.Validate(v)
}
