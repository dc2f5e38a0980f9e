package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// FactsSchema describes serialised case facts. Every key is always present.
var FactsSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"required": []string{
		"complainant_name", "complainant_village", "complainant_taluka",
		"hearing_date", "hearing_time", "distance_km", "attendees", "refs",
	},
	"properties": map[string]any{
		"complainant_name":    map[string]any{"type": "string"},
		"complainant_village": map[string]any{"type": "string"},
		"complainant_taluka":  map[string]any{"type": "string"},
		"hearing_date": map[string]any{
			"type":    "string",
			"pattern": `^$|^[0-9०-९]{1,2}/[0-9०-९]{1,2}/[0-9०-९]{4}$`,
		},
		"hearing_time": map[string]any{"type": "string"},
		"distance_km":  map[string]any{"type": "string"},
		"attendees":    stringArray,
		"refs": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"maxItems": 8,
		},
	},
}

var sourceSchema = map[string]any{
	"type":     "object",
	"required": []string{"method", "runes", "preview"},
	"properties": map[string]any{
		"name":    map[string]any{"type": "string"},
		"method":  map[string]any{"type": "string"},
		"runes":   map[string]any{"type": "integer", "minimum": 0},
		"preview": map[string]any{"type": "string"},
	},
}

// ReportSchema describes a serialised analysis report.
var ReportSchema = map[string]any{
	"$schema":  "http://json-schema.org/draft-07/schema#",
	"type":     "object",
	"required": []string{"id", "case_id", "subject", "analyzed_at", "case", "gr", "facts", "references"},
	"properties": map[string]any{
		"id":           map[string]any{"type": "string", "minLength": 1},
		"case_id":      map[string]any{"type": "string"},
		"subject":      map[string]any{"type": "string"},
		"officer":      map[string]any{"type": "string"},
		"hearing_date": map[string]any{"type": "string"},
		"analyzed_at":  map[string]any{"type": "string"},
		"case":         sourceSchema,
		"gr":           sourceSchema,
		"gr_highlight": map[string]any{"type": "string"},
		"facts":        FactsSchema,
		"references": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"maxItems": MaxReferences,
		},
		"warnings": stringArray,
	},
}

// Validate checks JSON data against a schema map.
func Validate(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
