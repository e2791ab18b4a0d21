package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// tabulaOutputSchema constrains the shape of tabula's JSON table list before
// decoding: a list of tables, each carrying data = rows of {text} cells.
var tabulaOutputSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"data"},
		"properties": map[string]any{
			"data": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"text"},
						"properties": map[string]any{
							"text": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

// validateOutput validates raw extractor output against tabulaOutputSchema.
func validateOutput(data []byte) error {
	b, err := json.Marshal(tabulaOutputSchema)
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
		return fmt.Errorf("unmarshal extractor output: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("extractor output does not match schema: %w", err)
	}
	return nil
}
