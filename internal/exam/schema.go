package exam

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes the question bank document: a JSON array of
// question objects.
var bankSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"choices": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string"},
			},
			"correct": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"explanation": map[string]any{
				"type": "string",
			},
			"section": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
		"required": []any{"question", "choices", "correct", "section"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledBankSchema compiles bankSchema once.
func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks raw bank JSON against bankSchema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidBank, err)
	}

	sch, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}
