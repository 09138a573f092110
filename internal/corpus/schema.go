package corpus

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://studydesk/corpus.json"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// documentSchema describes the corpus document accepted by Parse.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"knowledge", "questions"},
	"properties": map[string]any{
		"meta": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":           map[string]any{"type": "string"},
				"version":         map[string]any{"type": "string"},
				"knowledge_count": map[string]any{"type": "integer", "minimum": 0},
				"question_count":  map[string]any{"type": "integer", "minimum": 0},
			},
		},
		"documents": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title"},
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{"type": "string"},
					"desc":  map[string]any{"type": "string"},
					"web":   map[string]any{"type": "string"},
					"file":  map[string]any{"type": "string"},
					"pdf":   map[string]any{"type": "string"},
				},
			},
		},
		"knowledge": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "minLength": 1},
					"chapter": map[string]any{"type": "string"},
					"title":   map[string]any{"type": "string"},
					"content": map[string]any{"type": "string"},
					"tags":    stringList,
				},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "qtype", "stem"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "string", "minLength": 1},
					"source": map[string]any{"type": "string"},
					"qtype": map[string]any{
						"type": "string",
						"enum": []any{"single", "multiple", "truefalse", "short", "flash"},
					},
					"stem":    map[string]any{"type": "string"},
					"options": stringList,
					"answer": map[string]any{
						"type":  []any{"string", "array", "null"},
						"items": map[string]any{"type": "string"},
					},
					"explanation": map[string]any{"type": []any{"string", "null"}},
					"tags":        stringList,
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants decoded JSON values (float64 numbers, []any),
		// so round-trip the Go literal through encoding/json.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
