package toolstream

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor derives a JSON Schema for T suitable for a Tool's InputSchema.
// Definitions are inlined so the result is a single self-contained object.
// Use `json` and `jsonschema` struct tags on T to control property names,
// enums, and descriptions.
func SchemaFor[T any]() (json.RawMessage, error) {
	r := jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	schema := r.Reflect(new(T))
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("toolstream: reflecting schema: %w", err)
	}
	return data, nil
}

// MustSchemaFor is like SchemaFor but panics on error. Intended for
// package-level tool declarations where the input type is fixed at compile
// time.
func MustSchemaFor[T any]() json.RawMessage {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}
