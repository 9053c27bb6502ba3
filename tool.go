package toolstream

import (
	"context"
	"encoding/json"
)

// Tool is the schema declared to the model describing a callable capability.
// InputSchema is a JSON Schema object; see SchemaFor to derive one from a Go
// type. Schema declaration is configuration for the model provider; the
// Processor itself only consults the registry by name.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Handler performs one tool's work. Invoke receives the parsed argument
// object and returns an arbitrary result value or an error. Errors returned
// here are recorded on the outcome and never abort stream processing.
type Handler interface {
	Invoke(ctx context.Context, input map[string]any) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, input map[string]any) (any, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx context.Context, input map[string]any) (any, error) {
	return f(ctx, input)
}

// Interface compliance check.
var _ Handler = (HandlerFunc)(nil)
