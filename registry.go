package toolstream

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Registry maps tool names to handlers. It is populated at startup and read
// by the Processor during runs. Register is not safe for concurrent use with
// Process: register every tool before the first run, then treat the registry
// as immutable. A single registry may be shared by any number of runs.
type Registry struct {
	entries  map[string]registryEntry
	validate bool
}

type registryEntry struct {
	tool    Tool
	handler Handler
	schema  *jsonschema.Schema // compiled InputSchema; nil unless validation is on
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithValidation compiles each registered tool's InputSchema and validates
// parsed arguments against it before the handler is invoked. Arguments that
// fail validation are recorded as malformed, same as unparseable text.
func WithValidation() RegistryOption {
	return func(r *Registry) { r.validate = true }
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[string]registryEntry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool and its handler. A tool with the same name replaces
// the previous entry. With validation enabled, the tool's InputSchema is
// compiled here; a schema that does not compile is a registration error.
func (r *Registry) Register(tool Tool, h Handler) error {
	if tool.Name == "" {
		return fmt.Errorf("toolstream: tool name must not be empty")
	}
	if h == nil {
		return fmt.Errorf("toolstream: tool %q: handler must not be nil", tool.Name)
	}
	entry := registryEntry{tool: tool, handler: h}
	if r.validate && len(tool.InputSchema) > 0 {
		schema, err := compileSchema(tool.Name, tool.InputSchema)
		if err != nil {
			return fmt.Errorf("toolstream: tool %q: %w", tool.Name, err)
		}
		entry.schema = schema
	}
	r.entries[tool.Name] = entry
	return nil
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return entry.handler, true
}

// Tools returns the declared tool schemas sorted by name, for passing to a
// model provider.
func (r *Registry) Tools() []Tool {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, r.entries[name].tool)
	}
	return tools
}

// checkInput validates a parsed argument object against the tool's compiled
// schema. No-op when validation is off or the tool declared no schema.
func (r *Registry) checkInput(name string, input map[string]any) error {
	entry, ok := r.entries[name]
	if !ok || entry.schema == nil {
		return nil
	}
	// The validator expects plain decoded JSON values, which is exactly what
	// the processor produces.
	return entry.schema.Validate(input)
}

func compileSchema(name string, raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing input schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	url := name + ".schema.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("adding input schema: %w", err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling input schema: %w", err)
	}
	return schema, nil
}
