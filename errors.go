package toolstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes. Use errors.Is to check; the typed
// wrappers below carry details and unwrap to these.
var (
	// ErrMalformedArguments indicates a tool-call buffer that did not parse
	// (or validate) as a structured-data object.
	ErrMalformedArguments = errors.New("malformed tool arguments")

	// ErrUnknownTool indicates a tool name with no registry entry.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrHandlerFailure indicates a handler that returned an error or panicked.
	ErrHandlerFailure = errors.New("tool handler failed")

	// ErrProtocolViolation indicates an event sequence that broke block
	// ordering rules. Fatal for the run.
	ErrProtocolViolation = errors.New("stream protocol violation")

	// ErrSourceFailure indicates the event sequence itself failed or ended
	// before EventMessageStop. Fatal for the run.
	ErrSourceFailure = errors.New("event source failed")
)

// MalformedArgumentsError is recorded on a ToolOutcome when the accumulated
// argument text does not parse or validate. Raw holds the offending text.
type MalformedArgumentsError struct {
	Raw string
	Err error
}

func (e *MalformedArgumentsError) Error() string {
	return fmt.Sprintf("malformed tool arguments: %v", e.Err)
}

func (e *MalformedArgumentsError) Unwrap() []error {
	return []error{ErrMalformedArguments, e.Err}
}

// UnknownToolError is recorded on a ToolOutcome when no handler is registered
// for the requested tool name.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Tool)
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// HandlerError is recorded on a ToolOutcome when the invoked handler failed.
// Err is the handler's own error, or a synthesized one for recovered panics.
type HandlerError struct {
	Tool string
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *HandlerError) Unwrap() []error {
	return []error{ErrHandlerFailure, e.Err}
}

// ProtocolError reports a structural violation of the event protocol.
// Index is the offending block index, or -1 for message-level violations.
type ProtocolError struct {
	Index  int
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("protocol violation: %s", e.Reason)
	}
	return fmt.Sprintf("protocol violation at block %d: %s", e.Index, e.Reason)
}

func (e *ProtocolError) Unwrap() error { return ErrProtocolViolation }

// SourceError reports an abnormal termination of the event sequence.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("event source: %v", e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceFailure, e.Err}
}
