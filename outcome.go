package toolstream

// ToolOutcome is the final record of one tool call's execution. The Processor
// emits exactly one ToolOutcome per closed tool-call block, in the order the
// blocks closed.
//
// Input is the parsed argument object, or nil when parsing failed. Exactly one
// of Result and Err is meaningful: Err is nil on success, and Result is nil
// whenever Err is set. Err is one of the per-call error kinds; unwrap against
// ErrMalformedArguments, ErrUnknownTool, or ErrHandlerFailure to distinguish
// them when presenting results.
type ToolOutcome struct {
	ToolCallID string
	ToolName   string
	Input      map[string]any
	Result     any
	Err        error
}
