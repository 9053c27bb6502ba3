package toolstream

// BlockKind identifies the payload type of a content block.
type BlockKind int

const (
	BlockText     BlockKind = iota // narrative text
	BlockThinking                  // reasoning text; accumulated like text, never surfaced in outcomes
	BlockToolCall                  // structured tool invocation request
)

// String returns the wire-style name of the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockThinking:
		return "thinking"
	case BlockToolCall:
		return "tool_call"
	default:
		return "unknown"
	}
}

// Event is a sealed interface representing one protocol event of a model
// response stream. Events are purely semantic. Transport failures come from
// Source.Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventMessageStart opens a response.
type EventMessageStart struct{}

func (EventMessageStart) event() {}

// EventBlockStart begins the content block at Index.
// ToolName and ToolCallID are set only when Kind is BlockToolCall.
type EventBlockStart struct {
	Index      int
	Kind       BlockKind
	ToolName   string
	ToolCallID string
}

func (EventBlockStart) event() {}

// EventBlockDelta carries an incremental payload fragment for the block at
// Index. Text is populated for text and thinking blocks, PartialArgs for
// tool-call blocks.
type EventBlockDelta struct {
	Index       int
	Text        string
	PartialArgs string
}

func (EventBlockDelta) event() {}

// EventBlockStop closes the block at Index. The block's payload is complete
// and immutable from this point.
type EventBlockStop struct {
	Index int
}

func (EventBlockStop) event() {}

// EventMessageDelta carries response-level metadata such as the stop reason.
type EventMessageDelta struct {
	StopReason string
}

func (EventMessageDelta) event() {}

// EventMessageStop closes the response. No further events follow.
type EventMessageStop struct{}

func (EventMessageStop) event() {}

// Interface compliance checks.
var (
	_ Event = EventMessageStart{}
	_ Event = EventBlockStart{}
	_ Event = EventBlockDelta{}
	_ Event = EventBlockStop{}
	_ Event = EventMessageDelta{}
	_ Event = EventMessageStop{}
)
