package anthropic

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mwojcik/toolstream"
)

// source implements [toolstream.Source] by parsing SSE events from an HTTP
// response body. It performs no block assembly; each wire event maps to at
// most one protocol event.
type source struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool  // EventMessageStop delivered
	err     error // terminal error, if any
}

// Interface compliance check.
var _ toolstream.Source = (*source)(nil)

func newSource(body io.ReadCloser) *source {
	return &source{
		body:    body,
		scanner: bufio.NewScanner(body),
	}
}

// Next reads the next protocol event from the SSE stream. Returns io.EOF
// after EventMessageStop has been delivered or the body is exhausted.
func (s *source) Next() (toolstream.Event, error) {
	if s.done {
		return nil, io.EOF
	}
	if s.err != nil {
		return nil, s.err
	}

	for {
		eventType, data, err := s.readSSEEvent()
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			return nil, err
		}

		evt, err := s.mapEvent(eventType, data)
		if err != nil {
			s.err = err
			return nil, err
		}
		if evt != nil {
			return evt, nil
		}
		// Non-semantic event (ping, signature delta) - keep reading.
	}
}

// Close closes the underlying HTTP response body.
func (s *source) Close() error {
	return s.body.Close()
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *source) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			// Empty event, keep reading.
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", fmt.Errorf("anthropic: %w", err)
	}

	// Scanner exhausted without error = EOF.
	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// mapEvent translates an SSE event into a protocol event. Returns a nil
// event for frames that carry nothing the processor consumes.
func (s *source) mapEvent(eventType, data string) (toolstream.Event, error) {
	switch eventType {
	case "message_start":
		return toolstream.EventMessageStart{}, nil
	case "content_block_start":
		return mapBlockStart(data)
	case "content_block_delta":
		return mapBlockDelta(data)
	case "content_block_stop":
		var evt sseContentBlockStop
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return nil, fmt.Errorf("anthropic: failed to parse content_block_stop: %w", err)
		}
		return toolstream.EventBlockStop{Index: evt.Index}, nil
	case "message_delta":
		var evt sseMessageDelta
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return nil, fmt.Errorf("anthropic: failed to parse message_delta: %w", err)
		}
		var stop string
		if evt.Delta.StopReason != nil {
			stop = *evt.Delta.StopReason
		}
		return toolstream.EventMessageDelta{StopReason: stop}, nil
	case "message_stop":
		s.done = true
		return toolstream.EventMessageStop{}, nil
	case "ping":
		return nil, nil
	case "error":
		var evt sseError
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return nil, fmt.Errorf("anthropic: failed to parse error event: %w", err)
		}
		return nil, fmt.Errorf("anthropic: %s: %s", evt.Error.Type, evt.Error.Message)
	default:
		// Unknown event types are skipped.
		return nil, nil
	}
}

func mapBlockStart(data string) (toolstream.Event, error) {
	var evt sseContentBlockStart
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return nil, fmt.Errorf("anthropic: failed to parse content_block_start: %w", err)
	}

	out := toolstream.EventBlockStart{Index: evt.Index}
	switch evt.ContentBlock.Type {
	case "tool_use":
		out.Kind = toolstream.BlockToolCall
		out.ToolName = evt.ContentBlock.Name
		out.ToolCallID = evt.ContentBlock.ID
	case "thinking":
		out.Kind = toolstream.BlockThinking
	default:
		// Text and any future block types accumulate as text so block
		// indices stay consistent for the processor.
		out.Kind = toolstream.BlockText
	}
	return out, nil
}

func mapBlockDelta(data string) (toolstream.Event, error) {
	var evt sseContentBlockDelta
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return nil, fmt.Errorf("anthropic: failed to parse content_block_delta: %w", err)
	}

	switch evt.Delta.Type {
	case "text_delta":
		return toolstream.EventBlockDelta{Index: evt.Index, Text: evt.Delta.Text}, nil
	case "input_json_delta":
		return toolstream.EventBlockDelta{Index: evt.Index, PartialArgs: evt.Delta.PartialJSON}, nil
	case "thinking_delta":
		return toolstream.EventBlockDelta{Index: evt.Index, Text: evt.Delta.Thinking}, nil
	case "signature_delta":
		// Internal use only; nothing for the processor.
		return nil, nil
	default:
		return nil, nil
	}
}
