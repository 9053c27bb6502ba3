// Package toolstream reconstructs structured tool calls from the incremental
// event stream of a generative-model response and dispatches each completed
// call to a registered handler.
//
// A model response arrives as a sequence of block-scoped events: a block
// opens, accumulates payload fragments, and closes. Tool-call blocks carry
// their arguments as fragmented JSON text; the Processor reassembles that
// text per block, parses it when the block closes, and invokes the handler
// registered under the tool's name. Outcomes are collected in the order
// blocks close. Per-call failures (unparseable arguments, unknown tools,
// handler errors) are recorded on the outcome and never interrupt the stream;
// structural failures (protocol violations, source errors) abort the run.
package toolstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Processor consumes event sequences and dispatches reconstructed tool calls.
// A Processor holds no per-run state and is safe to reuse across responses;
// each Process call owns its buffers exclusively.
type Processor struct {
	registry    *Registry
	logger      *slog.Logger
	textFn      func(index int, text string)
	concurrency int
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a structured logger for per-event diagnostics. Defaults to
// a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithTextFunc sets a callback that receives each completed text block's
// accumulated content. Text blocks never produce outcomes; this is the only
// way to observe the narrative portion of a response.
func WithTextFunc(fn func(index int, text string)) Option {
	return func(p *Processor) { p.textFn = fn }
}

// WithConcurrency allows up to n handlers to run in parallel. Outcomes are
// still published in block-close order: each closing tool block claims its
// outcome slot before the handler is scheduled. n <= 1 restores the default
// synchronous dispatch, where the processor waits for each handler before
// consuming further events.
func WithConcurrency(n int) Option {
	return func(p *Processor) { p.concurrency = n }
}

// NewProcessor creates a Processor backed by the given registry.
func NewProcessor(registry *Registry, opts ...Option) *Processor {
	p := &Processor{
		registry:    registry,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// pendingBlock accumulates one content block between its start and stop
// events. Created on EventBlockStart, appended to on every matching
// EventBlockDelta, consumed on EventBlockStop.
type pendingBlock struct {
	kind       BlockKind
	toolName   string
	toolCallID string
	buf        strings.Builder
}

// run is the per-response state of one Process call. It is owned by a single
// goroutine; with concurrent dispatch, workers write only through their own
// outcome pointer while the consuming goroutine appends to the slice.
type run struct {
	p        *Processor
	blocks   map[int]*pendingBlock
	outcomes []*ToolOutcome
	group    *errgroup.Group
}

// Process consumes src exactly once, in delivery order, and returns one
// ToolOutcome per closed tool-call block, ordered by block close.
//
// The returned error is nil after a normal EventMessageStop, or a structural
// failure: a *ProtocolError for ordering violations, a *SourceError when the
// sequence ends or fails before EventMessageStop (including context
// cancellation). Outcomes finalized before a structural failure are returned
// alongside the error; no partially assembled block is ever surfaced.
func (p *Processor) Process(ctx context.Context, src Source) ([]ToolOutcome, error) {
	r := &run{p: p, blocks: make(map[int]*pendingBlock)}
	if p.concurrency > 1 {
		r.group = &errgroup.Group{}
		r.group.SetLimit(p.concurrency)
	}

	err := r.consume(ctx, src)

	// Workers never return errors; Wait is purely a completion barrier so
	// every claimed slot is filled before the slice is read.
	if r.group != nil {
		_ = r.group.Wait()
	}

	outcomes := make([]ToolOutcome, len(r.outcomes))
	for i, o := range r.outcomes {
		outcomes[i] = *o
	}
	return outcomes, err
}

func (r *run) consume(ctx context.Context, src Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return &SourceError{Err: err}
		}

		evt, err := src.Next()
		if err == io.EOF {
			// Exhaustion without a message stop: the response was cut off.
			return &SourceError{Err: io.ErrUnexpectedEOF}
		}
		if err != nil {
			return &SourceError{Err: err}
		}

		switch e := evt.(type) {
		case EventMessageStart:
			// Carries no payload the processor needs.

		case EventBlockStart:
			if _, open := r.blocks[e.Index]; open {
				return &ProtocolError{Index: e.Index, Reason: "block start for already-open index"}
			}
			r.blocks[e.Index] = &pendingBlock{
				kind:       e.Kind,
				toolName:   e.ToolName,
				toolCallID: e.ToolCallID,
			}
			r.p.logger.Debug("block opened", "index", e.Index, "kind", e.Kind.String(), "tool", e.ToolName)

		case EventBlockDelta:
			block := r.blocks[e.Index]
			if block == nil {
				return &ProtocolError{Index: e.Index, Reason: "delta for unopened index"}
			}
			if block.kind == BlockToolCall {
				block.buf.WriteString(e.PartialArgs)
			} else {
				block.buf.WriteString(e.Text)
			}

		case EventBlockStop:
			block := r.blocks[e.Index]
			if block == nil {
				return &ProtocolError{Index: e.Index, Reason: "stop for unopened index"}
			}
			delete(r.blocks, e.Index)
			if block.kind == BlockToolCall {
				r.finishToolBlock(ctx, block)
			} else if r.p.textFn != nil {
				r.p.textFn(e.Index, block.buf.String())
			}
			r.p.logger.Debug("block closed", "index", e.Index, "kind", block.kind.String())

		case EventMessageDelta:
			// Stop-reason and usage metadata; nothing to assemble.

		case EventMessageStop:
			if n := len(r.blocks); n > 0 {
				return &ProtocolError{Index: -1, Reason: fmt.Sprintf("message stop with %d block(s) still open", n)}
			}
			return nil
		}
	}
}

// finishToolBlock parses the accumulated argument text and dispatches the
// call. Every path appends exactly one outcome, claimed here so that
// concurrent handlers cannot reorder publication.
func (r *run) finishToolBlock(ctx context.Context, block *pendingBlock) {
	raw := block.buf.String()
	if raw == "" {
		// Tools with no arguments produce no deltas.
		raw = "{}"
	}

	out := &ToolOutcome{ToolCallID: block.toolCallID, ToolName: block.toolName}
	r.outcomes = append(r.outcomes, out)

	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		out.Err = &MalformedArgumentsError{Raw: raw, Err: err}
		r.p.logger.Warn("tool call arguments unparseable", "tool", block.toolName, "id", block.toolCallID)
		return
	}

	handler, ok := r.p.registry.Lookup(block.toolName)
	if !ok {
		out.Input = input
		out.Err = &UnknownToolError{Tool: block.toolName}
		r.p.logger.Warn("tool call for unregistered tool", "tool", block.toolName, "id", block.toolCallID)
		return
	}

	if err := r.p.registry.checkInput(block.toolName, input); err != nil {
		out.Err = &MalformedArgumentsError{Raw: raw, Err: err}
		r.p.logger.Warn("tool call arguments failed validation", "tool", block.toolName, "id", block.toolCallID)
		return
	}

	out.Input = input
	name := block.toolName
	invoke := func() {
		result, err := safeInvoke(ctx, handler, input)
		if err != nil {
			out.Err = &HandlerError{Tool: name, Err: err}
		} else {
			out.Result = result
		}
	}

	r.p.logger.Debug("tool call dispatched", "tool", name, "id", block.toolCallID)
	if r.group != nil {
		r.group.Go(func() error {
			invoke()
			return nil
		})
	} else {
		invoke()
	}
}

// safeInvoke runs a handler, converting panics into errors so a misbehaving
// handler cannot take down the run.
func safeInvoke(ctx context.Context, h Handler, input map[string]any) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h.Invoke(ctx, input)
}
