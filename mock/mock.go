// Package mock provides test doubles for toolstream interfaces using
// function fields.
package mock

import (
	"context"
	"io"

	"github.com/mwojcik/toolstream"
)

// Interface compliance checks.
var (
	_ toolstream.Source  = (*Source)(nil)
	_ toolstream.Handler = (*Handler)(nil)
)

// Source is a test double for toolstream.Source.
// Set NextFn before calling Next; it panics when nil to catch missing setup.
// CloseFn is nil-safe because test code commonly calls defer src.Close().
type Source struct {
	NextFn  func() (toolstream.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Source) Next() (toolstream.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Source) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Script returns a Source that replays events in order, then returns io.EOF.
func Script(events ...toolstream.Event) *Source {
	return ScriptErr(io.EOF, events...)
}

// ScriptErr returns a Source that replays events in order, then returns err
// on every subsequent Next call. Use a non-EOF error to simulate a source
// that fails mid-response.
func ScriptErr(err error, events ...toolstream.Event) *Source {
	i := 0
	return &Source{
		NextFn: func() (toolstream.Event, error) {
			if i >= len(events) {
				return nil, err
			}
			evt := events[i]
			i++
			return evt, nil
		},
	}
}

// Handler is a test double for toolstream.Handler.
// Set InvokeFn before calling Invoke.
type Handler struct {
	InvokeFn func(ctx context.Context, input map[string]any) (any, error)
}

// Invoke delegates to InvokeFn.
func (h *Handler) Invoke(ctx context.Context, input map[string]any) (any, error) {
	return h.InvokeFn(ctx, input)
}
