package toolstream

// Source uses a pull-based iterator pattern over the finite, ordered event
// sequence of one model response.
//
// Next() returns the next event, io.EOF once the sequence is exhausted, or a
// non-EOF error if the sequence fails. A well-formed sequence ends with
// EventMessageStop; io.EOF before that event is treated as an abnormal
// termination by the Processor. Events must be delivered in valid protocol
// order: for each index, EventBlockStart, then zero or more EventBlockDelta,
// then EventBlockStop, with no index reuse.
//
// A Source is consumed at most once by a single goroutine.
type Source interface {
	Next() (Event, error)
	Close() error
}
