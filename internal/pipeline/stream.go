// internal/pipeline/stream.go
package pipeline

import (
	"sync"

	commonerrors "answer-engine/internal/common/errors"
	"answer-engine/internal/common/metrics"
	"answer-engine/internal/search"
)

// Stream is the single-producer, strictly-ordered event channel for one
// request. Durable events block until queued; transient status events are
// dropped when the consumer falls behind. After Fail, further durable
// events are discarded, but the channel still closes normally so a caller
// can render everything gathered before the failure.
type Stream struct {
	ch chan Event

	mu       sync.Mutex
	terminal bool
	closed   bool
}

// NewStream creates a request-scoped event stream. The buffer absorbs
// bursts of token deltas without stalling the generation read loop.
func NewStream() *Stream {
	return &Stream{
		ch: make(chan Event, 64),
	}
}

// Events returns the consumer side of the stream.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// EmitStatus sends a transient status hint. Dropped when the buffer is
// full; never blocks the pipeline.
func (s *Stream) EmitStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal || s.closed {
		return
	}

	select {
	case s.ch <- Event{Type: EventStatus, Status: status}:
		metrics.EventsEmitted.WithLabelValues(string(EventStatus)).Inc()
	default:
	}
}

// EmitSources sends a sources snapshot. A later snapshot supersedes an
// earlier one for the same request. The sources slice is copied so in-place
// enrichment cannot mutate an event already queued.
func (s *Stream) EmitSources(bundle *search.Bundle) {
	snap := &search.Bundle{
		Sources: append([]search.Source(nil), bundle.Sources...),
		News:    bundle.News,
		Images:  bundle.Images,
	}
	s.emitDurable(Event{Type: EventSources, Sources: snap})
}

// EmitTicker reports a detected entity tag.
func (s *Stream) EmitTicker(symbol string) {
	s.emitDurable(Event{Type: EventTicker, Ticker: symbol})
}

// EmitDelta forwards one answer text chunk.
func (s *Stream) EmitDelta(delta string) {
	s.emitDurable(Event{Type: EventDelta, Delta: delta})
}

// EmitFollowups sends the follow-up question list. An empty list is valid.
func (s *Stream) EmitFollowups(questions []string) {
	s.emitDurable(Event{Type: EventFollowup, Followups: questions})
}

// Fail emits the terminal error event. At most one error is ever emitted;
// subsequent durable emissions are discarded.
func (s *Stream) Fail(serviceErr *commonerrors.ServiceError) {
	s.mu.Lock()
	if s.terminal || s.closed {
		s.mu.Unlock()
		return
	}
	s.terminal = true
	s.mu.Unlock()

	s.ch <- Event{Type: EventError, Error: serviceErr}
	metrics.EventsEmitted.WithLabelValues(string(EventError)).Inc()
}

// Close ends the stream. Safe to call once after all emissions.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

func (s *Stream) emitDurable(ev Event) {
	s.mu.Lock()
	if s.terminal || s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.ch <- ev
	metrics.EventsEmitted.WithLabelValues(string(ev.Type)).Inc()
}
