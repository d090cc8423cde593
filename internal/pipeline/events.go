// internal/pipeline/events.go
package pipeline

import (
	commonerrors "answer-engine/internal/common/errors"
	"answer-engine/internal/search"
)

// EventType tags the variants of the caller-facing event stream.
type EventType string

const (
	// EventStatus is transient: a UI hint that may be dropped under
	// backpressure without breaking correctness.
	EventStatus EventType = "status"

	// Durable events. Delivered in full and in emission order. A later
	// sources event supersedes an earlier one for the same request.
	EventSources  EventType = "sources"
	EventTicker   EventType = "ticker"
	EventDelta    EventType = "token-delta"
	EventFollowup EventType = "followup"
	EventError    EventType = "error"
)

// Event is one entry of the per-request event stream. Exactly the field
// matching Type is set.
type Event struct {
	Type      EventType                  `json:"type"`
	Status    string                     `json:"status,omitempty"`
	Sources   *search.Bundle             `json:"sources,omitempty"`
	Ticker    string                     `json:"ticker,omitempty"`
	Delta     string                     `json:"delta,omitempty"`
	Followups []string                   `json:"followups,omitempty"`
	Error     *commonerrors.ServiceError `json:"error,omitempty"`
}
