package events

import (
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted     EventType = "request_submitted"
	EventRequestAccepted      EventType = "request_accepted"
	EventRequestCompleted     EventType = "request_completed"
	EventRequestReprioritized EventType = "request_reprioritized"
)

// Actor identifies who caused an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	Title     string                 `json:"title"`
	Location  string                 `json:"location"`
	IssueType domain.IssueType       `json:"issue_type"`
	Priority  domain.RequestPriority `json:"priority"`
}

// RequestStatusChangedPayload is shared by accept and complete.
type RequestStatusChangedPayload struct {
	OldStatus  domain.RequestStatus `json:"old_status"`
	NewStatus  domain.RequestStatus `json:"new_status"`
	AssignedTo *string              `json:"assigned_to,omitempty"`
}

// RequestReprioritizedPayload payload.
type RequestReprioritizedPayload struct {
	OldPriority domain.RequestPriority `json:"old_priority"`
	NewPriority domain.RequestPriority `json:"new_priority"`
}
