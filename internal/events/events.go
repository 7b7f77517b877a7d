package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session event types emitted by the engine. The UI layer subscribes to
// these instead of polling engine state.
const (
	// TypeSessionStarted is emitted when a practice session finishes loading.
	TypeSessionStarted = "session_started"

	// TypeChoiceRecorded is emitted after a choice outcome has been applied
	// to the session state.
	TypeChoiceRecorded = "choice_recorded"

	// TypePositiveFeedback is emitted when a correct choice should trigger a
	// celebratory side effect in the UI.
	TypePositiveFeedback = "positive_feedback"

	// TypeSessionCompleted is emitted when the final scenario is resolved and
	// the completion bonus is awarded.
	TypeSessionCompleted = "session_completed"

	// TypeGuidanceTriggered is emitted when an intervention message becomes
	// the active trigger.
	TypeGuidanceTriggered = "guidance_triggered"

	// TypeGuidanceDismissed is emitted when the active trigger is cleared,
	// whether explicitly or by auto-expiry.
	TypeGuidanceDismissed = "guidance_dismissed"
)

// SessionEvent is one engine-side state change published to subscribers.
// The payload is event-type specific and serialized as JSON so handlers
// stay decoupled from engine internals.
type SessionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants above
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SessionEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSessionEvent creates a new SessionEvent with the specified type and payload.
func NewSessionEvent(eventType string, payload interface{}) (*SessionEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &SessionEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the engine to publish state changes without direct knowledge
// of subscribers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
