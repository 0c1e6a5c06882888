package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventSessionRestored      EventType = "session_restored"
	EventSessionAuthenticated EventType = "session_authenticated"
	EventLoginFailed          EventType = "login_failed"
	EventSessionLoggedOut     EventType = "session_logged_out"
	EventSessionInvalidated   EventType = "session_invalidated"
)

// AllEventTypes lists every type the session manager publishes.
func AllEventTypes() []EventType {
	return []EventType{
		EventSessionRestored,
		EventSessionAuthenticated,
		EventLoginFailed,
		EventSessionLoggedOut,
		EventSessionInvalidated,
	}
}

// Event represents a session transition emitted by the session manager.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username,omitempty"`
	UserID    int64       `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh ID.
func NewEvent(eventType EventType, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: eventType, Timestamp: at}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionEndedPayload payload for logout and invalidation.
type SessionEndedPayload struct {
	Reason string `json:"reason"`
}

// SessionStartedPayload payload for restore and login.
type SessionStartedPayload struct {
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}
