package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PATTERN_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; concrete constructors below are
// preferred over building it by hand.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewPatternCreated(patternID, userID uuid.UUID) Event {
	return BaseEvent{
		Type: "PATTERN_CREATED",
		Data: map[string]interface{}{
			"pattern_id": patternID.String(),
			"user_id":    userID.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewPatternUpdated(patternID, userID uuid.UUID) Event {
	return BaseEvent{
		Type: "PATTERN_UPDATED",
		Data: map[string]interface{}{
			"pattern_id": patternID.String(),
			"user_id":    userID.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewPatternDeleted(patternID, userID uuid.UUID) Event {
	return BaseEvent{
		Type: "PATTERN_DELETED",
		Data: map[string]interface{}{
			"pattern_id": patternID.String(),
			"user_id":    userID.String(),
		},
		OccurredAt: time.Now(),
	}
}
