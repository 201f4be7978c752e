package events

import "time"

const (
	// MessageExchanged is emitted after a user turn received a model reply.
	MessageExchanged = "chat.message_exchanged"
	// AnalysisCompleted is emitted after a diary analysis was stored.
	AnalysisCompleted = "diary.analysis_completed"
	// SignalsUpdated is emitted by the digest pipeline once it has written
	// new conversation signals for a user.
	SignalsUpdated = "signals.updated"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.message_exchanged").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

func New(eventType string, data map[string]interface{}, at time.Time) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}

// UserID extracts the "user_id" payload field as a string.
func UserID(e Event) (string, bool) {
	v, ok := e.Payload()["user_id"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
