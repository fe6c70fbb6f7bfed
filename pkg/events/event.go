package events

import "time"

// Event type codes published on the bus. Subjects are derived from
// these ("events.<type>"), and the notification service keys its
// routing table on them.
const (
	TypeDocumentUploaded   = "DOCUMENT_UPLOADED"
	TypeDocumentDeleted    = "DOCUMENT_DELETED"
	TypeSmartFolderCreated = "SMART_FOLDER_CREATED"
	TypeUserRegistered     = "USER_REGISTERED"
)

// Event is the contract every published event satisfies.
type Event interface {
	// EventType returns the event's type code, e.g. "DOCUMENT_UPLOADED".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain value implementation used by the services.
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

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}
