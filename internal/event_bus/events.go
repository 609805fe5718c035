package event_bus

import "time"

const (
	AppointmentCreated EventType = "appointment.created"
	AppointmentUpdated EventType = "appointment.updated"
	AppointmentDeleted EventType = "appointment.deleted"
	MessagePosted      EventType = "conversation.message.posted"
)

// AppointmentChanged is the payload of the appointment.* events.
type AppointmentChanged struct {
	ID        string
	OwnerID   int
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// MessageEvent is the payload of conversation.message.posted.
type MessageEvent struct {
	ConversationID string
	SenderUid      string
	Preview        string
}
