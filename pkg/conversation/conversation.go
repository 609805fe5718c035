package conversation

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("conversation not found")
	ErrInvalidMessage = errors.New("invalid message")
	ErrNotParticipant = errors.New("user is not a participant of this conversation")
)

// Conversation is a message thread between a client and a designer,
// optionally tied to a project.
type Conversation struct {
	ID         string
	ProjectID  string
	ClientID   string
	DesignerID string
	CreatedAt  time.Time
}

// Message is a single entry in a conversation. Messages are append-only:
// once posted they are never edited or removed.
type Message struct {
	ID             string
	ConversationID string
	SenderUid      string
	Body           string
	SentAt         time.Time
}

func (c Conversation) HasParticipant(uid string) bool {
	return c.ClientID == uid || c.DesignerID == uid
}
