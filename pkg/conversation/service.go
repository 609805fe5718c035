package conversation

import (
	"context"
	"unicode/utf8"

	"github.com/decorra/decorra/internal/event_bus"
	"github.com/decorra/decorra/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const previewLength = 80

type Service interface {
	Create(ctx context.Context, conversation Conversation) (Conversation, error)
	Get(ctx context.Context, id string) (Conversation, error)
	ListForParticipant(ctx context.Context, participantUid string) ([]Conversation, error)
	PostMessage(ctx context.Context, conversationId, senderUid, body string) (Message, error)
	Messages(ctx context.Context, conversationId, requesterUid string) ([]Message, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, conversation Conversation) (Conversation, error) {
	if conversation.ClientID == "" || conversation.DesignerID == "" {
		return Conversation{}, ErrNotParticipant
	}
	conversation.ID = uuid.New().String()
	conversation.CreatedAt = s.clock.Now()
	if err := s.repo.Store(ctx, conversation); err != nil {
		return Conversation{}, err
	}
	return conversation, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Conversation, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) ListForParticipant(ctx context.Context, participantUid string) ([]Conversation, error) {
	return s.repo.ListForParticipant(ctx, participantUid)
}

// PostMessage appends a message to a conversation. Only participants may
// post, and the message body must not be empty.
func (s *ServiceImpl) PostMessage(ctx context.Context, conversationId, senderUid, body string) (Message, error) {
	if body == "" {
		return Message{}, ErrInvalidMessage
	}
	conversation, err := s.repo.Get(ctx, conversationId)
	if err != nil {
		return Message{}, err
	}
	if !conversation.HasParticipant(senderUid) {
		return Message{}, ErrNotParticipant
	}

	message := Message{
		ID:             uuid.New().String(),
		ConversationID: conversationId,
		SenderUid:      senderUid,
		Body:           body,
		SentAt:         s.clock.Now(),
	}
	if err := s.repo.AppendMessage(ctx, message); err != nil {
		return Message{}, err
	}

	if publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.MessagePosted, event_bus.MessageEvent{
		ConversationID: conversationId,
		SenderUid:      senderUid,
		Preview:        preview(body),
	})); publishErr != nil {
		log.Errorf("failed to publish message event: %v", publishErr)
	}
	return message, nil
}

func (s *ServiceImpl) Messages(ctx context.Context, conversationId, requesterUid string) ([]Message, error) {
	conversation, err := s.repo.Get(ctx, conversationId)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(requesterUid) {
		return nil, ErrNotParticipant
	}
	return s.repo.ListMessages(ctx, conversationId)
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:previewLength])
}
