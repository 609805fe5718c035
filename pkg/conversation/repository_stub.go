package conversation

import "context"

type StubRepository struct {
	conversations map[string]Conversation
	messages      map[string][]Message
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		conversations: map[string]Conversation{},
		messages:      map[string][]Message{},
	}
}

func (s *StubRepository) Store(ctx context.Context, conversation Conversation) error {
	s.conversations[conversation.ID] = conversation
	return nil
}

func (s *StubRepository) Get(ctx context.Context, id string) (Conversation, error) {
	conversation, ok := s.conversations[id]
	if !ok {
		return Conversation{}, ErrNotFound
	}
	return conversation, nil
}

func (s *StubRepository) ListForParticipant(ctx context.Context, participantUid string) ([]Conversation, error) {
	conversations := make([]Conversation, 0, len(s.conversations))
	for _, conversation := range s.conversations {
		if conversation.HasParticipant(participantUid) {
			conversations = append(conversations, conversation)
		}
	}
	return conversations, nil
}

func (s *StubRepository) AppendMessage(ctx context.Context, message Message) error {
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], message)
	return nil
}

func (s *StubRepository) ListMessages(ctx context.Context, conversationId string) ([]Message, error) {
	return s.messages[conversationId], nil
}

func (s *StubRepository) Cleanup() {
	s.conversations = map[string]Conversation{}
	s.messages = map[string][]Message{}
}
