package conversation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/decorra/decorra/internal/event_bus"
	"github.com/decorra/decorra/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversationSetup(t *testing.T) (Service, *event_bus.EventBus) {
	repo := NewStubRepository()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, bus, clock)
	t.Cleanup(repo.Cleanup)
	return service, bus
}

func startConversation(t *testing.T, service Service) Conversation {
	conversation, err := service.Create(context.Background(), Conversation{
		ProjectID:  "project-1",
		ClientID:   "client-1",
		DesignerID: "designer-1",
	})
	require.NoError(t, err)
	return conversation
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns id and creation time", func(t *testing.T) {
		service, _ := conversationSetup(t)

		conversation := startConversation(t, service)
		assert.NotEmpty(t, conversation.ID)
		assert.Equal(t, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC), conversation.CreatedAt)
	})

	t.Run("requires both participants", func(t *testing.T) {
		service, _ := conversationSetup(t)

		_, err := service.Create(context.Background(), Conversation{ClientID: "client-1"})
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}

func TestServiceImpl_PostMessage(t *testing.T) {
	t.Run("appends and publishes an event with a preview", func(t *testing.T) {
		service, bus := conversationSetup(t)
		conversation := startConversation(t, service)

		var published []event_bus.Event
		bus.Subscribe(event_bus.MessagePosted, func(e event_bus.Event) error {
			published = append(published, e)
			return nil
		})

		message, err := service.PostMessage(context.Background(), conversation.ID, "client-1", "Can we move the site visit?")
		require.NoError(t, err)
		assert.NotEmpty(t, message.ID)

		messages, err := service.Messages(context.Background(), conversation.ID, "designer-1")
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "Can we move the site visit?", messages[0].Body)

		require.Len(t, published, 1)
		payload := published[0].Data.(event_bus.MessageEvent)
		assert.Equal(t, conversation.ID, payload.ConversationID)
		assert.Equal(t, "client-1", payload.SenderUid)
		assert.Equal(t, "Can we move the site visit?", payload.Preview)
	})

	t.Run("long bodies are previewed truncated", func(t *testing.T) {
		service, bus := conversationSetup(t)
		conversation := startConversation(t, service)

		var preview string
		bus.Subscribe(event_bus.MessagePosted, func(e event_bus.Event) error {
			preview = e.Data.(event_bus.MessageEvent).Preview
			return nil
		})

		body := strings.Repeat("x", 200)
		_, err := service.PostMessage(context.Background(), conversation.ID, "client-1", body)
		require.NoError(t, err)
		assert.Len(t, preview, 80)
	})

	t.Run("rejects empty bodies", func(t *testing.T) {
		service, _ := conversationSetup(t)
		conversation := startConversation(t, service)

		_, err := service.PostMessage(context.Background(), conversation.ID, "client-1", "")
		assert.ErrorIs(t, err, ErrInvalidMessage)
	})

	t.Run("rejects non-participants", func(t *testing.T) {
		service, _ := conversationSetup(t)
		conversation := startConversation(t, service)

		_, err := service.PostMessage(context.Background(), conversation.ID, "stranger", "hello")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("unknown conversation is not found", func(t *testing.T) {
		service, _ := conversationSetup(t)

		_, err := service.PostMessage(context.Background(), "missing", "client-1", "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceImpl_Messages(t *testing.T) {
	t.Run("only participants may read", func(t *testing.T) {
		service, _ := conversationSetup(t)
		conversation := startConversation(t, service)

		_, err := service.Messages(context.Background(), conversation.ID, "stranger")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("messages keep their posting order", func(t *testing.T) {
		service, _ := conversationSetup(t)
		conversation := startConversation(t, service)

		for _, body := range []string{"first", "second", "third"} {
			_, err := service.PostMessage(context.Background(), conversation.ID, "client-1", body)
			require.NoError(t, err)
		}

		messages, err := service.Messages(context.Background(), conversation.ID, "client-1")
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "first", messages[0].Body)
		assert.Equal(t, "third", messages[2].Body)
	})
}
