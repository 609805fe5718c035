package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, conversation Conversation) error
	Get(ctx context.Context, id string) (Conversation, error)
	ListForParticipant(ctx context.Context, participantUid string) ([]Conversation, error)
	AppendMessage(ctx context.Context, message Message) error
	ListMessages(ctx context.Context, conversationId string) ([]Message, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, conversation Conversation) error {
	query := `INSERT INTO conversation (id, project_id, client_id, designer_id, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query,
		conversation.ID,
		conversation.ProjectID,
		conversation.ClientID,
		conversation.DesignerID,
		conversation.CreatedAt.UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not store conversation: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id string) (Conversation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, project_id, client_id, designer_id, created_at FROM conversation WHERE id = $1`, id)
	conversation, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Conversation{}, ErrNotFound
	}
	return conversation, err
}

func (r *RepositoryImpl) ListForParticipant(ctx context.Context, participantUid string) ([]Conversation, error) {
	query := `SELECT id, project_id, client_id, designer_id, created_at FROM conversation
              WHERE client_id = $1 OR designer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, participantUid)
	if err != nil {
		err := fmt.Errorf("could not query conversations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	conversations := make([]Conversation, 0, 8)
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			log.Errorf("could not scan conversation row: %v", err)
			return nil, err
		}
		conversations = append(conversations, conversation)
	}
	return conversations, rows.Err()
}

func (r *RepositoryImpl) AppendMessage(ctx context.Context, message Message) error {
	query := `INSERT INTO message (id, conversation_id, sender_uid, body, sent_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.SenderUid,
		message.Body,
		message.SentAt.UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not store message: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) ListMessages(ctx context.Context, conversationId string) ([]Message, error) {
	query := `SELECT id, conversation_id, sender_uid, body, sent_at FROM message
              WHERE conversation_id = $1 ORDER BY sent_at, id`
	rows, err := r.db.Query(ctx, query, conversationId)
	if err != nil {
		err := fmt.Errorf("could not query messages: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0, 16)
	for rows.Next() {
		var message Message
		var sentMillis int64
		if err := rows.Scan(&message.ID, &message.ConversationID, &message.SenderUid, &message.Body, &sentMillis); err != nil {
			log.Errorf("could not scan message row: %v", err)
			return nil, err
		}
		message.SentAt = time.UnixMilli(sentMillis)
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

func scanConversation(row pgx.Row) (Conversation, error) {
	var conversation Conversation
	var createdMillis int64
	err := row.Scan(&conversation.ID, &conversation.ProjectID, &conversation.ClientID,
		&conversation.DesignerID, &createdMillis)
	if err != nil {
		return Conversation{}, err
	}
	conversation.CreatedAt = time.UnixMilli(createdMillis)
	return conversation, nil
}
