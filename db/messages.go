package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	dbtx "chatbackend/db/tx"
	"chatbackend/models"
)

type PostgresMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresMessagesRepository(db *sqlx.DB, schema string) *PostgresMessagesRepository {
	return &PostgresMessagesRepository{db: db, schema: schema}
}

func (r *PostgresMessagesRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.messages (id, chat_id, author_id, content, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, chat_id, author_id, content, sent_at`, r.schema)

	err := dbtx.GetTransactional(ctx, r.db).
		QueryRowxContext(ctx, query, message.ID, message.ChatID, message.AuthorID, message.Content).
		StructScan(message)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *PostgresMessagesRepository) GetMessagesByChatID(ctx context.Context, chatID string) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, author_id, content, sent_at
		FROM %s.messages
		WHERE chat_id = $1
		ORDER BY sent_at ASC`, r.schema)

	var messages []*models.Message
	err := dbtx.GetTransactional(ctx, r.db).SelectContext(ctx, &messages, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by chat id: %w", err)
	}

	return messages, nil
}
