package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chatbackend/core"
	dbtx "chatbackend/db/tx"
	"chatbackend/models"
)

type PostgresChatsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresChatsRepository(db *sqlx.DB, schema string) *PostgresChatsRepository {
	return &PostgresChatsRepository{db: db, schema: schema}
}

func (r *PostgresChatsRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.chats (id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, created_by, created_at, updated_at`, r.schema)

	err := dbtx.GetTransactional(ctx, r.db).
		QueryRowxContext(ctx, query, chat.ID, chat.Name, chat.CreatedBy).
		StructScan(chat)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	return nil
}

func (r *PostgresChatsRepository) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_by, created_at, updated_at
		FROM %s.chats
		WHERE id = $1`, r.schema)

	chat := &models.Chat{}
	err := dbtx.GetTransactional(ctx, r.db).GetContext(ctx, chat, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return chat, nil
}

func (r *PostgresChatsRepository) GetChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.created_by, c.created_at, c.updated_at
		FROM %s.chats c
		JOIN %s.chat_members cm ON cm.chat_id = c.id
		WHERE cm.user_id = $1
		ORDER BY c.created_at DESC`, r.schema, r.schema)

	var chats []*models.Chat
	err := dbtx.GetTransactional(ctx, r.db).SelectContext(ctx, &chats, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chats for user: %w", err)
	}

	return chats, nil
}

func (r *PostgresChatsRepository) AddChatMember(ctx context.Context, chatID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.chat_members (chat_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id, user_id) DO NOTHING`, r.schema)

	_, err := dbtx.GetTransactional(ctx, r.db).ExecContext(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to add chat member: %w", err)
	}

	return nil
}

func (r *PostgresChatsRepository) IsChatMember(ctx context.Context, chatID, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s.chat_members
			WHERE chat_id = $1 AND user_id = $2
		)`, r.schema)

	var isMember bool
	err := dbtx.GetTransactional(ctx, r.db).GetContext(ctx, &isMember, query, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check chat membership: %w", err)
	}

	return isMember, nil
}
