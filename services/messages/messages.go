package messages

import (
	"context"
	"fmt"
	"log"

	"chatbackend/core"
	"chatbackend/db"
	"chatbackend/models"
)

type MessagesService struct {
	messagesRepo *db.PostgresMessagesRepository
}

func NewMessagesService(repo *db.PostgresMessagesRepository) *MessagesService {
	return &MessagesService{messagesRepo: repo}
}

func (s *MessagesService) CreateMessage(
	ctx context.Context,
	chatID, authorID, content string,
) (*models.Message, error) {
	log.Printf("📋 Starting to create message in chat: %s, author: %s", chatID, authorID)

	if !core.IsValidULID(chatID) {
		return nil, fmt.Errorf("chat ID must be a valid ULID")
	}
	if !core.IsValidULID(authorID) {
		return nil, fmt.Errorf("author ID must be a valid ULID")
	}
	if content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	message := &models.Message{
		ID:       core.NewID("m"),
		ChatID:   chatID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := s.messagesRepo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	log.Printf("📋 Completed successfully - created message with ID: %s", message.ID)
	return message, nil
}

func (s *MessagesService) GetMessagesByChatID(ctx context.Context, chatID string) ([]*models.Message, error) {
	log.Printf("📋 Starting to get messages for chat: %s", chatID)

	if !core.IsValidULID(chatID) {
		return nil, fmt.Errorf("chat ID must be a valid ULID")
	}

	messages, err := s.messagesRepo.GetMessagesByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d messages for chat: %s", len(messages), chatID)
	return messages, nil
}
