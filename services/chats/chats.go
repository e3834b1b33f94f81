package chats

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samber/mo"

	"chatbackend/core"
	"chatbackend/db"
	"chatbackend/models"
	"chatbackend/services"
)

type ChatsService struct {
	chatsRepo *db.PostgresChatsRepository
	txManager services.TransactionManager
}

func NewChatsService(repo *db.PostgresChatsRepository, txManager services.TransactionManager) *ChatsService {
	return &ChatsService{chatsRepo: repo, txManager: txManager}
}

// CreateChat creates a chat and its membership rows in one transaction. The
// creator is always a member, whether or not they appear in memberIDs.
func (s *ChatsService) CreateChat(
	ctx context.Context,
	name, createdBy string,
	memberIDs []string,
) (*models.Chat, error) {
	log.Printf("📋 Starting to create chat %q for user: %s", name, createdBy)

	if name == "" {
		return nil, fmt.Errorf("chat name cannot be empty")
	}
	if !core.IsValidULID(createdBy) {
		return nil, fmt.Errorf("created_by must be a valid ULID")
	}
	for _, memberID := range memberIDs {
		if !core.IsValidULID(memberID) {
			return nil, fmt.Errorf("member ID must be a valid ULID: %s", memberID)
		}
	}

	chat := &models.Chat{
		ID:        core.NewID("ch"),
		Name:      name,
		CreatedBy: createdBy,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.chatsRepo.CreateChat(txCtx, chat); err != nil {
			return err
		}
		if err := s.chatsRepo.AddChatMember(txCtx, chat.ID, createdBy); err != nil {
			return err
		}
		for _, memberID := range memberIDs {
			if err := s.chatsRepo.AddChatMember(txCtx, chat.ID, memberID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	log.Printf("📋 Completed successfully - created chat with ID: %s", chat.ID)
	return chat, nil
}

func (s *ChatsService) GetChatByID(ctx context.Context, id string) (mo.Option[*models.Chat], error) {
	log.Printf("📋 Starting to get chat by ID: %s", id)

	if !core.IsValidULID(id) {
		return mo.None[*models.Chat](), fmt.Errorf("chat ID must be a valid ULID")
	}

	chat, err := s.chatsRepo.GetChatByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return mo.None[*models.Chat](), nil
		}
		return mo.None[*models.Chat](), fmt.Errorf("failed to get chat: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved chat with ID: %s", chat.ID)
	return mo.Some(chat), nil
}

func (s *ChatsService) GetChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	log.Printf("📋 Starting to get chats for user: %s", userID)

	if !core.IsValidULID(userID) {
		return nil, fmt.Errorf("user ID must be a valid ULID")
	}

	chats, err := s.chatsRepo.GetChatsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chats for user: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d chats for user: %s", len(chats), userID)
	return chats, nil
}

func (s *ChatsService) IsChatMember(ctx context.Context, chatID, userID string) (bool, error) {
	if !core.IsValidULID(chatID) {
		return false, fmt.Errorf("chat ID must be a valid ULID")
	}
	if !core.IsValidULID(userID) {
		return false, fmt.Errorf("user ID must be a valid ULID")
	}

	isMember, err := s.chatsRepo.IsChatMember(ctx, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check chat membership: %w", err)
	}

	return isMember, nil
}
