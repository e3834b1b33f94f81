package services

import (
	"context"

	"github.com/samber/mo"

	"chatbackend/models"
)

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetOrCreateUser(ctx context.Context, authProvider, authProviderID, displayName string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error)
}

// ChatsService defines the interface for chat-related operations
type ChatsService interface {
	CreateChat(ctx context.Context, name, createdBy string, memberIDs []string) (*models.Chat, error)
	GetChatByID(ctx context.Context, id string) (mo.Option[*models.Chat], error)
	GetChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error)
	IsChatMember(ctx context.Context, chatID, userID string) (bool, error)
}

// MessagesService defines the interface for message persistence operations
type MessagesService interface {
	CreateMessage(ctx context.Context, chatID, authorID, content string) (*models.Message, error)
	GetMessagesByChatID(ctx context.Context, chatID string) ([]*models.Message, error)
}

// CommandsService defines the interface for command classification and
// parameter extraction over free-text prompts
type CommandsService interface {
	Detect(prompt string) mo.Option[*models.DetectedCommand]
	ExtractParams(command *models.DetectedCommand, originalPrompt string) models.CommandParams
}

// AssistantCompletionService defines the interface for the generative
// fallback chain. Complete never fails outward: the result text is always a
// display-ready, non-empty string.
type AssistantCompletionService interface {
	Complete(ctx context.Context, prompt string) *models.CompletionResult
}

// UsageCostService defines the interface for tracking generative token usage
type UsageCostService interface {
	TrackUsage(ctx context.Context, chatID string, inputTokens, outputTokens int) error
	GetUsageCostByChatID(ctx context.Context, chatID string) (mo.Option[*models.ChatUsageCost], error)
}

// TransactionManager provides database transaction management capabilities
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
