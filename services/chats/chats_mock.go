package chats

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"chatbackend/models"
)

// MockChatsService is a mock implementation of the ChatsService interface
type MockChatsService struct {
	mock.Mock
}

func (m *MockChatsService) CreateChat(
	ctx context.Context,
	name, createdBy string,
	memberIDs []string,
) (*models.Chat, error) {
	args := m.Called(ctx, name, createdBy, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatsService) GetChatByID(ctx context.Context, id string) (mo.Option[*models.Chat], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Chat]), args.Error(1)
}

func (m *MockChatsService) GetChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Chat), args.Error(1)
}

func (m *MockChatsService) IsChatMember(ctx context.Context, chatID, userID string) (bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Error(1)
}
