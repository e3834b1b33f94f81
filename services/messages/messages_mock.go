package messages

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatbackend/models"
)

// MockMessagesService is a mock implementation of the MessagesService interface
type MockMessagesService struct {
	mock.Mock
}

func (m *MockMessagesService) CreateMessage(
	ctx context.Context,
	chatID, authorID, content string,
) (*models.Message, error) {
	args := m.Called(ctx, chatID, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessagesService) GetMessagesByChatID(ctx context.Context, chatID string) ([]*models.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}
