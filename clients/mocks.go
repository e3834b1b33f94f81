package clients

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatbackend/models"
)

// MockGenerativeClient is a mock implementation of the GenerativeClient interface
type MockGenerativeClient struct {
	mock.Mock
}

func (m *MockGenerativeClient) GenerateText(ctx context.Context, model, prompt string) (*GenerationResult, error) {
	args := m.Called(ctx, model, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GenerationResult), args.Error(1)
}

// MockWorkflowClient is a mock implementation of the WorkflowClient interface
type MockWorkflowClient struct {
	mock.Mock
}

func (m *MockWorkflowClient) Dispatch(
	ctx context.Context,
	command *models.DetectedCommand,
	params models.CommandParams,
	dispatchCtx models.DispatchContext,
) (*models.DispatchResult, error) {
	args := m.Called(ctx, command, params, dispatchCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DispatchResult), args.Error(1)
}

// MockRealtimeBroadcaster is a mock implementation of the RealtimeBroadcaster interface
type MockRealtimeBroadcaster struct {
	mock.Mock
}

func (m *MockRealtimeBroadcaster) BroadcastToChat(chatID, event string, payload any) error {
	args := m.Called(chatID, event, payload)
	return args.Error(0)
}

func (m *MockRealtimeBroadcaster) SendToUser(userID, event string, payload any) error {
	args := m.Called(userID, event, payload)
	return args.Error(0)
}
