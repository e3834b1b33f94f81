package assistant

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatbackend/models"
)

type MockAssistantCompletionService struct {
	mock.Mock
}

func (m *MockAssistantCompletionService) Complete(ctx context.Context, prompt string) *models.CompletionResult {
	args := m.Called(ctx, prompt)
	return args.Get(0).(*models.CompletionResult)
}
