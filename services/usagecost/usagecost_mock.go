package usagecost

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"chatbackend/models"
)

// MockUsageCostService is a mock implementation of the UsageCostService interface
type MockUsageCostService struct {
	mock.Mock
}

func (m *MockUsageCostService) TrackUsage(ctx context.Context, chatID string, inputTokens, outputTokens int) error {
	args := m.Called(ctx, chatID, inputTokens, outputTokens)
	return args.Error(0)
}

func (m *MockUsageCostService) GetUsageCostByChatID(ctx context.Context, chatID string) (mo.Option[*models.ChatUsageCost], error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(mo.Option[*models.ChatUsageCost]), args.Error(1)
}
