package usagecost

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"chatbackend/core"
	"chatbackend/db"
	"chatbackend/models"
)

// Gemini free-tier pricing per 1K tokens (approximate as of 2025)
const (
	GeminiFlashInputCostPer1K  = 0.000075 // $0.075 per 1M tokens
	GeminiFlashOutputCostPer1K = 0.0003   // $0.30 per 1M tokens
)

type UsageCostService struct {
	usageCostsRepo *db.PostgresUsageCostsRepository
}

func NewUsageCostService(repo *db.PostgresUsageCostsRepository) *UsageCostService {
	return &UsageCostService{
		usageCostsRepo: repo,
	}
}

func (s *UsageCostService) TrackUsage(ctx context.Context, chatID string, inputTokens, outputTokens int) error {
	log.Printf("📋 Starting to track usage for chat %s: input=%d, output=%d tokens", chatID, inputTokens, outputTokens)

	if !core.IsValidULID(chatID) {
		return fmt.Errorf("chat ID must be a valid ULID")
	}
	if inputTokens < 0 || outputTokens < 0 {
		return fmt.Errorf("token counts cannot be negative")
	}

	existingCost, err := s.usageCostsRepo.GetUsageCostByChatID(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to check existing cost record: %w", err)
	}

	estimatedCost := s.EstimateCost(inputTokens, outputTokens)

	if existingCost != nil {
		newInputTokens := existingCost.TotalInputTokens + inputTokens
		newOutputTokens := existingCost.TotalOutputTokens + outputTokens
		newEstimatedCost := existingCost.EstimatedCostUSD.Add(estimatedCost)

		_, err = s.usageCostsRepo.UpdateUsageCost(ctx, chatID,
			newInputTokens, newOutputTokens, newEstimatedCost)
		if err != nil {
			return fmt.Errorf("failed to update usage cost: %w", err)
		}
	} else {
		cost := &models.ChatUsageCost{
			ID:                core.NewID("uc"),
			ChatID:            chatID,
			TotalInputTokens:  inputTokens,
			TotalOutputTokens: outputTokens,
			EstimatedCostUSD:  estimatedCost,
		}

		if err := s.usageCostsRepo.CreateUsageCost(ctx, cost); err != nil {
			return fmt.Errorf("failed to create usage cost: %w", err)
		}
	}

	log.Printf("📋 Completed successfully - tracked usage for chat %s, cost: $%s", chatID, estimatedCost.String())
	return nil
}

func (s *UsageCostService) GetUsageCostByChatID(ctx context.Context, chatID string) (mo.Option[*models.ChatUsageCost], error) {
	log.Printf("📋 Starting to get usage cost for chat: %s", chatID)

	if !core.IsValidULID(chatID) {
		return mo.None[*models.ChatUsageCost](), fmt.Errorf("chat ID must be a valid ULID")
	}

	cost, err := s.usageCostsRepo.GetUsageCostByChatID(ctx, chatID)
	if err != nil {
		return mo.None[*models.ChatUsageCost](), fmt.Errorf("failed to get usage cost: %w", err)
	}

	if cost == nil {
		log.Printf("📋 Completed successfully - no cost record found for chat: %s", chatID)
		return mo.None[*models.ChatUsageCost](), nil
	}

	log.Printf("📋 Completed successfully - retrieved cost record for chat %s: $%s", chatID, cost.EstimatedCostUSD.String())
	return mo.Some(cost), nil
}

// EstimateCost computes the estimated USD cost for the given token counts
// using flash-tier pricing. Decimal arithmetic avoids float drift when
// accumulating many small charges.
func (s *UsageCostService) EstimateCost(inputTokens, outputTokens int) decimal.Decimal {
	inputCost := decimal.NewFromInt(int64(inputTokens)).
		Div(decimal.NewFromInt(1000)).
		Mul(decimal.NewFromFloat(GeminiFlashInputCostPer1K))
	outputCost := decimal.NewFromInt(int64(outputTokens)).
		Div(decimal.NewFromInt(1000)).
		Mul(decimal.NewFromFloat(GeminiFlashOutputCostPer1K))

	return inputCost.Add(outputCost)
}
