package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	dbtx "chatbackend/db/tx"
	"chatbackend/models"
)

type PostgresUsageCostsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresUsageCostsRepository(db *sqlx.DB, schema string) *PostgresUsageCostsRepository {
	return &PostgresUsageCostsRepository{db: db, schema: schema}
}

func (r *PostgresUsageCostsRepository) CreateUsageCost(ctx context.Context, cost *models.ChatUsageCost) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.chat_usage_costs (id, chat_id, total_input_tokens, total_output_tokens, estimated_cost_usd, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, chat_id, total_input_tokens, total_output_tokens, estimated_cost_usd, created_at, updated_at`, r.schema)

	err := dbtx.GetTransactional(ctx, r.db).
		QueryRowxContext(ctx, query, cost.ID, cost.ChatID, cost.TotalInputTokens, cost.TotalOutputTokens, cost.EstimatedCostUSD).
		StructScan(cost)
	if err != nil {
		return fmt.Errorf("failed to create usage cost: %w", err)
	}

	return nil
}

func (r *PostgresUsageCostsRepository) GetUsageCostByChatID(ctx context.Context, chatID string) (*models.ChatUsageCost, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, total_input_tokens, total_output_tokens, estimated_cost_usd, created_at, updated_at
		FROM %s.chat_usage_costs
		WHERE chat_id = $1`, r.schema)

	cost := &models.ChatUsageCost{}
	err := dbtx.GetTransactional(ctx, r.db).GetContext(ctx, cost, query, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage cost by chat id: %w", err)
	}

	return cost, nil
}

func (r *PostgresUsageCostsRepository) UpdateUsageCost(
	ctx context.Context,
	chatID string,
	totalInputTokens, totalOutputTokens int,
	estimatedCostUSD decimal.Decimal,
) (*models.ChatUsageCost, error) {
	query := fmt.Sprintf(`
		UPDATE %s.chat_usage_costs
		SET total_input_tokens = $2, total_output_tokens = $3, estimated_cost_usd = $4, updated_at = NOW()
		WHERE chat_id = $1
		RETURNING id, chat_id, total_input_tokens, total_output_tokens, estimated_cost_usd, created_at, updated_at`, r.schema)

	cost := &models.ChatUsageCost{}
	err := dbtx.GetTransactional(ctx, r.db).
		QueryRowxContext(ctx, query, chatID, totalInputTokens, totalOutputTokens, estimatedCostUSD).
		StructScan(cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("usage cost for chat %s not found", chatID)
		}
		return nil, fmt.Errorf("failed to update usage cost: %w", err)
	}

	return cost, nil
}
