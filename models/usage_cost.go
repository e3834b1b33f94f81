package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChatUsageCost accumulates generative token usage and estimated cost per chat
type ChatUsageCost struct {
	ID                string          `json:"id"                  db:"id"`
	ChatID            string          `json:"chat_id"             db:"chat_id"`
	TotalInputTokens  int             `json:"total_input_tokens"  db:"total_input_tokens"`
	TotalOutputTokens int             `json:"total_output_tokens" db:"total_output_tokens"`
	EstimatedCostUSD  decimal.Decimal `json:"estimated_cost_usd"  db:"estimated_cost_usd"`
	CreatedAt         time.Time       `json:"created_at"          db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"          db:"updated_at"`
}
