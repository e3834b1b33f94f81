package assistant

import (
	"context"
	"log"
	"strings"

	"chatbackend/clients"
	"chatbackend/models"
)

// DefaultModelPriority is the fixed fallback ordering over Gemini model
// identifiers, cheapest and fastest first. Every completion re-runs the chain
// from the top; there is no caching and no backoff between attempts.
func DefaultModelPriority() []string {
	return []string{
		"gemini-2.0-flash-lite-preview",
		"gemini-2.0-flash-lite-preview-02-05",
		"gemini-2.5-flash",
		"gemini-2.5-flash-preview-05-20",
		"gemini-2.0-flash-thinking-exp",
		"gemini-2.0-flash-thinking-exp-01-21",
		"gemini-2.0-pro-exp",
		"gemini-exp-1206",
	}
}

const exhaustedMessageBase = `🤖 Assistant unavailable right now.

Every configured model has hit its free-tier limit. Limits reset on their own
after a minute or two, so try again shortly — regular chat keeps working in
the meantime.`

const (
	exhaustedMessageQuota   = exhaustedMessageBase + "\n\nLast error: quota exceeded."
	exhaustedMessageGeneric = exhaustedMessageBase + "\n\nAll configured models are temporarily limited."
)

// AssistantService runs the generative fallback chain. The model priority
// list is injected at construction so tests can substitute it.
type AssistantService struct {
	genClient     clients.GenerativeClient
	modelPriority []string
}

func NewAssistantService(genClient clients.GenerativeClient, modelPriority []string) *AssistantService {
	return &AssistantService{
		genClient:     genClient,
		modelPriority: modelPriority,
	}
}

// Complete tries each model identifier in priority order and returns the
// first non-empty completion. It never fails outward: when every model
// errors out or returns an empty string, the result carries a canned
// explanatory message (quota-specific when the last failure looks like a
// rate-limit condition) and no model identifier.
func (s *AssistantService) Complete(ctx context.Context, prompt string) *models.CompletionResult {
	var lastErr error

	for _, model := range s.modelPriority {
		log.Printf("🔮 Trying model: %s", model)

		result, err := s.genClient.GenerateText(ctx, model, prompt)
		if err != nil {
			log.Printf("❌ Model %s failed: %v", model, err)
			lastErr = err
			continue
		}

		log.Printf("✅ Completion succeeded with model: %s", model)
		return &models.CompletionResult{
			Text:         result.Text,
			Model:        result.Model,
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
		}
	}

	log.Printf("⚠️ All %d models exhausted, returning canned message", len(s.modelPriority))
	return &models.CompletionResult{Text: exhaustedMessage(lastErr)}
}

func exhaustedMessage(lastErr error) string {
	if lastErr != nil {
		msg := lastErr.Error()
		if strings.Contains(msg, "quota") || strings.Contains(msg, "429") {
			return exhaustedMessageQuota
		}
	}
	return exhaustedMessageGeneric
}
