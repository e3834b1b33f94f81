package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"chatbackend/clients"
)

// Fixed sampling parameters for assistant completions: bounded output,
// moderate randomness. Applied to every model in the fallback chain.
const (
	maxOutputTokens = 800
	temperature     = 0.7
)

// GeminiClient implements the clients.GenerativeClient interface on top of
// the Google GenAI API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini generative client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// GenerateText issues one generation request against the given model
// identifier. An empty or whitespace-only completion is returned as an error
// so callers can treat it like any other per-model failure.
func (c *GeminiClient) GenerateText(ctx context.Context, model, prompt string) (*clients.GenerationResult, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
		Temperature:     genai.Ptr[float32](temperature),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generation with model %s failed: %w", model, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response received from model %s", model)
	}

	result := &clients.GenerationResult{
		Text:  text,
		Model: model,
	}
	if resp.UsageMetadata != nil {
		result.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return result, nil
}
