package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"chatbackend/clients"
	"chatbackend/models"
)

// N8NClient implements the clients.WorkflowClient interface against a fixed
// n8n webhook endpoint
type N8NClient struct {
	httpClient *http.Client
	webhookURL string
}

// webhookRequest is the JSON body posted to the automation webhook
type webhookRequest struct {
	Command   string                 `json:"command"`
	Action    string                 `json:"action"`
	Params    models.CommandParams   `json:"params"`
	Context   models.DispatchContext `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// webhookResponse is the JSON body the webhook replies with on 2xx
type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
	Data map[string]any `json:"data"`
}

// NewN8NClient creates a new workflow webhook client
func NewN8NClient(webhookURL string) *N8NClient {
	return &N8NClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		webhookURL: webhookURL,
	}
}

// Dispatch performs exactly one HTTP POST to the webhook endpoint. There are
// no retries and no idempotency key: the triggered workflow runs at most
// once, best effort. Non-2xx statuses and transport failures are returned as
// *clients.DispatchError without parsing the body.
func (c *N8NClient) Dispatch(
	ctx context.Context,
	command *models.DetectedCommand,
	params models.CommandParams,
	dispatchCtx models.DispatchContext,
) (*models.DispatchResult, error) {
	reqBody := webhookRequest{
		Command:   command.Type,
		Action:    command.Action,
		Params:    params,
		Context:   dispatchCtx,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook request: %w", err)
	}

	log.Printf("🚀 Dispatching %s command to workflow webhook for chat %s", command.Type, dispatchCtx.ChatID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &clients.DispatchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ Workflow webhook returned status %d for %s command", resp.StatusCode, command.Type)
		return nil, &clients.DispatchError{StatusCode: resp.StatusCode}
	}

	var parsed webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &clients.DispatchError{Err: fmt.Errorf("malformed webhook response: %w", err)}
	}

	result := &models.DispatchResult{
		Success: parsed.Success,
		Message: parsed.Message,
		Data:    parsed.Data,
	}
	if parsed.Error != nil {
		result.ErrorMessage = parsed.Error.Message
	}

	log.Printf("✅ Workflow webhook responded for %s command: success=%v", command.Type, result.Success)
	return result, nil
}
