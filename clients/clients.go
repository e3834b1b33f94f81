package clients

import (
	"context"
	"fmt"

	"chatbackend/models"
)

// GenerationResult represents one successful text-generation call
type GenerationResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// GenerativeClient defines the interface for a single text-generation attempt
// against one model identifier. Model fallback ordering lives above this
// interface, in the assistant service.
type GenerativeClient interface {
	GenerateText(ctx context.Context, model, prompt string) (*GenerationResult, error)
}

// WorkflowClient defines the interface for dispatching detected commands to
// the external workflow-automation webhook
type WorkflowClient interface {
	Dispatch(
		ctx context.Context,
		command *models.DetectedCommand,
		params models.CommandParams,
		dispatchCtx models.DispatchContext,
	) (*models.DispatchResult, error)
}

// RealtimeBroadcaster defines the interface for fanning chat events out over
// the realtime channel
type RealtimeBroadcaster interface {
	// BroadcastToChat emits an event to every connection subscribed to the chat
	BroadcastToChat(chatID, event string, payload any) error
	// SendToUser emits an event only to the given user's own connections
	SendToUser(userID, event string, payload any) error
}

// DispatchError wraps failures of the webhook call itself: transport errors
// and non-2xx statuses. A 2xx response with success=false is NOT a
// DispatchError; it is a DispatchResult with Success=false.
type DispatchError struct {
	StatusCode int
	Err        error
}

func (e *DispatchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook dispatch failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook dispatch failed: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
