package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"chatbackend/clients"
	"chatbackend/core"
	"chatbackend/models"
	"chatbackend/models/api"
	"chatbackend/services"
	"chatbackend/utils"
)

// ProcessResult carries the persisted messages of one pipeline invocation.
// AssistantMessage is nil when the message did not trigger the assistant.
type ProcessResult struct {
	UserMessage      *models.Message
	AssistantMessage *models.Message
}

// AssistantUseCase orchestrates the command/fallback pipeline: trigger
// detection, command classification, webhook dispatch or generative
// completion, and persistence of the assistant reply.
type AssistantUseCase struct {
	messagesService   services.MessagesService
	commandsService   services.CommandsService
	completionService services.AssistantCompletionService
	usageCostService  services.UsageCostService
	workflowClient    clients.WorkflowClient
	realtime          clients.RealtimeBroadcaster
	txManager         services.TransactionManager
	assistantUserID   string
}

// NewAssistantUseCase creates a new instance of AssistantUseCase
func NewAssistantUseCase(
	messagesService services.MessagesService,
	commandsService services.CommandsService,
	completionService services.AssistantCompletionService,
	usageCostService services.UsageCostService,
	workflowClient clients.WorkflowClient,
	realtime clients.RealtimeBroadcaster,
	txManager services.TransactionManager,
	assistantUserID string,
) *AssistantUseCase {
	utils.AssertInvariant(core.IsValidULID(assistantUserID), "assistant user ID must be a valid ULID")

	return &AssistantUseCase{
		messagesService:   messagesService,
		commandsService:   commandsService,
		completionService: completionService,
		usageCostService:  usageCostService,
		workflowClient:    workflowClient,
		realtime:          realtime,
		txManager:         txManager,
		assistantUserID:   assistantUserID,
	}
}

// ProcessUserMessage persists the user's message and, when it carries the
// assistant trigger token, runs the pipeline and persists exactly one
// assistant reply. A trigger with an empty effective prompt is rejected with
// a ValidationError before anything is written.
func (uc *AssistantUseCase) ProcessUserMessage(
	ctx context.Context,
	chat *models.Chat,
	user *models.User,
	text string,
) (*ProcessResult, error) {
	log.Printf("📋 Processing message from user %s in chat %s", user.ID, chat.ID)

	detection := utils.DetectAssistantTrigger(text)
	if detection.IsTrigger && detection.Prompt == "" {
		return nil, core.NewValidationError("write something after the assistant trigger, e.g. @ia send an email to ana@example.com")
	}

	userMessage, err := uc.messagesService.CreateMessage(ctx, chat.ID, user.ID, strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}
	uc.broadcastMessage(chat.ID, userMessage)

	if !detection.IsTrigger {
		log.Printf("📋 Completed successfully - message is not assistant-directed")
		return &ProcessResult{UserMessage: userMessage}, nil
	}

	// Ephemeral feedback for the author only. Other participants never see
	// the thinking state; they only receive the final persisted reply.
	if err := uc.realtime.SendToUser(user.ID, clients.EventAssistantThinking, map[string]any{
		"chat_id": chat.ID,
	}); err != nil {
		log.Printf("⚠️ Failed to send thinking event to user %s: %v", user.ID, err)
	}

	replyText := uc.resolveReply(ctx, chat, user, detection.Prompt)

	var assistantMessage *models.Message
	err = uc.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		assistantMessage, err = uc.messagesService.CreateMessage(txCtx, chat.ID, uc.assistantUserID, replyText.text)
		if err != nil {
			return fmt.Errorf("failed to persist assistant reply: %w", err)
		}

		if replyText.trackUsage {
			if err := uc.usageCostService.TrackUsage(txCtx, chat.ID, replyText.inputTokens, replyText.outputTokens); err != nil {
				return fmt.Errorf("failed to track usage: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if sendErr := uc.realtime.SendToUser(user.ID, clients.EventAssistantError, map[string]any{
			"chat_id": chat.ID,
			"message": "The assistant reply could not be saved. Please try again.",
		}); sendErr != nil {
			log.Printf("⚠️ Failed to send error event to user %s: %v", user.ID, sendErr)
		}
		return nil, err
	}

	uc.broadcastMessage(chat.ID, assistantMessage)

	log.Printf("📋 Completed successfully - assistant reply %s persisted in chat %s", assistantMessage.ID, chat.ID)
	return &ProcessResult{UserMessage: userMessage, AssistantMessage: assistantMessage}, nil
}

type resolvedReply struct {
	text         string
	trackUsage   bool
	inputTokens  int
	outputTokens int
}

// resolveReply runs classification and the matching branch. It always comes
// back with display-ready text: dispatch and generation failures degrade to
// formatted error strings rather than propagating.
func (uc *AssistantUseCase) resolveReply(ctx context.Context, chat *models.Chat, user *models.User, prompt string) resolvedReply {
	if maybeCommand := uc.commandsService.Detect(prompt); maybeCommand.IsPresent() {
		command := maybeCommand.MustGet()
		params := uc.commandsService.ExtractParams(command, prompt)

		dispatchCtx := models.DispatchContext{
			ChatID:   chat.ID,
			ChatName: chat.Name,
			UserName: user.DisplayName,
			UserID:   user.ID,
		}

		result, err := uc.workflowClient.Dispatch(ctx, command, params, dispatchCtx)
		if err != nil {
			var dispatchErr *clients.DispatchError
			if !errors.As(err, &dispatchErr) {
				log.Printf("❌ Unexpected dispatch failure for command %s: %v", command.Type, err)
			}
			return resolvedReply{text: "⚠️ The automation service could not be reached. Your command was not executed, please try again later."}
		}

		return resolvedReply{text: formatDispatchReply(command, result)}
	}

	log.Printf("🔍 No command matched, falling back to generative completion")
	completion := uc.completionService.Complete(ctx, prompt)
	return resolvedReply{
		text:         completion.Text,
		trackUsage:   !completion.Exhausted(),
		inputTokens:  completion.InputTokens,
		outputTokens: completion.OutputTokens,
	}
}

func formatDispatchReply(command *models.DetectedCommand, result *models.DispatchResult) string {
	if !result.Success {
		reason := result.ErrorMessage
		if reason == "" {
			reason = result.Message
		}
		if reason == "" {
			reason = "the automation backend reported an unspecified error"
		}
		return fmt.Sprintf("⚠️ Command %s failed: %s", command.Type, reason)
	}

	message := result.Message
	if message == "" {
		message = fmt.Sprintf("Command %s executed successfully.", command.Type)
	}

	if details, ok := result.Data["details"].(string); ok && details != "" {
		return fmt.Sprintf("✅ %s\n\n%s", message, details)
	}
	return "✅ " + message
}

func (uc *AssistantUseCase) broadcastMessage(chatID string, message *models.Message) {
	if err := uc.realtime.BroadcastToChat(chatID, clients.EventNewMessage, api.DomainMessageToAPIMessage(message)); err != nil {
		log.Printf("⚠️ Failed to broadcast message %s to chat %s: %v", message.ID, chatID, err)
	}
}
