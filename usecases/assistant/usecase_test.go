package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatbackend/clients"
	"chatbackend/core"
	"chatbackend/models"
	assistantsvc "chatbackend/services/assistant"
	"chatbackend/services/commands"
	"chatbackend/services/messages"
	"chatbackend/services/txmanager"
	"chatbackend/services/usagecost"
)

type fixture struct {
	messagesService   *messages.MockMessagesService
	completionService *assistantsvc.MockAssistantCompletionService
	usageCostService  *usagecost.MockUsageCostService
	workflowClient    *clients.MockWorkflowClient
	realtime          *clients.MockRealtimeBroadcaster
	useCase           *AssistantUseCase
	chat              *models.Chat
	user              *models.User
	assistantUserID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		messagesService:   new(messages.MockMessagesService),
		completionService: new(assistantsvc.MockAssistantCompletionService),
		usageCostService:  new(usagecost.MockUsageCostService),
		workflowClient:    new(clients.MockWorkflowClient),
		realtime:          new(clients.MockRealtimeBroadcaster),
		assistantUserID:   core.NewID("u"),
	}

	f.useCase = NewAssistantUseCase(
		f.messagesService,
		commands.NewCommandsService(commands.DefaultDefinitions()),
		f.completionService,
		f.usageCostService,
		f.workflowClient,
		f.realtime,
		&txmanager.PassthroughTransactionManager{},
		f.assistantUserID,
	)

	f.chat = &models.Chat{ID: core.NewID("c"), Name: "Equipo"}
	f.user = &models.User{ID: core.NewID("u"), DisplayName: "Ana"}

	f.realtime.On("BroadcastToChat", f.chat.ID, clients.EventNewMessage, mock.Anything).Return(nil)
	f.realtime.On("SendToUser", f.user.ID, clients.EventAssistantThinking, mock.Anything).Return(nil)

	return f
}

func (f *fixture) expectUserMessage(content string) *models.Message {
	msg := &models.Message{
		ID:       core.NewID("m"),
		ChatID:   f.chat.ID,
		AuthorID: f.user.ID,
		Content:  content,
		SentAt:   time.Now(),
	}
	f.messagesService.On("CreateMessage", mock.Anything, f.chat.ID, f.user.ID, content).Return(msg, nil)
	return msg
}

func (f *fixture) expectAssistantMessage() *models.Message {
	msg := &models.Message{
		ID:       core.NewID("m"),
		ChatID:   f.chat.ID,
		AuthorID: f.assistantUserID,
		SentAt:   time.Now(),
	}
	f.messagesService.On("CreateMessage", mock.Anything, f.chat.ID, f.assistantUserID, mock.Anything).
		Run(func(args mock.Arguments) { msg.Content = args.String(3) }).
		Return(msg, nil)
	return msg
}

func TestProcessUserMessage_NonTriggerPassthrough(t *testing.T) {
	f := newFixture(t)
	f.expectUserMessage("hola equipo")

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, "hola equipo")

	require.NoError(t, err)
	assert.NotNil(t, result.UserMessage)
	assert.Nil(t, result.AssistantMessage)
	f.messagesService.AssertNumberOfCalls(t, "CreateMessage", 1)
	f.workflowClient.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.completionService.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	f.realtime.AssertNotCalled(t, "SendToUser", f.user.ID, clients.EventAssistantThinking, mock.Anything)
}

func TestProcessUserMessage_EmptyPromptAfterTrigger(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"@ia", "@ia ", "  @IA   "} {
		result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

		require.Error(t, err)
		assert.True(t, core.IsValidationError(err))
		assert.Nil(t, result)
	}

	f.messagesService.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUserMessage_EmailCommandDispatched(t *testing.T) {
	f := newFixture(t)
	text := "@ia enviar correo a ana@example.com sobre el proyecto"
	f.expectUserMessage(text)
	reply := f.expectAssistantMessage()

	f.workflowClient.On("Dispatch",
		mock.Anything,
		mock.MatchedBy(func(cmd *models.DetectedCommand) bool { return cmd.Type == "email" }),
		models.CommandParams{
			"destinatario": "ana@example.com",
			"titulo":       "el proyecto",
			"cuerpo":       "el proyecto",
			"comando":      "email",
		},
		models.DispatchContext{ChatID: f.chat.ID, ChatName: "Equipo", UserName: "Ana", UserID: f.user.ID},
	).Return(&models.DispatchResult{Success: true, Message: "Email sent", Data: map[string]any{"details": "Delivered to ana@example.com"}}, nil)

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	require.NotNil(t, result.AssistantMessage)
	assert.Equal(t, "✅ Email sent\n\nDelivered to ana@example.com", reply.Content)
	assert.Equal(t, f.assistantUserID, result.AssistantMessage.AuthorID)
	f.completionService.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	f.workflowClient.AssertExpectations(t)
}

func TestProcessUserMessage_CalendarCommandParams(t *testing.T) {
	f := newFixture(t)
	text := "@ia crear reunión sobre presupuesto"
	f.expectUserMessage(text)
	f.expectAssistantMessage()

	f.workflowClient.On("Dispatch",
		mock.Anything,
		mock.MatchedBy(func(cmd *models.DetectedCommand) bool { return cmd.Type == "calendar" }),
		models.CommandParams{
			"titulo":  "presupuesto",
			"fecha":   "today",
			"hora":    "to be defined",
			"comando": "calendar",
		},
		mock.Anything,
	).Return(&models.DispatchResult{Success: true}, nil)

	_, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	f.workflowClient.AssertExpectations(t)
}

func TestProcessUserMessage_NoMatchFallsBackToCompletion(t *testing.T) {
	f := newFixture(t)
	text := "@ia cuéntame un chiste"
	f.expectUserMessage(text)
	reply := f.expectAssistantMessage()

	f.completionService.On("Complete", mock.Anything, "cuéntame un chiste").
		Return(&models.CompletionResult{Text: "Un chiste corto.", Model: "gemini-2.5-flash", InputTokens: 12, OutputTokens: 34})
	f.usageCostService.On("TrackUsage", mock.Anything, f.chat.ID, 12, 34).Return(nil)

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	assert.Equal(t, "Un chiste corto.", reply.Content)
	assert.NotNil(t, result.AssistantMessage)
	f.workflowClient.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.usageCostService.AssertExpectations(t)
}

func TestProcessUserMessage_ExhaustedFallbackStillPersistsOneReply(t *testing.T) {
	f := newFixture(t)
	text := "@ia cuéntame un chiste"
	f.expectUserMessage(text)
	reply := f.expectAssistantMessage()

	f.completionService.On("Complete", mock.Anything, "cuéntame un chiste").
		Return(&models.CompletionResult{Text: "🤖 Assistant unavailable right now."})

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	assert.NotEmpty(t, reply.Content)
	assert.NotNil(t, result.AssistantMessage)
	// user message + exactly one assistant reply
	f.messagesService.AssertNumberOfCalls(t, "CreateMessage", 2)
	f.usageCostService.AssertNotCalled(t, "TrackUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUserMessage_DispatchErrorPersistsFailureReply(t *testing.T) {
	f := newFixture(t)
	text := "@ia enviar correo a ana@example.com sobre el proyecto"
	f.expectUserMessage(text)
	reply := f.expectAssistantMessage()

	f.workflowClient.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &clients.DispatchError{StatusCode: 500})

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	require.NotNil(t, result.AssistantMessage)
	assert.True(t, len(reply.Content) > 0)
	assert.Contains(t, reply.Content, "⚠️")
	assert.NotContains(t, reply.Content, "Email sent")
	f.messagesService.AssertNumberOfCalls(t, "CreateMessage", 2)
	f.completionService.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestProcessUserMessage_WebhookReportedFailure(t *testing.T) {
	f := newFixture(t)
	text := "@ia crear tarea para revisar informes"
	f.expectUserMessage(text)
	reply := f.expectAssistantMessage()

	f.workflowClient.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.DispatchResult{Success: false, ErrorMessage: "workflow disabled"}, nil)

	_, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	assert.Contains(t, reply.Content, "⚠️ Command task failed: workflow disabled")
}

func TestProcessUserMessage_TriggerCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	text := "@IA cuéntame un chiste"
	f.expectUserMessage(text)
	f.expectAssistantMessage()

	f.completionService.On("Complete", mock.Anything, "cuéntame un chiste").
		Return(&models.CompletionResult{Text: "ok", Model: "gemini-2.5-flash"})
	f.usageCostService.On("TrackUsage", mock.Anything, f.chat.ID, 0, 0).Return(nil)

	result, err := f.useCase.ProcessUserMessage(context.Background(), f.chat, f.user, text)

	require.NoError(t, err)
	assert.NotNil(t, result.AssistantMessage)
}
