package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"chatbackend/appctx"
	"chatbackend/core"
	"chatbackend/models"
	"chatbackend/services/chats"
	"chatbackend/services/messages"
	usecasesassistant "chatbackend/usecases/assistant"
)

type mockMessagePipeline struct {
	mock.Mock
}

func (m *mockMessagePipeline) ProcessUserMessage(
	ctx context.Context,
	chat *models.Chat,
	user *models.User,
	text string,
) (*usecasesassistant.ProcessResult, error) {
	args := m.Called(ctx, chat, user, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecasesassistant.ProcessResult), args.Error(1)
}

func newAuthenticatedRequest(method, target, body string, user *models.User, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(appctx.SetUser(req.Context(), user))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func TestHandleSendMessage_Success(t *testing.T) {
	chatsService := new(chats.MockChatsService)
	pipeline := new(mockMessagePipeline)
	handler := NewChatsHTTPHandler(chatsService, new(messages.MockMessagesService), pipeline)

	user := &models.User{ID: core.NewID("u"), DisplayName: "Ana"}
	chat := &models.Chat{ID: core.NewID("c"), Name: "Equipo"}

	chatsService.On("GetChatByID", mock.Anything, chat.ID).Return(mo.Some(chat), nil)
	chatsService.On("IsChatMember", mock.Anything, chat.ID, user.ID).Return(true, nil)
	pipeline.On("ProcessUserMessage", mock.Anything, chat, user, "hola").Return(&usecasesassistant.ProcessResult{
		UserMessage: &models.Message{ID: core.NewID("m"), ChatID: chat.ID, AuthorID: user.ID, Content: "hola"},
	}, nil)

	req := newAuthenticatedRequest(http.MethodPost, "/api/chats/"+chat.ID+"/messages",
		`{"content": "hola"}`, user, map[string]string{"chatID": chat.ID})
	rec := httptest.NewRecorder()

	handler.HandleSendMessage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_message"`)
	assert.NotContains(t, rec.Body.String(), `"assistant_message"`)
}

func TestHandleSendMessage_ValidationErrorReturns400(t *testing.T) {
	chatsService := new(chats.MockChatsService)
	pipeline := new(mockMessagePipeline)
	handler := NewChatsHTTPHandler(chatsService, new(messages.MockMessagesService), pipeline)

	user := &models.User{ID: core.NewID("u")}
	chat := &models.Chat{ID: core.NewID("c")}

	chatsService.On("GetChatByID", mock.Anything, chat.ID).Return(mo.Some(chat), nil)
	chatsService.On("IsChatMember", mock.Anything, chat.ID, user.ID).Return(true, nil)
	pipeline.On("ProcessUserMessage", mock.Anything, chat, user, "@ia").
		Return(nil, core.NewValidationError("write something after the assistant trigger"))

	req := newAuthenticatedRequest(http.MethodPost, "/api/chats/"+chat.ID+"/messages",
		`{"content": "@ia"}`, user, map[string]string{"chatID": chat.ID})
	rec := httptest.NewRecorder()

	handler.HandleSendMessage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "assistant trigger")
}

func TestHandleSendMessage_NotAMember(t *testing.T) {
	chatsService := new(chats.MockChatsService)
	pipeline := new(mockMessagePipeline)
	handler := NewChatsHTTPHandler(chatsService, new(messages.MockMessagesService), pipeline)

	user := &models.User{ID: core.NewID("u")}
	chat := &models.Chat{ID: core.NewID("c")}

	chatsService.On("GetChatByID", mock.Anything, chat.ID).Return(mo.Some(chat), nil)
	chatsService.On("IsChatMember", mock.Anything, chat.ID, user.ID).Return(false, nil)

	req := newAuthenticatedRequest(http.MethodPost, "/api/chats/"+chat.ID+"/messages",
		`{"content": "hola"}`, user, map[string]string{"chatID": chat.ID})
	rec := httptest.NewRecorder()

	handler.HandleSendMessage(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	pipeline.AssertNotCalled(t, "ProcessUserMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSendMessage_ChatNotFound(t *testing.T) {
	chatsService := new(chats.MockChatsService)
	handler := NewChatsHTTPHandler(chatsService, new(messages.MockMessagesService), new(mockMessagePipeline))

	user := &models.User{ID: core.NewID("u")}
	chatID := core.NewID("c")

	chatsService.On("GetChatByID", mock.Anything, chatID).Return(mo.None[*models.Chat](), nil)

	req := newAuthenticatedRequest(http.MethodPost, "/api/chats/"+chatID+"/messages",
		`{"content": "hola"}`, user, map[string]string{"chatID": chatID})
	rec := httptest.NewRecorder()

	handler.HandleSendMessage(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSendMessage_Unauthenticated(t *testing.T) {
	handler := NewChatsHTTPHandler(new(chats.MockChatsService), new(messages.MockMessagesService), new(mockMessagePipeline))

	req := httptest.NewRequest(http.MethodPost, "/api/chats/abc/messages", strings.NewReader(`{"content": "hola"}`))
	rec := httptest.NewRecorder()

	handler.HandleSendMessage(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
