package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"chatbackend/appctx"
	"chatbackend/core"
	"chatbackend/middleware"
	"chatbackend/models"
	"chatbackend/models/api"
	"chatbackend/services"
	usecasesassistant "chatbackend/usecases/assistant"
)

// MessagePipeline is the orchestrator surface the handler drives for
// submitted messages
type MessagePipeline interface {
	ProcessUserMessage(
		ctx context.Context,
		chat *models.Chat,
		user *models.User,
		text string,
	) (*usecasesassistant.ProcessResult, error)
}

type ChatsHTTPHandler struct {
	chatsService     services.ChatsService
	messagesService  services.MessagesService
	assistantUseCase MessagePipeline
}

func NewChatsHTTPHandler(
	chatsService services.ChatsService,
	messagesService services.MessagesService,
	assistantUseCase MessagePipeline,
) *ChatsHTTPHandler {
	return &ChatsHTTPHandler{
		chatsService:     chatsService,
		messagesService:  messagesService,
		assistantUseCase: assistantUseCase,
	}
}

type CreateChatRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatsHTTPHandler) HandleUserAuthenticate(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 User authentication request received from %s", r.RemoteAddr)

	// Get user entity from context (set by authentication middleware)
	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	log.Printf("✅ User data retrieved from context: %s", user.ID)
	h.writeJSONResponse(w, http.StatusOK, api.DomainUserToAPIUser(user))
}

func (h *ChatsHTTPHandler) HandleListChats(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List chats request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	chats, err := h.chatsService.GetChatsForUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Failed to list chats: %v", err)
		http.Error(w, "failed to list chats", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainChatsToAPIChats(chats))
}

func (h *ChatsHTTPHandler) HandleCreateChat(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create chat request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		log.Printf("❌ Missing name in request")
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	chat, err := h.chatsService.CreateChat(r.Context(), req.Name, user.ID, req.MemberIDs)
	if err != nil {
		log.Printf("❌ Failed to create chat: %v", err)
		http.Error(w, "failed to create chat", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Chat created successfully: %s", chat.ID)
	h.writeJSONResponse(w, http.StatusCreated, api.DomainChatToAPIChat(chat))
}

func (h *ChatsHTTPHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List messages request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["chatID"]
	chat, ok := h.requireChatMembership(w, r, chatID, user.ID)
	if !ok {
		return
	}

	messages, err := h.messagesService.GetMessagesByChatID(r.Context(), chat.ID)
	if err != nil {
		log.Printf("❌ Failed to list messages: %v", err)
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainMessagesToAPIMessages(messages))
}

func (h *ChatsHTTPHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📤 Send message request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["chatID"]
	chat, ok := h.requireChatMembership(w, r, chatID, user.ID)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		log.Printf("❌ Missing content in request")
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	result, err := h.assistantUseCase.ProcessUserMessage(r.Context(), chat, user, req.Content)
	if err != nil {
		if core.IsValidationError(err) {
			log.Printf("⚠️ Message rejected: %v", err)
			h.writeJSONResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("❌ Failed to process message: %v", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, &api.SendMessageResponse{
		UserMessage:      api.DomainMessageToAPIMessage(result.UserMessage),
		AssistantMessage: api.DomainMessageToAPIMessage(result.AssistantMessage),
	})
}

// requireChatMembership loads the chat and checks that the user belongs to
// it, writing the error response itself when either check fails
func (h *ChatsHTTPHandler) requireChatMembership(
	w http.ResponseWriter,
	r *http.Request,
	chatID, userID string,
) (*models.Chat, bool) {
	maybeChat, err := h.chatsService.GetChatByID(r.Context(), chatID)
	if err != nil {
		log.Printf("❌ Failed to get chat %s: %v", chatID, err)
		http.Error(w, "failed to get chat", http.StatusInternalServerError)
		return nil, false
	}
	if maybeChat.IsAbsent() {
		log.Printf("❌ Chat not found: %s", chatID)
		http.Error(w, "chat not found", http.StatusNotFound)
		return nil, false
	}
	chat := maybeChat.MustGet()

	isMember, err := h.chatsService.IsChatMember(r.Context(), chat.ID, userID)
	if err != nil {
		log.Printf("❌ Failed to check chat membership: %v", err)
		http.Error(w, "failed to check chat membership", http.StatusInternalServerError)
		return nil, false
	}
	if !isMember {
		log.Printf("❌ User %s is not a member of chat %s", userID, chat.ID)
		http.Error(w, "not a member of this chat", http.StatusForbidden)
		return nil, false
	}

	return chat, true
}

func (h *ChatsHTTPHandler) SetupEndpoints(router *mux.Router, authMiddleware *middleware.ClerkAuthMiddleware) {
	log.Printf("🚀 Registering chat API endpoints")

	router.HandleFunc("/users/authenticate", authMiddleware.WithAuth(h.HandleUserAuthenticate)).Methods("POST")
	log.Printf("✅ POST /users/authenticate endpoint registered")

	router.HandleFunc("/chats", authMiddleware.WithAuth(h.HandleListChats)).Methods("GET")
	log.Printf("✅ GET /chats endpoint registered")

	router.HandleFunc("/chats", authMiddleware.WithAuth(h.HandleCreateChat)).Methods("POST")
	log.Printf("✅ POST /chats endpoint registered")

	router.HandleFunc("/chats/{chatID}/messages", authMiddleware.WithAuth(h.HandleListMessages)).Methods("GET")
	log.Printf("✅ GET /chats/{chatID}/messages endpoint registered")

	router.HandleFunc("/chats/{chatID}/messages", authMiddleware.WithAuth(h.HandleSendMessage)).Methods("POST")
	log.Printf("✅ POST /chats/{chatID}/messages endpoint registered")
}

func (h *ChatsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
