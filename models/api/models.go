package api

import (
	"time"
)

// UserModel represents user data returned by the API
type UserModel struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatModel represents chat data returned by the API
type ChatModel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageModel represents a single chat message returned by the API and
// broadcast over the realtime channel
type MessageModel struct {
	ID       string    `json:"id"`
	ChatID   string    `json:"chat_id"`
	AuthorID string    `json:"author_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

// SendMessageResponse is returned when a message is submitted. The assistant
// message is only present when the submitted text triggered the pipeline.
type SendMessageResponse struct {
	UserMessage      *MessageModel `json:"user_message"`
	AssistantMessage *MessageModel `json:"assistant_message,omitempty"`
}
