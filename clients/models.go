package clients

import (
	"github.com/zishang520/socket.io/v2/socket"
)

// Connection represents one authenticated realtime connection from a chat
// client (one open app instance)
type Connection struct {
	ID     string
	Socket *socket.Socket
	UserID string
}

// Realtime event names shared between server and mobile clients
const (
	EventNewMessage        = "message:new"
	EventAssistantThinking = "assistant:thinking"
	EventAssistantError    = "assistant:error"
)
