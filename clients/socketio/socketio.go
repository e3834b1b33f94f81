package socketio

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/zishang520/socket.io/v2/socket"

	"chatbackend/clients"
	"chatbackend/core"
	"chatbackend/models"
	"chatbackend/utils"
)

type ConnectionHookFunc func(conn *clients.Connection) error

// TokenValidatorFunc resolves a bearer token from the handshake into the
// authenticated user
type TokenValidatorFunc func(token string) (*models.User, error)

// JoinValidatorFunc reports whether the user may subscribe to the chat
type JoinValidatorFunc func(userID, chatID string) (bool, error)

// SocketIOServer owns the realtime side of the chat: one connection per open
// app instance, one room per subscribed chat. Each subscription lives only as
// long as the connection that opened it.
type SocketIOServer struct {
	server             *socket.Server
	connections        map[string]*clients.Connection // by connection ID
	connectionsByUser  map[string][]*clients.Connection
	mutex              sync.RWMutex
	connectionHooks    []ConnectionHookFunc
	disconnectionHooks []ConnectionHookFunc
	tokenValidator     TokenValidatorFunc
	joinValidator      JoinValidatorFunc
}

func NewSocketIOServer(tokenValidator TokenValidatorFunc, joinValidator JoinValidatorFunc) *SocketIOServer {
	server := socket.NewServer(nil, nil)
	rt := &SocketIOServer{
		server:             server,
		connections:        make(map[string]*clients.Connection),
		connectionsByUser:  make(map[string][]*clients.Connection),
		connectionHooks:    make([]ConnectionHookFunc, 0),
		disconnectionHooks: make([]ConnectionHookFunc, 0),
		tokenValidator:     tokenValidator,
		joinValidator:      joinValidator,
	}

	err := server.On("connection", func(sockets ...any) {
		sock := sockets[0].(*socket.Socket)
		rt.handleConnection(sock)
	})
	utils.AssertInvariant(err == nil, fmt.Sprintf("Failed to register connection handler: %v", err))

	return rt
}

func (rt *SocketIOServer) RegisterWithRouter(router *mux.Router) {
	log.Printf("🚀 Registering Socket.IO server on /socket.io/ endpoint")
	router.PathPrefix("/socket.io/").Handler(rt.server.ServeHandler(nil))
	log.Printf("✅ Socket.IO server registered on /socket.io/")
}

// getHandshakeHeader performs a case-insensitive lookup for a header in the handshake headers
func getHandshakeHeader(headers map[string][]string, headerName string) (string, bool) {
	for key, value := range headers {
		if strings.EqualFold(key, headerName) {
			if len(value) > 0 && value[0] != "" {
				return value[0], true
			}
		}
	}
	return "", false
}

func (rt *SocketIOServer) handleConnection(sock *socket.Socket) {
	log.Printf("🔗 New Socket.IO connection attempt, socket ID: %s", sock.Id())

	headers := sock.Handshake().Headers
	authHeader, exists := getHandshakeHeader(headers, "Authorization")
	if !exists || !strings.HasPrefix(authHeader, "Bearer ") {
		log.Printf("❌ Rejecting Socket.IO connection: missing bearer token")
		sock.Disconnect(true)
		return
	}

	user, err := rt.tokenValidator(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("❌ Rejecting Socket.IO connection: invalid token: %v", err)
		sock.Disconnect(true)
		return
	}

	conn := &clients.Connection{
		ID:     core.NewID("cn"),
		Socket: sock,
		UserID: user.ID,
	}
	rt.addConnection(conn)
	log.Printf("✅ Socket.IO connection %s established for user %s", conn.ID, conn.UserID)
	rt.invokeConnectionHooks(conn)

	err = sock.On("chat:join", func(data ...any) {
		if len(data) == 0 {
			log.Printf("❌ chat:join without chat ID from connection %s", conn.ID)
			return
		}
		chatID, ok := data[0].(string)
		if !ok || !core.IsValidULID(chatID) {
			log.Printf("❌ chat:join with invalid chat ID from connection %s", conn.ID)
			return
		}

		isMember, err := rt.joinValidator(conn.UserID, chatID)
		if err != nil {
			log.Printf("❌ Failed to validate chat membership for connection %s: %v", conn.ID, err)
			return
		}
		if !isMember {
			log.Printf("❌ Connection %s denied subscription to chat %s: not a member", conn.ID, chatID)
			return
		}

		sock.Join(chatRoom(chatID))
		log.Printf("🔔 Connection %s subscribed to chat %s", conn.ID, chatID)
	})
	utils.AssertInvariant(err == nil, fmt.Sprintf("Failed to set up chat:join handler for connection %s: %v", conn.ID, err))

	err = sock.On("chat:leave", func(data ...any) {
		if len(data) == 0 {
			return
		}
		chatID, ok := data[0].(string)
		if !ok {
			return
		}
		sock.Leave(chatRoom(chatID))
		log.Printf("🔕 Connection %s unsubscribed from chat %s", conn.ID, chatID)
	})
	utils.AssertInvariant(err == nil, fmt.Sprintf("Failed to set up chat:leave handler for connection %s: %v", conn.ID, err))

	err = sock.On("disconnect", func(data ...any) {
		log.Printf("🔌 Socket.IO connection closed for %s (socket ID: %s)", conn.ID, sock.Id())
		rt.invokeDisconnectionHooks(conn)
		rt.removeConnection(conn.ID)
	})
	utils.AssertInvariant(err == nil, fmt.Sprintf("Failed to set up disconnect handler for connection %s: %v", conn.ID, err))
}

func chatRoom(chatID string) socket.Room {
	return socket.Room("chat:" + chatID)
}

func (rt *SocketIOServer) addConnection(conn *clients.Connection) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	rt.connections[conn.ID] = conn
	rt.connectionsByUser[conn.UserID] = append(rt.connectionsByUser[conn.UserID], conn)
	log.Printf("📊 Connection %s added. Total connections: %d", conn.ID, len(rt.connections))
}

func (rt *SocketIOServer) removeConnection(connID string) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	conn, ok := rt.connections[connID]
	if !ok {
		log.Printf("⚠️ Attempted to remove connection %s but not found", connID)
		return
	}
	delete(rt.connections, connID)

	userConns := rt.connectionsByUser[conn.UserID]
	for i, c := range userConns {
		if c.ID == connID {
			rt.connectionsByUser[conn.UserID] = append(userConns[:i], userConns[i+1:]...)
			break
		}
	}
	if len(rt.connectionsByUser[conn.UserID]) == 0 {
		delete(rt.connectionsByUser, conn.UserID)
	}
	log.Printf("🔌 Connection %s removed. Remaining connections: %d", connID, len(rt.connections))
}

// BroadcastToChat emits an event to every connection subscribed to the chat's room
func (rt *SocketIOServer) BroadcastToChat(chatID, event string, payload any) error {
	log.Printf("📤 Broadcasting %s to chat %s", event, chatID)
	if err := rt.server.To(chatRoom(chatID)).Emit(event, payload); err != nil {
		return fmt.Errorf("failed to broadcast %s to chat %s: %w", event, chatID, err)
	}
	return nil
}

// SendToUser emits an event only to the user's own connections. Used for
// ephemeral signals (the assistant "thinking" placeholder) that other chat
// participants must never see.
func (rt *SocketIOServer) SendToUser(userID, event string, payload any) error {
	rt.mutex.RLock()
	conns := make([]*clients.Connection, len(rt.connectionsByUser[userID]))
	copy(conns, rt.connectionsByUser[userID])
	rt.mutex.RUnlock()

	if len(conns) == 0 {
		log.Printf("⚠️ No active connections for user %s, dropping %s event", userID, event)
		return nil
	}

	for _, conn := range conns {
		if err := conn.Socket.Emit(event, payload); err != nil {
			return fmt.Errorf("failed to send %s to connection %s: %w", event, conn.ID, err)
		}
	}
	return nil
}

func (rt *SocketIOServer) RegisterConnectionHook(hook ConnectionHookFunc) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	rt.connectionHooks = append(rt.connectionHooks, hook)
}

func (rt *SocketIOServer) RegisterDisconnectionHook(hook ConnectionHookFunc) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	rt.disconnectionHooks = append(rt.disconnectionHooks, hook)
}

func (rt *SocketIOServer) invokeConnectionHooks(conn *clients.Connection) {
	rt.mutex.RLock()
	defer rt.mutex.RUnlock()
	for i, hook := range rt.connectionHooks {
		if err := hook(conn); err != nil {
			log.Printf("❌ Connection hook %d failed for connection %s: %v", i+1, conn.ID, err)
		}
	}
}

func (rt *SocketIOServer) invokeDisconnectionHooks(conn *clients.Connection) {
	rt.mutex.RLock()
	defer rt.mutex.RUnlock()
	for i, hook := range rt.disconnectionHooks {
		if err := hook(conn); err != nil {
			log.Printf("❌ Disconnection hook %d failed for connection %s: %v", i+1, conn.ID, err)
		}
	}
}
