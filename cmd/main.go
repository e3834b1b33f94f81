package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"chatbackend/clients"
	"chatbackend/clients/gemini"
	"chatbackend/clients/n8n"
	"chatbackend/clients/socketio"
	"chatbackend/config"
	"chatbackend/db"
	"chatbackend/handlers"
	"chatbackend/middleware"
	"chatbackend/models"
	"chatbackend/services/assistant"
	"chatbackend/services/chats"
	"chatbackend/services/commands"
	"chatbackend/services/messages"
	"chatbackend/services/txmanager"
	"chatbackend/services/usagecost"
	"chatbackend/services/users"
	usecasesassistant "chatbackend/usecases/assistant"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "chatbackend",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	chatsRepo := db.NewPostgresChatsRepository(dbConn, cfg.DatabaseSchema)
	messagesRepo := db.NewPostgresMessagesRepository(dbConn, cfg.DatabaseSchema)
	usageCostsRepo := db.NewPostgresUsageCostsRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	usersService := users.NewUsersService(usersRepo)
	chatsService := chats.NewChatsService(chatsRepo, txManager)
	messagesService := messages.NewMessagesService(messagesRepo)
	commandsService := commands.NewCommandsService(commands.DefaultDefinitions())
	usageCostService := usagecost.NewUsageCostService(usageCostsRepo)

	geminiClient, err := gemini.NewGeminiClient(context.Background(), cfg.GeminiConfig.APIKey)
	if err != nil {
		return err
	}
	completionService := assistant.NewAssistantService(geminiClient, assistant.DefaultModelPriority())

	n8nClient := n8n.NewN8NClient(cfg.N8NConfig.WebhookURL)

	// The assistant identity authors every pipeline reply. Get-or-create keeps
	// restarts idempotent.
	assistantUser, err := usersService.GetOrCreateUser(context.Background(), "system", "assistant", "Asistente IA")
	if err != nil {
		return err
	}
	log.Printf("✅ Assistant user ready: %s", assistantUser.ID)

	authMiddleware := middleware.NewClerkAuthMiddleware(usersService, cfg.ClerkConfig.SecretKey)

	// Realtime server: handshake carries the same Clerk JWT as the REST API,
	// chat subscriptions are membership-checked
	tokenValidator := func(token string) (*models.User, error) {
		return authMiddleware.ValidateToken(context.Background(), token)
	}
	joinValidator := func(userID, chatID string) (bool, error) {
		return chatsService.IsChatMember(context.Background(), chatID, userID)
	}
	realtimeServer := socketio.NewSocketIOServer(tokenValidator, joinValidator)

	logConnection := func(conn *clients.Connection) error {
		log.Printf("🔗 Realtime connection %s active for user %s", conn.ID, conn.UserID)
		return nil
	}
	realtimeServer.RegisterConnectionHook(alertMiddleware.WrapConnectionHook(logConnection))

	assistantUseCase := usecasesassistant.NewAssistantUseCase(
		messagesService,
		commandsService,
		completionService,
		usageCostService,
		n8nClient,
		realtimeServer,
		txManager,
		assistantUser.ID,
	)

	chatsHandler := handlers.NewChatsHTTPHandler(chatsService, messagesService, assistantUseCase)

	// Create a new router
	router := mux.NewRouter()

	realtimeServer.RegisterWithRouter(router)

	apiRouter := router.PathPrefix("/api").Subrouter()
	chatsHandler.SetupEndpoints(apiRouter, authMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
