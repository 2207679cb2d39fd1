package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-tutoring-system/internal/config"
	"ai-tutoring-system/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx := context.Background()

	// Wiring
	container := config.NewContainer(ctx)
	defer func() {
		if err := container.Close(); err != nil {
			container.Logger.Error("Failed to close clients", err)
		}
	}()

	cfg := container.Config
	appLogger := container.Logger

	sessions := handler.NewSessionMiddleware(
		container.SessionStore,
		handler.NewSessionCookies(cfg.GetSessionHashKey(), cfg.GetSessionBlockKey(), appLogger),
		container.AuthService,
		appLogger,
	)

	// Handlers
	handlers := handler.Handlers{
		Session:      handler.NewSessionHandler(appLogger),
		Auth:         handler.NewAuthHandler(container.AuthService, sessions, appLogger),
		Chat:         handler.NewChatHandler(container.ChatHistoryService, appLogger),
		Document:     handler.NewDocumentHandler(container.DocumentService, cfg.GetMaxFileSize(), appLogger),
		Notes:        handler.NewNotesHandler(container.NotesService, appLogger),
		Conversation: handler.NewConversationHandler(container.ConversationService, appLogger),
	}

	// Router
	router := handler.NewRouter(handlers, sessions, cfg.GetAllowedOrigins())

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		appLogger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	appLogger.Info("Server exited")
}
