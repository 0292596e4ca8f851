// Carbon Agent API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rickkk856/carbon-agent-api/internal/agent"
	"github.com/rickkk856/carbon-agent-api/internal/api"
	"github.com/rickkk856/carbon-agent-api/internal/config"
	"github.com/rickkk856/carbon-agent-api/internal/llm"
	"github.com/rickkk856/carbon-agent-api/internal/middleware"
	"github.com/rickkk856/carbon-agent-api/internal/store"
	"github.com/rickkk856/carbon-agent-api/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.Model)

	// Initialize dependencies.
	repo, err := store.NewFileStore(cfg.SessionsDir)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	slog.Info("Session store ready", "dir", cfg.SessionsDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gemini, err := llm.NewGemini(ctx, llm.GeminiConfig{APIKey: cfg.GeminiAPIKey}, logger)
	if err != nil {
		slog.Error("Failed to initialize Gemini client", "error", err)
		os.Exit(1)
	}

	// Initialize services and handlers.
	svc := agent.NewService(gemini, repo, agent.Config{
		Model:           cfg.Model,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
		WindowSize:      cfg.WindowSize,
	}, logger)

	handler := api.NewHandler(svc)
	wsHandler := api.NewWebSocketHandler(svc, cfg.CORSOrigins)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	handler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/carbon", wsHandler.ServeHTTP)

	// Serve embedded API docs.
	r.Handle("/docs", web.DocsHandler())
	r.Handle("/docs/*", web.DocsHandler())

	// Create server.
	// Note: streaming responses require long timeouts (no WriteTimeout).
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,                 // 0 = no timeout for streaming support
		IdleTimeout:  120 * time.Second, // 2 minutes for idle connections
	}

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
