// bpchat server — conversational front-end to generated business blueprints.
// Provides the chat turn HTTP API and the confirm/cancel edit endpoint.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/launchblocks/bpchat/pkg/agent"
	"github.com/launchblocks/bpchat/pkg/api"
	"github.com/launchblocks/bpchat/pkg/config"
	"github.com/launchblocks/bpchat/pkg/database"
	"github.com/launchblocks/bpchat/pkg/llm"
	"github.com/launchblocks/bpchat/pkg/retrieval"
	"github.com/launchblocks/bpchat/pkg/services"
	"github.com/launchblocks/bpchat/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	envPath := flag.String("env-file", getEnv("ENV_FILE", ".env"), "Path to .env file")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", *envPath, "error", err)
	}

	httpPort := getEnv("HTTP_PORT", "8080")

	slog.Info("Starting bpchat",
		"version", version.Full(),
		"http_port", httpPort)

	ctx := context.Background()

	// 1. Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize database (runs embedded migrations)
	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load database config", "error", err)
		os.Exit(1)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()
	slog.Info("Connected to PostgreSQL database")

	// 3. Initialize LLM provider client and agents
	llmClient := llm.NewClient(llm.Config{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
	})
	slog.Info("LLM client initialized",
		"chat_model", cfg.ChatModel,
		"embedding_model", cfg.EmbeddingModel)

	// 4. Wire domain services and the turn orchestrator
	blueprintService := services.NewBlueprintService(dbClient.Pool())
	retriever := retrieval.NewEngine(dbClient.Pool(), llmClient)

	orchestrator := agent.NewOrchestrator(
		llm.NewClassifier(llmClient, slog.Default()),
		retriever,
		llm.NewQAAgent(llmClient),
		llm.NewEditAgent(llmClient),
		llm.NewExplainAgent(llmClient),
		blueprintService,
		agent.Options{
			MatchCount:     cfg.MatchCount,
			MatchThreshold: cfg.MatchThreshold,
			CallTimeout:    cfg.CallTimeout,
		},
		slog.Default(),
	)
	slog.Info("Turn orchestrator initialized",
		"match_count", cfg.MatchCount,
		"match_threshold", cfg.MatchThreshold)

	// 5. Create and start HTTP server (non-blocking)
	httpServer := api.NewServer(dbClient, orchestrator, blueprintService)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + httpPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// 6. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 7. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
