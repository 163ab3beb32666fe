// Package main implements the entry point for the Present AI server, which
// suggests personalized gift ideas using the Gemini API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/platform/logger"
)

func main() {
	fmt.Println("Present AI Server Starting...")

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"session_ttl_minutes", cfg.Session.TTLMinutes)
	if cfg.LLM.PromptTemplatePath != "" {
		l.Debug("Prompt template override", "path", cfg.LLM.PromptTemplatePath)
	}

	return cfg, l, nil
}
