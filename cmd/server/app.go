package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/platform/gemini"
	"github.com/phrazzld/present-ai/internal/platform/memory"
	"github.com/phrazzld/present-ai/internal/service"
	"github.com/phrazzld/present-ai/internal/store"
	"github.com/phrazzld/present-ai/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	sessions  store.SessionStore
	generator generation.Generator
	gifts     service.GiftService

	// Background maintenance
	janitor *task.SessionJanitor
}

// newApplication creates the application with the Gemini generator.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully", "model", cfg.LLM.ModelName)

	return assembleApplication(cfg, logger, generator)
}

// assembleApplication wires every component around the given generator.
// The session janitor is created but not started; Run starts it.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		sessions:  memory.NewSessionStore(logger),
	}

	prompts, err := generation.LoadPromptBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	app.gifts, err = service.NewGiftService(app.sessions, app.generator, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gift service: %w", err)
	}

	janitorCfg := task.DefaultJanitorConfig()
	janitorCfg.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	app.janitor = task.NewSessionJanitor(app.sessions, janitorCfg, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the background janitor and the HTTP server and blocks until
// the server shuts down.
func (app *application) Run(ctx context.Context) error {
	app.janitor.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.janitor != nil {
		app.janitor.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
