package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// newHTTPServer builds the server for router from the server configuration.
func (app *application) newHTTPServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(app.config.Server.ReadTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(app.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(app.config.Server.WriteTimeoutSeconds) * time.Second,
	}
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
// It returns once ctx is canceled, SIGINT or SIGTERM arrives, or the
// listener fails.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := app.newHTTPServer(router)

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			listenErr <- err
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		app.cleanup()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()

	app.logger.Info("Server shutdown completed")
	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	default:
		return nil
	}
}
