package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/present-ai/internal/api"
	apiMiddleware "github.com/phrazzld/present-ai/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	sessionMiddleware := apiMiddleware.NewSessionMiddleware(app.gifts, app.config.Session)
	pageHandler := api.NewPageHandler(app.gifts)
	giftHandler := api.NewGiftHandler(app.gifts)

	// Everything a visitor touches runs inside their session
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.Handle)

		r.Get("/", pageHandler.Show)
		r.Post("/gifts", pageHandler.FindGiftIdeas)
		r.Post("/gifts/more", pageHandler.ShowMore)
		r.Post("/reset", pageHandler.StartOver)

		r.Route("/api", func(r chi.Router) {
			r.Get("/session", giftHandler.GetSession)
			r.Delete("/session", giftHandler.ResetSession)
			r.Post("/gifts", giftHandler.FindGiftIdeas)
			r.Post("/gifts/more", giftHandler.ShowMore)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
