package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/api/shared"
	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/platform/logger"
)

// SessionResolver finds or starts the session for a cookie value.
// service.GiftService satisfies it.
type SessionResolver interface {
	GetOrCreate(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// SessionMiddleware binds every request to a visitor session identified by
// a cookie. A missing, malformed or expired cookie yields a new session. The
// cookie is re-issued on every request, so its lifetime slides with use.
type SessionMiddleware struct {
	sessions SessionResolver
	cfg      config.SessionConfig
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions SessionResolver, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg,
	}
}

// Handle is the middleware function
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		requested := uuid.Nil
		if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
			if id, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
				requested = id
			} else {
				log.Debug("ignoring malformed session cookie")
			}
		}

		session, err := m.sessions.GetOrCreate(r.Context(), requested)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}

		// Refresh the cookie on every request so it expires no earlier than
		// the idle session it points at.
		http.SetCookie(w, m.cookie(session.ID))
		if session.ID != requested {
			log.Debug("issued new session", slog.String("session_id", session.ID.String()))
		}

		log = log.With(slog.String("session_id", session.ID.String()))
		ctx := shared.SetSessionID(r.Context(), session.ID)
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) cookie(id uuid.UUID) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int((time.Duration(m.cfg.TTLMinutes) * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
