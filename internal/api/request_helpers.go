package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/api/shared"
	"github.com/phrazzld/present-ai/internal/platform/logger"
)

// getSessionIDFromContext extracts the visitor's session ID from the request
// context, where the session middleware put it. It writes an error response
// and returns false when the ID is missing.
func getSessionIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := shared.GetSessionID(r.Context())
	if !ok {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Error("session ID not found in request context")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return uuid.Nil, false
	}
	return id, true
}
