package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/present-ai/internal/api/shared"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/service"
)

// GiftHandler serves the JSON API for gift idea sessions
type GiftHandler struct {
	gifts service.GiftService
}

// NewGiftHandler creates a new GiftHandler
func NewGiftHandler(gifts service.GiftService) *GiftHandler {
	return &GiftHandler{gifts: gifts}
}

// GetSession handles GET /api/session requests
func (h *GiftHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	session, err := h.gifts.GetSession(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newSessionResponse(session))
}

// FindGiftIdeas handles POST /api/gifts requests
func (h *GiftHandler) FindGiftIdeas(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	var req FindGiftIdeasRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.gifts.FindGiftIdeas(r.Context(), id, req.FormState())
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newSessionResponse(session))
}

// ShowMore handles POST /api/gifts/more requests
func (h *GiftHandler) ShowMore(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	session, err := h.gifts.ShowMore(r.Context(), id)
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newSessionResponse(session))
}

// ResetSession handles DELETE /api/session requests
func (h *GiftHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	session, err := h.gifts.StartOver(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newSessionResponse(session))
}

func (h *GiftHandler) respondGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, generation.ErrGenerationFailed) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, service.FailureMessage, err)
		return
	}
	HandleAPIError(w, r, err, service.FailureMessage)
}
