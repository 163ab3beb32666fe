package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/phrazzld/present-ai/internal/api/shared"
	"github.com/phrazzld/present-ai/internal/api/view"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/platform/logger"
	"github.com/phrazzld/present-ai/internal/service"
)

//go:embed templates/page.html
var templateFS embed.FS

// pageData is what templates/page.html renders.
type pageData struct {
	Phase        string
	Loading      bool
	Error        string
	RequestCount int
	Form         FindGiftIdeasRequest
	Ideas        []domain.GiftIdea

	GenderOptions       []string
	RelationshipOptions []string
	PersonalityOptions  []string
	OccasionOptions     []string
	CurrencyOptions     []string
}

func newPageData(s domain.Session) pageData {
	return pageData{
		Phase:               string(s.View()),
		Loading:             s.Loading(),
		Error:               s.Error,
		RequestCount:        s.RequestCount,
		Form:                formResponse(s.Form),
		Ideas:               s.Ideas,
		GenderOptions:       domain.GenderOptions,
		RelationshipOptions: domain.RelationshipOptions,
		PersonalityOptions:  domain.PersonalityOptions,
		OccasionOptions:     domain.OccasionOptions,
		CurrencyOptions:     domain.CurrencyOptions,
	}
}

// PageHandler serves the server-rendered gift idea page. Every form post
// applies one action and redirects back to the page.
type PageHandler struct {
	gifts service.GiftService
	tmpl  *template.Template
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(gifts service.GiftService) *PageHandler {
	tmpl := template.Must(template.New("page.html").Funcs(view.Funcs()).ParseFS(templateFS, "templates/page.html"))
	return &PageHandler{
		gifts: gifts,
		tmpl:  tmpl,
	}
}

// Show handles GET / requests
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	session, err := h.gifts.GetSession(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Render into a buffer so a template error never yields half a page
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, newPageData(session)); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error("failed to write page", "error", err)
	}
}

// FindGiftIdeas handles POST /gifts requests
func (h *PageHandler) FindGiftIdeas(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.respondBadRequest(w, r, "Invalid form submission", err)
		return
	}

	req := requestFromForm(r.PostForm)
	if err := shared.ValidateRequest(&req); err != nil {
		h.respondBadRequest(w, r, SanitizeValidationError(err), err)
		return
	}

	_, err := h.gifts.FindGiftIdeas(r.Context(), id, req.FormState())
	h.redirectHome(w, r, err)
}

// ShowMore handles POST /gifts/more requests
func (h *PageHandler) ShowMore(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	_, err := h.gifts.ShowMore(r.Context(), id)
	h.redirectHome(w, r, err)
}

// StartOver handles POST /reset requests
func (h *PageHandler) StartOver(w http.ResponseWriter, r *http.Request) {
	id, ok := getSessionIDFromContext(w, r)
	if !ok {
		return
	}

	_, err := h.gifts.StartOver(r.Context(), id)
	h.redirectHome(w, r, err)
}

// redirectHome sends the browser back to the page. Errors the page itself
// explains (failed generation, a request already running, a reset while
// loading) still redirect.
func (h *PageHandler) redirectHome(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !pageVisible(err) {
		h.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func pageVisible(err error) bool {
	return errors.Is(err, generation.ErrGenerationFailed) ||
		errors.Is(err, domain.ErrRequestInFlight) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrStaleRequest)
}

func (h *PageHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	logger.FromContext(r.Context()).Error("page request failed",
		"status_code", status,
		"trace_id", shared.GetTraceID(r.Context()),
		"error", err)
	http.Error(w, GetSafeErrorMessage(err), status)
}

func (h *PageHandler) respondBadRequest(w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.FromContext(r.Context()).Debug("rejected form submission", "error", err)
	http.Error(w, message, http.StatusBadRequest)
}
