package web

import (
	"errors"
	"log/slog"
	"net/http"

	"Castcard/internal/core/casts"

	"github.com/go-chi/chi/v5"
)

// descriptionGraphemes bounds the OpenGraph description taken from the cast text
const descriptionGraphemes = 200

// titleGraphemes bounds the cast text excerpt used in the page title
const titleGraphemes = 60

// Handlers provides HTTP handlers for the embed pages.
type Handlers struct {
	templates *Templates
	service   casts.Service
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(templates *Templates, service casts.Service) *Handlers {
	return &Handlers{
		templates: templates,
		service:   service,
	}
}

// IndexPageData holds data for the index page template.
type IndexPageData struct {
	// Title is the page title
	Title string
	// Description is the meta description
	Description string
	// ExampleURL prefills the form
	ExampleURL string
}

// CastPageData holds data for the cast embed template.
type CastPageData struct {
	View        *casts.CastView
	Title       string
	Description string
}

// ErrorPageData holds data for the error card template.
type ErrorPageData struct {
	Title      string
	Message    string
	StatusCode int
}

// IndexHandler handles GET / and renders a form that builds embed URLs.
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := IndexPageData{
		Title:       "Castcard - Embeddable Farcaster casts",
		Description: "Paste a Warpcast link to get an embeddable card for any cast.",
		ExampleURL:  "https://warpcast.com/dwr/0x1a2b3c4d",
	}

	if err := h.templates.Render(w, "index.html", data); err != nil {
		slog.Error("[WEB] failed to render index page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// EmbedHandler renders a cast card from query parameters.
// GET /embed?url={castURL}
// GET /embed?username={username}&hash={hashPrefix}
func (h *Handlers) EmbedHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := casts.NewIdentifier(q.Get("url"), q.Get("username"), q.Get("hash"))
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderCast(w, r, id)
}

// EmbedPathHandler renders a cast card from path parameters, mirroring provider URLs.
// GET /embed/{username}/{hash}
func (h *Handlers) EmbedPathHandler(w http.ResponseWriter, r *http.Request) {
	id, err := casts.NewIdentifier("", chi.URLParam(r, "username"), chi.URLParam(r, "hash"))
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.renderCast(w, r, id)
}

func (h *Handlers) renderCast(w http.ResponseWriter, r *http.Request, id casts.Identifier) {
	view, err := h.service.RenderView(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	data := NewCastPageData(view)

	if err := h.templates.Render(w, "cast.html", data); err != nil {
		slog.Error("failed to render cast template", "hash", view.Hash, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// NewCastPageData builds the page title and OpenGraph description for a view
func NewCastPageData(view *casts.CastView) CastPageData {
	return CastPageData{
		View:        view,
		Title:       castTitle(view),
		Description: Truncate(view.Text, descriptionGraphemes),
	}
}

// renderError maps cast errors onto a status code and an error card
func (h *Handlers) renderError(w http.ResponseWriter, err error) {
	data := ErrorPageData{StatusCode: http.StatusInternalServerError, Title: "Something went wrong", Message: "This cast could not be displayed."}

	var inputErr *casts.InvalidInputError
	switch {
	case errors.As(err, &inputErr):
		data.StatusCode = http.StatusBadRequest
		data.Title = "Invalid cast link"
		data.Message = inputErr.Message
	case errors.Is(err, casts.ErrNotFound):
		data.StatusCode = http.StatusNotFound
		data.Title = "Cast not found"
		data.Message = "This cast may have been deleted."
	case errors.Is(err, casts.ErrFetch):
		data.StatusCode = http.StatusBadGateway
		data.Title = "Cast unavailable"
		data.Message = "Warpcast could not be reached. Try again shortly."
		slog.Warn("[WEB] provider fetch failed", "error", err)
	default:
		slog.Error("[WEB] cast render failed", "error", err)
	}

	if renderErr := h.templates.RenderStatus(w, data.StatusCode, "error.html", data); renderErr != nil {
		slog.Error("failed to render error template", "error", renderErr)
		http.Error(w, data.Title, data.StatusCode)
	}
}

func castTitle(view *casts.CastView) string {
	name := view.Author.DisplayName
	if view.Text == "" {
		return name + " on Warpcast"
	}
	return name + ": " + Truncate(view.Text, titleGraphemes)
}
