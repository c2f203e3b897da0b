package cast

import (
	"encoding/json"
	"log"
	"net/http"

	"Castcard/internal/core/casts"
)

// GetCastHandler serves the cast view model as JSON
type GetCastHandler struct {
	service casts.Service
}

// NewGetCastHandler creates a new cast handler
func NewGetCastHandler(service casts.Service) *GetCastHandler {
	return &GetCastHandler{service: service}
}

// HandleGetCast resolves a cast and returns its view model
// GET /api/v1/cast?url={castURL}
// GET /api/v1/cast?username={username}&hash={hashPrefix}
func (h *GetCastHandler) HandleGetCast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	id, err := casts.NewIdentifier(q.Get("url"), q.Get("username"), q.Get("hash"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	view, err := h.service.RenderView(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("ERROR: Failed to encode cast response: %v", err)
	}
}
