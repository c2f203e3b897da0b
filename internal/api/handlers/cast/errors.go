package cast

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Castcard/internal/core/casts"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		// Headers already sent
		log.Printf("ERROR: Failed to encode error response: %v", err)
	}
}

// handleServiceError maps cast errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var inputErr *casts.InvalidInputError
	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, "InvalidRequest", inputErr.Message)

	case errors.Is(err, casts.ErrNotFound):
		writeError(w, http.StatusNotFound, "CastNotFound", "Cast not found")

	case errors.Is(err, casts.ErrFetch):
		log.Printf("[CAST-HANDLER] Provider fetch failed: %v", err)
		writeError(w, http.StatusBadGateway, "UpstreamError", "Failed to fetch cast from provider")

	default:
		// Internal server error - don't leak details
		log.Printf("ERROR: Cast service error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
