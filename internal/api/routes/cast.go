package routes

import (
	"net/http"

	"Castcard/internal/api/handlers/cast"
	"Castcard/internal/api/middleware"
	"Castcard/internal/core/casts"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterCastRoutes registers the JSON cast endpoint
func RegisterCastRoutes(r chi.Router, service casts.Service, limiter *middleware.RateLimiter, allowedOrigins []string) {
	getCastHandler := cast.NewGetCastHandler(service)

	// GET /api/v1/cast
	// Public, read-only; every request is one provider fetch so it is rate limited per client
	r.With(publicCORS(allowedOrigins), limiter.Middleware).Get("/api/v1/cast", getCastHandler.HandleGetCast)
}

// publicCORS creates a CORS middleware for the public read-only endpoints
func publicCORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
}
