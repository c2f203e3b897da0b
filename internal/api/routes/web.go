package routes

import (
	"Castcard/internal/api/middleware"
	"Castcard/internal/core/casts"
	"Castcard/internal/web"

	"github.com/go-chi/chi/v5"
)

// RegisterWebRoutes registers the embed pages.
// webBaseURL is the provider origin that mentions and channels in cast text link to.
func RegisterWebRoutes(r chi.Router, service casts.Service, webBaseURL string, limiter *middleware.RateLimiter, allowedOrigins []string) {
	// Initialize templates
	templates, err := web.NewTemplates(webBaseURL)
	if err != nil {
		panic("failed to load web templates: " + err.Error())
	}

	// Create handlers
	handlers := web.NewHandlers(templates, service)

	// Index page with the embed form
	r.Get("/", handlers.IndexHandler)

	// Embed pages
	r.Group(func(r chi.Router) {
		r.Use(publicCORS(allowedOrigins), limiter.Middleware)
		r.Get("/embed", handlers.EmbedHandler)
		r.Get("/embed/{username}/{hash}", handlers.EmbedPathHandler)
	})
}
