package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Castcard/internal/api/middleware"
	"Castcard/internal/api/routes"
	"Castcard/internal/core/casts"
)

const shutdownTimeout = 10 * time.Second

func main() {
	castConfig := casts.ConfigFromEnv()
	if err := castConfig.Validate(); err != nil {
		log.Fatal("Invalid cast configuration: ", err)
	}

	cfg := serverConfigFromEnv()

	// Provider client and service
	client := casts.NewHTTPClient(castConfig)
	castService := casts.NewService(client,
		casts.WithTimeout(castConfig.FetchTimeout),
		casts.WithViewOptions(castConfig.ViewOptions()),
	)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Every cast route is a provider fetch: limit per IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, 1*time.Minute)

	routes.RegisterCastRoutes(r, castService, rateLimiter, cfg.AllowedOrigins)
	routes.RegisterWebRoutes(r, castService, castConfig.WebBaseURL, rateLimiter, cfg.AllowedOrigins)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      castConfig.FetchTimeout + 10*time.Second,
	}

	go func() {
		fmt.Printf("Castcard starting on port %s\n", cfg.Port)
		fmt.Printf("Provider API: %s\n", castConfig.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Failed to shutdown server: ", err)
	}

	log.Println("Server stopped")
}
