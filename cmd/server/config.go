package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// serverConfig holds HTTP server settings
type serverConfig struct {
	Port               string
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		Port:               "8080",
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 120,
	}
}

// serverConfigFromEnv reads server settings, falling back to defaults.
//
// Environment variables:
//   - CASTCARD_PORT: listen port (default: "8080")
//   - CASTCARD_RATE_LIMIT_PER_MINUTE: requests per minute per client (default: 120)
//   - CASTCARD_CORS_ALLOWED_ORIGINS: comma separated origins (default: "*")
func serverConfigFromEnv() serverConfig {
	cfg := defaultServerConfig()

	if v := os.Getenv("CASTCARD_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.Port = v
		} else {
			slog.Warn("[SERVER] invalid CASTCARD_PORT value, using default",
				"value", v,
				"default", cfg.Port,
			)
		}
	}

	if v := os.Getenv("CASTCARD_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitPerMinute = n
		} else {
			slog.Warn("[SERVER] invalid CASTCARD_RATE_LIMIT_PER_MINUTE value, using default",
				"value", v,
				"default", cfg.RateLimitPerMinute,
				"error", err,
			)
		}
	}

	if v := os.Getenv("CASTCARD_CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg
}
