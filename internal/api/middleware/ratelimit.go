package middleware

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds how many per-client limiters are kept in memory.
// The least recently seen client is evicted first.
const maxTrackedClients = 10000

// RateLimiter implements a per-client token bucket rate limiter
// For multiple instances, consider a shared store such as Redis
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	window   time.Duration
	mu       sync.Mutex
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window (also the burst size)
// window: time window duration (e.g., 1 minute)
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return newRateLimiter(requests, window, maxTrackedClients)
}

func newRateLimiter(requests int, window time.Duration, maxClients int) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		// Only fails for a non-positive size
		log.Printf("[RATELIMIT] invalid client capacity %d, using 1: %v", maxClients, err)
		cache, _ = lru.New[string, *rate.Limiter](1)
	}

	return &RateLimiter{
		limiters: cache,
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		window:   window,
	}
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Use IP address as client identifier
		clientID := getClientIP(r)

		if !rl.allow(clientID) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.retryAfter().Seconds())))
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow checks if a client is allowed to make a request
func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters.Add(clientID, limiter)
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// retryAfter is the time until one more token is available, rounded up to a second
func (rl *RateLimiter) retryAfter() time.Duration {
	interval := rl.window / time.Duration(rl.burst)
	if interval < time.Second {
		return time.Second
	}
	return interval.Round(time.Second)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy). Only the right-most entry
	// was appended by our proxy; anything to its left is client supplied.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.LastIndex(forwarded, ","); i >= 0 {
			forwarded = forwarded[i+1:]
		}
		if last := strings.TrimSpace(forwarded); last != "" {
			return last
		}
	}

	// Check X-Real-IP header
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr without the port
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
