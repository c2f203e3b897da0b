package casts

import "context"

// Service defines the interface for turning a cast reference into something renderable.
// It orchestrates identifier parsing, the provider fetch and view model projection.
type Service interface {
	// ResolveCast fetches the thread for id and selects the cast the caller asked for,
	// skipping a leading root-embed wrapper.
	// Returns ErrNotFound when the thread is empty or holds only the wrapper,
	// and a *FetchError when the provider request fails.
	ResolveCast(ctx context.Context, id Identifier) (*Cast, error)

	// RenderView resolves the cast and projects it into a CastView
	RenderView(ctx context.Context, id Identifier) (*CastView, error)

	// ParseCastURL splits a cast URL into username and hash prefix.
	// Example: https://warpcast.com/dwr/0x1a2b3c -> {dwr, 0x1a2b3c}
	ParseCastURL(rawURL string) (Identifier, error)
}

// Client defines the provider API used to list casts in a thread.
// The HTTP implementation lives in fetcher.go; tests substitute their own.
type Client interface {
	// ListThreadCasts returns up to q.Limit casts matching the hash prefix and username,
	// in provider order. Failures are returned as *FetchError.
	ListThreadCasts(ctx context.Context, q ThreadQuery) ([]Cast, error)
}
