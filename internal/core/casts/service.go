package casts

import (
	"context"
	"fmt"
	"log"
	"time"
)

// service implements the Service interface
type service struct {
	client   Client
	viewOpts ViewOptions
	timeout  time.Duration
}

// NewService creates a new cast service around the provider client
func NewService(client Client, opts ...ServiceOption) Service {
	if client == nil {
		panic("casts: client cannot be nil")
	}

	defaults := DefaultConfig()
	s := &service{
		client:   client,
		viewOpts: defaults.ViewOptions(),
		timeout:  defaults.FetchTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ServiceOption configures the service
type ServiceOption func(*service)

// WithTimeout bounds the whole resolve, independent of the HTTP client timeout
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		s.timeout = timeout
	}
}

// WithViewOptions sets link bases and the display time zone for RenderView
func WithViewOptions(viewOpts ViewOptions) ServiceOption {
	return func(s *service) {
		s.viewOpts = viewOpts
	}
}

// ParseCastURL splits a cast URL into username and hash prefix
func (s *service) ParseCastURL(rawURL string) (Identifier, error) {
	return ParseCastURL(rawURL)
}

// ResolveCast fetches the thread once and picks the cast to render.
// No caching and no retry: each call is exactly one provider request.
func (s *service) ResolveCast(ctx context.Context, id Identifier) (*Cast, error) {
	if id.Username == "" || id.HashPrefix == "" {
		return nil, NewInvalidInputError("identifier", "username and hash are required")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	thread, err := s.client.ListThreadCasts(ctx, ThreadQuery{
		CastHashPrefix: id.HashPrefix,
		Username:       id.Username,
		Limit:          threadLimit,
	})
	if err != nil {
		log.Printf("[CAST] Failed to fetch thread for %s/%s: %v", id.Username, id.HashPrefix, err)
		if IsFetchError(err) {
			return nil, err
		}
		return nil, newFetchError("list thread casts", 0, err)
	}

	cast, err := selectCast(thread)
	if err != nil {
		log.Printf("[CAST] No cast to render for %s/%s (%d entries)", id.Username, id.HashPrefix, len(thread))
		return nil, fmt.Errorf("%s/%s: %w", id.Username, id.HashPrefix, err)
	}

	if cast.shapeErr != nil {
		log.Printf("[CAST] Selected entry for %s/%s is malformed: %v", id.Username, id.HashPrefix, cast.shapeErr)
		return nil, cast.shapeErr
	}

	log.Printf("[CAST] Resolved %s/%s to %s", id.Username, id.HashPrefix, cast.Hash)
	return cast, nil
}

// RenderView resolves the cast and projects it
func (s *service) RenderView(ctx context.Context, id Identifier) (*CastView, error) {
	cast, err := s.ResolveCast(ctx, id)
	if err != nil {
		return nil, err
	}
	return Project(cast, s.viewOpts), nil
}

// selectCast skips a leading root-embed wrapper and returns the next entry,
// otherwise the first entry.
func selectCast(thread []Cast) (*Cast, error) {
	if len(thread) == 0 {
		return nil, ErrNotFound
	}

	if thread[0].IsRootEmbed() {
		if len(thread) < 2 {
			return nil, ErrNotFound
		}
		selected := thread[1]
		return &selected, nil
	}

	selected := thread[0]
	return &selected, nil
}
