package casts

import (
	"errors"
	"fmt"
)

// Sentinel errors for cast resolution
var (
	// ErrInvalidInput is returned when neither a usable cast URL nor a complete
	// (username, hash prefix) pair was supplied
	ErrInvalidInput = errors.New("invalid cast identifier")

	// ErrFetch is returned when the provider request fails or its response
	// does not have the expected shape
	ErrFetch = errors.New("failed to fetch cast")

	// ErrNotFound is returned when the provider thread holds no cast to render
	ErrNotFound = errors.New("cast not found")
)

// InvalidInputError represents a rejected identifier with field context
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input (%s): %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field, message string) error {
	return &InvalidInputError{
		Field:   field,
		Message: message,
	}
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}

// FetchError wraps a transport, status or decoding failure from the provider.
// StatusCode is zero when no HTTP response was received.
type FetchError struct {
	Err        error
	Op         string
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrFetch, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetch, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetch) match any FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func newFetchError(op string, statusCode int, err error) error {
	return &FetchError{
		Op:         op,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsFetchError checks if error is a provider fetch failure
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
