package domain

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidLimit      = errors.New("limit must not be negative")
	ErrRateLimitExceeded = errors.New("API call limit exceeded")
)

// UpstreamError reports a bad status or an unusable body from the price source.
// StatusCode is zero when no HTTP status applies (transport or payload errors).
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return "upstream: status " + http.StatusText(e.StatusCode) + ": " + e.Message
	}
	return "upstream: " + e.Message
}

// HTTPStatus is the status surfaced to API callers.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// PersistenceError reports a quote store read or write failure.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return "persistence: " + e.Message + ": " + e.Err.Error()
	}
	return "persistence: " + e.Message
}

func (e *PersistenceError) Unwrap() error { return e.Err }
