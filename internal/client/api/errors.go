package api

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can match with errors.Is.
var (
	// ErrUnauthenticated marks a request that could not be authorized:
	// the backend answered 401 and the session could not be refreshed
	// (or had already been refreshed for this request).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a 403: the session is valid but lacks rights.
	ErrForbidden = errors.New("forbidden")

	// ErrServer marks any 5xx response.
	ErrServer = errors.New("server error")
)

// APIError is a 4xx response not covered by a sentinel, carrying the
// backend's message when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}
