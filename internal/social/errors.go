package social

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken means no bearer token was configured; the fetch is skipped.
	ErrNoToken = errors.New("social: bearer token not set")

	// ErrUserNotFound means the username lookup returned no id.
	ErrUserNotFound = errors.New("social: user not found")
)

// APIError is a non-2xx response from the social API.
type APIError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("social: %s returned %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("social: %s returned %d", e.Endpoint, e.Status)
}

// Unwrap maps a 404 on the user lookup to ErrUserNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == 404 {
		return ErrUserNotFound
	}
	return nil
}
