package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the backend rejected the bearer token.
	// The session store is cleared before this is returned.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotLoggedIn indicates an authenticated call was attempted with
	// no stored session token.
	ErrNotLoggedIn = errors.New("not logged in")
)

// RequestError reports a failed request: either the transport failed
// (Status == 0) or the backend answered with a non-2xx status.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is a transport or non-2xx failure,
// as opposed to an auth failure.
func IsNetworkError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
