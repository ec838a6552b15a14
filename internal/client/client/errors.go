package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx answer of the storefront API. Message is meant to be
// shown to the user as is; Err, when set, is the matching sentinel.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}
