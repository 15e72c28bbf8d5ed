package idoit

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned by Login when no username or password is configured.
	ErrMissingCredentials = errors.New("idoit: username and password are required")
	// ErrAlreadyLoggedIn is returned when a session is already active.
	ErrAlreadyLoggedIn = errors.New("idoit: already logged in, call Logout first")

	errNoSessionID = errors.New("idoit: login response carries no session-id")
)

// RequestError reports a failed call: either a JSON-RPC error envelope
// returned by i-doit or an HTTP response that could not be treated as one.
// For envelope errors Code, Message and Data are set; otherwise Body holds
// the raw response.
type RequestError struct {
	StatusCode int
	Code       int
	Message    string
	Data       any
	Body       string
}

func (e *RequestError) Error() string {
	if e.Message != "" || e.Code != 0 {
		return fmt.Sprintf("idoit: rpc error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("idoit: unexpected response (HTTP %d): %s", e.StatusCode, e.Body)
}

// IsRemote reports whether the error came from a JSON-RPC error envelope.
func (e *RequestError) IsRemote() bool {
	return e.Message != "" || e.Code != 0
}
