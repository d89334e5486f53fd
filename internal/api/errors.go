package api

import (
	"fmt"
	"strings"
)

// RequestError is returned for any failure talking to a pipeline: transport
// errors, non-2xx statuses, malformed responses, or an empty result set. The
// message is safe to surface to the user verbatim.
type RequestError struct {
	Op         string // "search", "analyze", "health", "locate"
	Message    string
	StatusCode int
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UserMessage returns the remote-supplied message without the operation prefix.
func (e *RequestError) UserMessage() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return "Something went wrong"
	}
	return msg
}

func newRequestError(op, message string, status int) *RequestError {
	return &RequestError{Op: op, Message: message, StatusCode: status}
}
