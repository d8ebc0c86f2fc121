package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure for display purposes: validation
// rejections carry a server-authored message shown verbatim, not-found gets a
// dedicated view, everything else is a generic transport/server failure.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindValidation
	KindNotFound
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API returned %d", e.StatusCode)
}

func classifyResponse(status int, message string) *APIError {
	switch {
	case status == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: status, Message: message}
	case status >= 400 && status < 500 && message != "":
		return &APIError{Kind: KindValidation, StatusCode: status, Message: message}
	default:
		return &APIError{Kind: KindServer, StatusCode: status, Message: message}
	}
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// ValidationMessage extracts the server-authored rejection message, if the
// error is a validation failure. The empty string means the caller should
// fall back to its generic per-action message.
func ValidationMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindValidation {
		return apiErr.Message
	}
	return ""
}
