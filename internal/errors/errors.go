package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id no longer resolves to a row.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized is returned when an action requires an authenticated user.
	ErrUnauthorized = errors.New("unauthorized access")
)

// HTTPError represents an error with an HTTP status code attached.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors for rendered pages.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Something went wrong")
	}
}
