package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrDocumentNotFound is returned when a document lookup matches no row.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrBookmarkNotFound is returned when a bookmark lookup matches no row.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrDownloadNotFound is returned when a download record lookup matches no row.
	ErrDownloadNotFound = errors.New("download not found")
	// ErrNotificationNotFound is returned when a notification lookup matches no row.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrSubjectNotFound is returned when a subject lookup matches no row.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrUnauthorized is returned when no valid session is present.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the subject does not own the resource.
	ErrForbidden = errors.New("unauthorized to modify this resource")
	// ErrInvalidInput is returned when input fails shape validation.
	ErrInvalidInput = errors.New("invalid input data")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MapErrorToStatus maps domain errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrBookmarkNotFound),
		errors.Is(err, ErrDownloadNotFound),
		errors.Is(err, ErrNotificationNotFound),
		errors.Is(err, ErrSubjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
