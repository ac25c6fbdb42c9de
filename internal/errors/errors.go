package errors

import (
	"errors"
	"fmt"
	"net/http"

	"bigbrother/internal/model"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect,
	// or when the account is disabled. The branches are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUsernameExists is returned when registering a username that is taken.
	ErrUsernameExists = errors.New("Username already exists")
	// ErrEmailExists is returned when registering an email that is taken.
	ErrEmailExists = errors.New("Email already exists")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrCameraNotFound is returned when a camera lookup misses.
	ErrCameraNotFound = errors.New("camera not found")
	// ErrCameraNameRequired is returned when a camera is created without a name.
	ErrCameraNameRequired = errors.New("Camera name is required")
)

// DuplicateCameraError is returned when a camera name collides with an
// existing record; it carries the record so the response can describe it.
type DuplicateCameraError struct {
	Existing *model.Camera
}

func (e *DuplicateCameraError) Error() string {
	return fmt.Sprintf("Camera name '%s' already exists (id: %d, device: %s, resolution: %s, fps: %s)",
		e.Existing.Name, e.Existing.ID, e.Existing.Device, e.Existing.Resolution, e.Existing.FPS)
}

// ErrorResponse is the JSON envelope for error responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HTTPError pairs an HTTP status with a response envelope.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to its response envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Error:   e.Detail,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// into a 500 without leaking internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	var dup *DuplicateCameraError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "Invalid credentials")
	case errors.Is(err, ErrUsernameExists), errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "Duplicate user")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrCameraNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "Resource not found")
	case errors.Is(err, ErrCameraNameRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "Invalid camera name")
	case errors.As(err, &dup):
		return NewHTTPError(http.StatusConflict, err.Error(), "Duplicate camera name")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "Internal error")
	}
}
