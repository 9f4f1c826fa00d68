package apperror

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Kind classifies an application error so callers can react to the
// failure class without string-matching messages.
type Kind string

const (
	KindAuth           Kind = "auth"
	KindValidation     Kind = "validation"
	KindNetwork        Kind = "network"
	KindNetworkTimeout Kind = "network_timeout"
	KindUploadFailed   Kind = "upload_failed"
	KindRender         Kind = "render"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Unauthorized"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewAuthError creates an authentication error with a custom message
func NewAuthError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: message}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewInvalidQuantityError reports a quantity outside the allowed range.
func NewInvalidQuantityError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
		Errors:  []FieldError{{Field: "quantity", Message: message}},
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewUploadFailedError reports a failed hand-off to the file host.
func NewUploadFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Kind: KindUploadFailed, Message: message}
}

// NewRenderError reports a rasterization or PDF packaging failure.
func NewRenderError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Kind: KindRender, Message: message}
}

// FromTransport maps a transport-level failure against the remote backend
// to NetworkTimeout or NetworkError. Deadline expiry is reported
// distinctly so the caller can tell a slow backend from an unreachable one.
func FromTransport(err error) *AppError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &AppError{Code: http.StatusGatewayTimeout, Kind: KindNetworkTimeout, Message: "Backend request timed out"}
	}
	return &AppError{Code: http.StatusBadGateway, Kind: KindNetwork, Message: "Backend request failed"}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
