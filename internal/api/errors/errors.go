package errors

import (
	"fmt"
	"net/http"

	apperrors "meetscribe/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindQuotaExceeded      ErrorKind = "quota_exceeded"
	KindUpstreamProvider   ErrorKind = "upstream_provider"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindUpstreamProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromAppError translates a pipeline error into its API shape. Unknown
// errors become internal, with the original message withheld from the
// client.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindQuotaExceeded:
		return &APIError{Kind: KindQuotaExceeded, Message: apperrors.MessageOf(err)}
	case apperrors.KindTransientProvider:
		return &APIError{
			Kind:    KindUpstreamProvider,
			Message: "transcription provider is temporarily unavailable",
			Details: map[string]string{"retryable": "true"},
		}
	case apperrors.KindTerminalProvider, apperrors.KindMalformedResponse:
		return &APIError{Kind: KindUpstreamProvider, Message: apperrors.MessageOf(err)}
	default:
		return &APIError{Kind: KindInternal, Message: "Internal server error"}
	}
}
