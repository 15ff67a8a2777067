package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies pipeline errors. The kind decides how a failure is
// handled: transient provider errors are retryable by re-polling,
// malformed records are skipped, identity lookup failures degrade the
// affected speaker to "unknown", cleanup failures are logged only.
type Kind string

const (
	// KindTransientProvider covers network failures and 5xx responses
	// from a provider; the caller may re-poll.
	KindTransientProvider Kind = "transient_provider"

	// KindTerminalProvider means the provider job itself failed; the
	// provider's message is surfaced and the job is not retried.
	KindTerminalProvider Kind = "terminal_provider"

	// KindMalformedResponse marks a missing or unparsable field. The
	// affected record is defaulted or skipped, never the whole batch.
	KindMalformedResponse Kind = "malformed_response"

	// KindQuotaExceeded rejects a job before any expensive work runs.
	// No partial charge is made.
	KindQuotaExceeded Kind = "quota_exceeded"

	// KindIdentityLookup degrades one speaker to "unknown" without
	// failing the job.
	KindIdentityLookup Kind = "identity_lookup"

	// KindResourceCleanup is logged and otherwise ignored.
	KindResourceCleanup Kind = "resource_cleanup"
)

// Error is the standard pipeline error carrying a kind, a message and an
// optional cause.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates a new error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a new formatted error of the given kind.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context under the given kind.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: message, cause: err}
}

// Wrapf wraps an error with formatted context under the given kind.
func Wrapf(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the error's own message without the cause chain.
func (e *Error) Message() string {
	return e.message
}

// Retryable reports whether re-polling may succeed.
func (e *Error) Retryable() bool {
	return e.kind == KindTransientProvider
}

// IsKind reports whether err (or anything it wraps) is a pipeline error
// of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe.kind == kind
	}
	return false
}

// KindOf extracts the kind from err, or "" when err is not a pipeline
// error.
func KindOf(err error) Kind {
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe.kind
	}
	return ""
}

// MessageOf extracts the pipeline error message from err, falling back
// to err.Error() for foreign errors.
func MessageOf(err error) string {
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe.message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Convenience constructors for the common sites.

// TransientProvider marks a provider call that may be retried.
func TransientProvider(err error, operation string) error {
	return Wrapf(err, KindTransientProvider, "%s failed", operation)
}

// TerminalProvider surfaces a provider-side job failure.
func TerminalProvider(message string) *Error {
	return New(KindTerminalProvider, message)
}

// MalformedResponse marks a response missing an expected field.
func MalformedResponse(field string) *Error {
	return Newf(KindMalformedResponse, "response missing expected field %q", field)
}

// QuotaExceeded rejects a job on quota grounds.
func QuotaExceeded(message string) *Error {
	return New(KindQuotaExceeded, message)
}

// IdentityLookup marks a per-speaker identity resolution failure.
func IdentityLookup(err error, speakerID int) error {
	return Wrapf(err, KindIdentityLookup, "identity lookup for speaker %d failed", speakerID)
}

// ResourceCleanup marks a failed scratch-resource release.
func ResourceCleanup(err error, resource string) error {
	return Wrapf(err, KindResourceCleanup, "failed to clean up %s", resource)
}
