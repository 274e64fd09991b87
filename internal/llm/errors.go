package llm

import (
	"errors"
	"fmt"
)

// Class buckets provider failures by how the caller should react. Only
// ClassTransient failures are worth retrying; the rest indicate a request
// or configuration problem that a retry cannot fix.
type Class int

const (
	// ClassTransient covers rate limits, 5xx responses, and transport
	// failures.
	ClassTransient Class = iota

	// ClassInvalidCredential means the API key was rejected (401).
	ClassInvalidCredential

	// ClassPermissionDenied means the key is valid but not allowed (403).
	ClassPermissionDenied

	// ClassModelNotFound means the requested model does not exist (404).
	ClassModelNotFound

	// ClassMalformedRequest means the provider rejected the request
	// shape (400, 422).
	ClassMalformedRequest
)

// String returns a stable label for logs.
func (c Class) String() string {
	switch c {
	case ClassInvalidCredential:
		return "invalid_credential"
	case ClassPermissionDenied:
		return "permission_denied"
	case ClassModelNotFound:
		return "model_not_found"
	case ClassMalformedRequest:
		return "malformed_request"
	default:
		return "transient"
	}
}

// Error wraps a provider API failure with its classification.
type Error struct {
	// Provider is the provider id ("anthropic", "gemini").
	Provider string

	// Class buckets the failure for retry decisions.
	Class Class

	// Status is the HTTP status code, or zero for transport failures.
	Status int

	cause error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Class, e.Status, e.cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Class, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// classFromStatus maps an HTTP status to a failure class. Statuses not
// listed, including 429 and all 5xx, are treated as transient.
func classFromStatus(status int) Class {
	switch status {
	case 401:
		return ClassInvalidCredential
	case 403:
		return ClassPermissionDenied
	case 404:
		return ClassModelNotFound
	case 400, 422:
		return ClassMalformedRequest
	default:
		return ClassTransient
	}
}

// IsNonRetryable reports whether err is a classified provider error that a
// retry cannot fix. Unclassified errors (timeouts, connection resets) are
// considered retryable.
func IsNonRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Class != ClassTransient
	}
	return false
}
