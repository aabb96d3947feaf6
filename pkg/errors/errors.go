package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the client. Each remote failure is mapped onto exactly
// one of these sentinels so the orchestrator can decide between redirecting,
// showing a message, or rejecting before any request is sent.

var (
	// ErrUnauthenticated indicates no session token is present
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnauthorized indicates the remote service rejected the session token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the remote service (or a pre-flight check)
	// rejected the payload
	ErrValidation = errors.New("validation failed")

	// ErrNetwork indicates a transport-level failure
	ErrNetwork = errors.New("network error")

	// ErrPayloadTooLarge indicates an upload exceeding the size cap,
	// rejected client-side before any request is issued
	ErrPayloadTooLarge = errors.New("payload too large")
)

// UnauthorizedError wraps ErrUnauthorized with the operation that triggered it
func UnauthorizedError(operation string) error {
	return fmt.Errorf("%s: %w", operation, ErrUnauthorized)
}

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ValidationError creates a validation error with a reason
func ValidationError(reason string) error {
	if reason == "" {
		return ErrValidation
	}
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}

// NetworkError wraps a transport failure
func NetworkError(operation string, cause error) error {
	return fmt.Errorf("%s: %v: %w", operation, cause, ErrNetwork)
}

// PayloadTooLargeError reports an upload exceeding the cap
func PayloadTooLargeError(size, limit int64) error {
	return fmt.Errorf("file is %d bytes, limit is %d: %w", size, limit, ErrPayloadTooLarge)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
