// Package domain defines the core domain models for RouteGuard.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "RG-AUTH-4220")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Token Errors (TOKN)
// Validation failures detected before any network call is attempted.
// ============================================================================

var (
	// ErrTokenInvalid indicates the submitted token is missing a principal
	// or credentials.
	ErrTokenInvalid = NewDomainError("RG-TOKN-4000", "invalid authentication token")

	// ErrTokenDecode indicates a token payload could not be decoded.
	ErrTokenDecode = NewDomainError("RG-TOKN-4001", "malformed token payload")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrMalformedResponse indicates the backend authentication response
	// is missing required fields.
	ErrMalformedResponse = NewDomainError("RG-AUTH-4220", "malformed authentication response")

	// ErrAuthenticationFailed indicates the backend rejected the credentials.
	ErrAuthenticationFailed = NewDomainError("RG-AUTH-4010", "authentication failed")
)

// ============================================================================
// Session Errors (SESS)
// ============================================================================

var (
	// ErrSessionNotFound indicates no session is currently held.
	ErrSessionNotFound = NewDomainError("RG-SESS-4040", "no active session")

	// ErrNoRememberedSession indicates no remember-me state is available.
	ErrNoRememberedSession = NewDomainError("RG-SESS-4041", "no remembered session available")

	// ErrStaleAuthentication indicates an in-flight authentication resolved
	// after the session it belonged to was discarded.
	ErrStaleAuthentication = NewDomainError("RG-SESS-4090", "stale authentication result discarded")
)

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrConfigInvalid indicates the configuration failed verification.
	ErrConfigInvalid = NewDomainError("RG-CONF-4000", "invalid configuration")

	// ErrNoLoginEndpoint indicates no login endpoint URL is configured.
	ErrNoLoginEndpoint = NewDomainError("RG-CONF-4001", "login endpoint not configured")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("RG-SYS-5000", "internal error")

	// ErrStorage indicates a persisted-state storage error.
	ErrStorage = NewDomainError("RG-SYS-5001", "storage error")

	// ErrTransport indicates a network or HTTP-level authentication failure.
	ErrTransport = NewDomainError("RG-SYS-5020", "authentication transport failure")

	// ErrRateLimited indicates too many local login attempts.
	ErrRateLimited = NewDomainError("RG-SYS-4290", "too many login attempts")
)
