package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("RG-TEST-0001", "something broke")
	if got := err.Error(); got != "[RG-TEST-0001] something broke" {
		t.Errorf("Error() = %q", got)
	}

	withDetails := err.WithDetails("the widget")
	if !strings.Contains(withDetails.Error(), "the widget") {
		t.Errorf("Error() = %q, want details included", withDetails.Error())
	}
}

func TestDomainErrorIs(t *testing.T) {
	wrapped := ErrMalformedResponse.WithDetails("missing info.authc")
	if !errors.Is(wrapped, ErrMalformedResponse) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(wrapped, ErrTransport) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrTransport.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	before := ErrTokenInvalid.Error()
	_ = ErrTokenInvalid.WithDetails("mutation check")
	if ErrTokenInvalid.Error() != before {
		t.Error("WithDetails must not mutate the shared error variable")
	}
}

func TestIsDomainErrorAndCode(t *testing.T) {
	err := fmt.Errorf("wrapping: %w", ErrNoLoginEndpoint)

	if !IsDomainError(err, "RG-CONF-4001") {
		t.Error("IsDomainError should match wrapped code")
	}
	if !IsDomainError(err, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if GetErrorCode(err) != "RG-CONF-4001" {
		t.Errorf("GetErrorCode = %q", GetErrorCode(err))
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("IsDomainError should reject non-domain errors")
	}
}
