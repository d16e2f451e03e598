package service

import (
	"errors"
	"testing"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

const validResponse = `{
	"info": {
		"authc": {"principal": "jose", "credentials": "secret"},
		"authz": {"roles": ["GUEST"], "permissions": ["newsletter$read"]}
	}
}`

func TestParseAuthenticationResponse(t *testing.T) {
	authc, authz, err := ParseAuthenticationResponse([]byte(validResponse))
	if err != nil {
		t.Fatalf("ParseAuthenticationResponse() error = %v", err)
	}

	if authc.Principal() != "jose" {
		t.Errorf("Principal() = %q, want jose", authc.Principal())
	}
	if authc.Credentials() != "secret" {
		t.Errorf("Credentials() = %q, want secret", authc.Credentials())
	}
	if !authz.HasRole("GUEST") {
		t.Error("HasRole(GUEST) = false, want true")
	}
	if got := authz.Permissions(); len(got) != 1 || got[0] != "newsletter$read" {
		t.Errorf("Permissions() = %v", got)
	}
}

func TestParseAuthenticationResponseEmptyLists(t *testing.T) {
	payload := `{"info": {"authc": {"principal": "p", "credentials": "c"},
		"authz": {"roles": [], "permissions": []}}}`

	_, authz, err := ParseAuthenticationResponse([]byte(payload))
	if err != nil {
		t.Fatalf("empty lists should be valid, got %v", err)
	}
	if authz.HasRole("GUEST") {
		t.Error("HasRole(GUEST) = true on empty roles")
	}
}

func TestParseAuthenticationResponseRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `not json at all`},
		{"empty object", `{}`},
		{"missing info", `{"other": {}}`},
		{"null info", `{"info": null}`},
		{"missing authc", `{"info": {"authz": {"roles": [], "permissions": []}}}`},
		{"missing principal", `{"info": {"authc": {"credentials": "c"}, "authz": {"roles": [], "permissions": []}}}`},
		{"null principal", `{"info": {"authc": {"principal": null, "credentials": "c"}, "authz": {"roles": [], "permissions": []}}}`},
		{"missing credentials", `{"info": {"authc": {"principal": "p"}, "authz": {"roles": [], "permissions": []}}}`},
		{"missing authz", `{"info": {"authc": {"principal": "p", "credentials": "c"}}}`},
		{"missing roles", `{"info": {"authc": {"principal": "p", "credentials": "c"}, "authz": {"permissions": []}}}`},
		{"null roles", `{"info": {"authc": {"principal": "p", "credentials": "c"}, "authz": {"roles": null, "permissions": []}}}`},
		{"missing permissions", `{"info": {"authc": {"principal": "p", "credentials": "c"}, "authz": {"roles": []}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAuthenticationResponse([]byte(tt.payload))
			if !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("ParseAuthenticationResponse() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestParseAuthenticationResponseIgnoresExtraFields(t *testing.T) {
	payload := `{"info": {"authc": {"principal": "p", "credentials": "c", "extra": 1},
		"authz": {"roles": ["A"], "permissions": [], "extra": true}}, "meta": "x"}`

	authc, _, err := ParseAuthenticationResponse([]byte(payload))
	if err != nil {
		t.Fatalf("extra fields should be ignored, got %v", err)
	}
	if authc.Principal() != "p" {
		t.Errorf("Principal() = %q", authc.Principal())
	}
}
