package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

func TestAuthenticateSuccess(t *testing.T) {
	var gotBody loginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(validResponse))
	}))
	defer srv.Close()

	a := NewAuthenticator(AuthenticatorConfig{LoginURL: srv.URL})
	payload, err := a.Authenticate(context.Background(), &domain.Token{Principal: "jose", Credentials: "secret"})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("Authenticate() returned empty payload")
	}
	if gotBody.Token.Principal != "jose" || gotBody.Token.Credentials != "secret" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestAuthenticateUnusableToken(t *testing.T) {
	a := NewAuthenticator(AuthenticatorConfig{LoginURL: "https://example.com/login"})

	for _, tok := range []*domain.Token{
		{},
		{Principal: "jose"},
		{Credentials: "secret"},
	} {
		if _, err := a.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Authenticate(%+v) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestAuthenticateNoEndpoint(t *testing.T) {
	a := NewAuthenticator(AuthenticatorConfig{})
	_, err := a.Authenticate(context.Background(), &domain.Token{Principal: "p", Credentials: "c"})
	if !errors.Is(err, domain.ErrNoLoginEndpoint) {
		t.Errorf("Authenticate() error = %v, want ErrNoLoginEndpoint", err)
	}
}

func TestAuthenticateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validResponse))
	}))
	defer srv.Close()

	a := NewAuthenticator(AuthenticatorConfig{LoginURL: srv.URL, RateLimit: 0.001, RateBurst: 1})
	tok := &domain.Token{Principal: "p", Credentials: "c"}

	if _, err := a.Authenticate(context.Background(), tok); err != nil {
		t.Fatalf("first attempt error = %v", err)
	}
	if _, err := a.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("second attempt error = %v, want ErrRateLimited", err)
	}
}

func TestAuthenticateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad credentials"}`))
	}))
	defer srv.Close()

	a := NewAuthenticator(AuthenticatorConfig{LoginURL: srv.URL})
	_, err := a.Authenticate(context.Background(), &domain.Token{Principal: "p", Credentials: "wrong"})

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Authenticate() error = %v, want *TransportError", err)
	}
	if te.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", te.StatusCode)
	}
	if string(te.Payload) != `{"error": "bad credentials"}` {
		t.Errorf("Payload = %q", te.Payload)
	}
	if !errors.Is(err, domain.ErrTransport) {
		t.Error("TransportError should match domain.ErrTransport")
	}
}

func TestAuthenticateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	a := NewAuthenticator(AuthenticatorConfig{LoginURL: srv.URL})
	_, err := a.Authenticate(context.Background(), &domain.Token{Principal: "p", Credentials: "c"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("Authenticate() error = %v, want ErrTransport", err)
	}
}
