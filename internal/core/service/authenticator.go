package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

// DefaultAuthTimeout is the default per-request timeout.
const DefaultAuthTimeout = 30 * time.Second

// TransportError carries the raw backend payload of a failed
// authentication round trip. errors.Is matches it to domain.ErrTransport.
type TransportError struct {
	StatusCode int
	Payload    []byte
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("[RG-SYS-5020] authentication request failed with status %d", e.StatusCode)
}

// Unwrap ties the error to the domain transport kind.
func (e *TransportError) Unwrap() error {
	return domain.ErrTransport
}

// AuthenticatorConfig holds configuration for the Authenticator.
type AuthenticatorConfig struct {
	// LoginURL is the login endpoint. Authenticate fails with
	// ErrNoLoginEndpoint when empty.
	LoginURL string

	// Timeout is the per-request timeout. Zero uses DefaultAuthTimeout.
	Timeout time.Duration

	// RateLimit and RateBurst configure a local attempt limiter.
	// RateLimit zero disables limiting.
	RateLimit float64
	RateBurst int

	// Client overrides the HTTP client (tests). Nil builds one from
	// Timeout.
	Client *http.Client
}

// Authenticator issues authentication requests to the configured login
// endpoint. It performs no retries and no response parsing; callers
// compose it with ParseAuthenticationResponse.
type Authenticator struct {
	loginURL string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(cfg AuthenticatorConfig) *Authenticator {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultAuthTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Authenticator{
		loginURL: cfg.LoginURL,
		client:   client,
		limiter:  limiter,
	}
}

// loginRequest is the login request contract:
//
//	POST { token: { principal, credentials } }
type loginRequest struct {
	Token struct {
		Principal   string `json:"principal"`
		Credentials string `json:"credentials"`
	} `json:"token"`
}

// Authenticate submits the token's principal and credentials to the login
// endpoint and returns the raw backend payload.
//
// Validation failures (unusable token, missing endpoint, local rate
// limit) fail before any network call. An HTTP error status yields a
// *TransportError carrying the raw payload; network failures yield
// ErrTransport with the cause attached.
func (a *Authenticator) Authenticate(ctx context.Context, token *domain.Token) ([]byte, error) {
	if !token.IsUsable() {
		return nil, domain.ErrTokenInvalid.WithDetails("principal and credentials are required")
	}
	if a.loginURL == "" {
		return nil, domain.ErrNoLoginEndpoint
	}
	if a.limiter != nil && !a.limiter.Allow() {
		return nil, domain.ErrRateLimited
	}

	var reqBody loginRequest
	reqBody.Token.Principal = token.Principal
	reqBody.Token.Credentials = token.Credentials

	data, err := json.Marshal(&reqBody)
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL, bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrTransport.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, domain.ErrTransport.WithCause(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrTransport.WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Payload:    payload,
		}
	}
	return payload, nil
}

// LoginURL returns the configured login endpoint.
func (a *Authenticator) LoginURL() string {
	return a.loginURL
}
