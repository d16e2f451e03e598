// Package service provides the session-management services for RouteGuard:
// response parsing, the authentication client, the authorization decision
// engine, and the Subject state machine.
package service

import (
	"encoding/json"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

// authResponse mirrors the backend authentication response contract:
//
//	{ info: { authc: { principal, credentials },
//	          authz: { roles: [...], permissions: [...] } } }
//
// Pointer fields distinguish absent/null from present-but-zero, so the
// validator rejects any response missing a required field regardless of
// extra fields present.
type authResponse struct {
	Info *struct {
		Authc *struct {
			Principal   *string `json:"principal"`
			Credentials *string `json:"credentials"`
		} `json:"authc"`
		Authz *struct {
			Roles       *[]string `json:"roles"`
			Permissions *[]string `json:"permissions"`
		} `json:"authz"`
	} `json:"info"`
}

// ParseAuthenticationResponse validates and decodes a backend
// authentication payload into its identity and authorization parts.
//
// It is a pure function: deterministic, no side effects, and it returns
// ErrMalformedResponse with no partial result on any shape violation.
func ParseAuthenticationResponse(payload []byte) (domain.AuthenticationInfo, domain.AuthorizationInfo, error) {
	var resp authResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return domain.AuthenticationInfo{}, domain.AuthorizationInfo{},
			domain.ErrMalformedResponse.WithCause(err)
	}

	switch {
	case resp.Info == nil,
		resp.Info.Authc == nil,
		resp.Info.Authc.Principal == nil,
		resp.Info.Authc.Credentials == nil,
		resp.Info.Authz == nil,
		resp.Info.Authz.Roles == nil,
		resp.Info.Authz.Permissions == nil:
		return domain.AuthenticationInfo{}, domain.AuthorizationInfo{}, domain.ErrMalformedResponse
	}

	authc := domain.NewAuthenticationInfo(*resp.Info.Authc.Principal, *resp.Info.Authc.Credentials)
	authz := domain.NewAuthorizationInfo(*resp.Info.Authz.Roles, *resp.Info.Authz.Permissions)
	return authc, authz, nil
}
