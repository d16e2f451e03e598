package domain

import (
	"fmt"
	"sort"
)

// AuthenticationInfo represents a subject's verified account identity,
// produced by a successful authentication exchange. It is immutable after
// construction.
type AuthenticationInfo struct {
	principal   string
	credentials string
}

// NewAuthenticationInfo creates an AuthenticationInfo for the given
// principal and credentials.
func NewAuthenticationInfo(principal, credentials string) AuthenticationInfo {
	return AuthenticationInfo{
		principal:   principal,
		credentials: credentials,
	}
}

// Principal returns the identifying attribute (e.g., username).
func (a AuthenticationInfo) Principal() string {
	return a.principal
}

// Credentials returns the verifying secret paired with the principal.
func (a AuthenticationInfo) Credentials() string {
	return a.credentials
}

// IsEmpty reports whether no principal is held.
func (a AuthenticationInfo) IsEmpty() bool {
	return a.principal == ""
}

// String implements fmt.Stringer. Credentials are never printed.
func (a AuthenticationInfo) String() string {
	return fmt.Sprintf("AuthenticationInfo(principal=%s, credentials=*******)", a.principal)
}

// AuthorizationInfo holds a subject's access-control data: the set of role
// names and the set of permission strings granted to it.
type AuthorizationInfo struct {
	roles       map[string]struct{}
	permissions []string
}

// NewAuthorizationInfo creates an AuthorizationInfo from role and
// permission lists. Duplicate roles collapse; permission order is kept.
func NewAuthorizationInfo(roles, permissions []string) AuthorizationInfo {
	rs := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	ps := make([]string, len(permissions))
	copy(ps, permissions)
	return AuthorizationInfo{
		roles:       rs,
		permissions: ps,
	}
}

// HasRole reports whether the given role is held.
func (a AuthorizationInfo) HasRole(role string) bool {
	_, ok := a.roles[role]
	return ok
}

// Roles returns the held role names, sorted.
func (a AuthorizationInfo) Roles() []string {
	out := make([]string, 0, len(a.roles))
	for r := range a.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Permissions returns a copy of the held permission strings.
func (a AuthorizationInfo) Permissions() []string {
	out := make([]string, len(a.permissions))
	copy(out, a.permissions)
	return out
}

// String implements fmt.Stringer.
func (a AuthorizationInfo) String() string {
	return fmt.Sprintf("AuthorizationInfo(roles=%v, permissions=%d)", a.Roles(), len(a.permissions))
}
