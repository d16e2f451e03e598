package service

import (
	"sync"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

// Authorizer holds the current AuthorizationInfo and answers role and
// permission queries. All query methods are side-effect-free reads and
// deny when no info is held.
type Authorizer struct {
	mu   sync.RWMutex
	info *domain.AuthorizationInfo

	// Held permissions parsed once per SetInfo. Unparseable permission
	// strings are dropped; they can never match anything.
	parsed []domain.Permission
}

// NewAuthorizer creates an Authorizer holding no authorization info.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// SetInfo replaces the held authorization info as a whole, typically
// after (re-)authentication.
func (a *Authorizer) SetInfo(info domain.AuthorizationInfo) {
	parsed := make([]domain.Permission, 0, len(info.Permissions()))
	for _, s := range info.Permissions() {
		if p, err := domain.ParsePermission(s); err == nil {
			parsed = append(parsed, p)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.info = &info
	a.parsed = parsed
}

// ClearInfo drops the held authorization info.
func (a *Authorizer) ClearInfo() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.info = nil
	a.parsed = nil
}

// HasInfo reports whether authorization info is held.
func (a *Authorizer) HasInfo() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.info != nil
}

// HasRole reports whether the named role is held.
func (a *Authorizer) HasRole(role string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.info != nil && a.info.HasRole(role)
}

// HasAllRoles reports whether every named role is held.
func (a *Authorizer) HasAllRoles(roles ...string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.info == nil {
		return false
	}
	for _, r := range roles {
		if !a.info.HasRole(r) {
			return false
		}
	}
	return true
}

// HasAnyRole reports whether at least one named role is held.
func (a *Authorizer) HasAnyRole(roles ...string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.info == nil {
		return false
	}
	for _, r := range roles {
		if a.info.HasRole(r) {
			return true
		}
	}
	return false
}

// IsPermitted reports whether at least one held permission implies the
// requested permission string.
func (a *Authorizer) IsPermitted(permission string) bool {
	requested, err := domain.ParsePermission(permission)
	if err != nil {
		return false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, held := range a.parsed {
		if held.Implies(requested) {
			return true
		}
	}
	return false
}

// IsPermittedAll reports whether every requested permission is permitted.
func (a *Authorizer) IsPermittedAll(permissions ...string) bool {
	for _, p := range permissions {
		if !a.IsPermitted(p) {
			return false
		}
	}
	return true
}

// IsPermittedAny reports whether at least one requested permission is
// permitted.
func (a *Authorizer) IsPermittedAny(permissions ...string) bool {
	for _, p := range permissions {
		if a.IsPermitted(p) {
			return true
		}
	}
	return false
}

// Roles returns the held role names, or nil when no info is held.
func (a *Authorizer) Roles() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.info == nil {
		return nil
	}
	return a.info.Roles()
}
