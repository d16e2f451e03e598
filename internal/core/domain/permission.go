package domain

import "strings"

// Permission string syntax.
const (
	// PermissionDelimiter separates the hierarchical segments of a
	// permission string, e.g. "book$read$42".
	PermissionDelimiter = "$"

	// PermissionWildcard matches any value for a segment. A trailing
	// wildcard also matches all segments beyond it.
	PermissionWildcard = "*"
)

// Permission is a parsed hierarchical permission string.
//
// Matching a held permission P against a requested permission R succeeds
// iff each segment of P is either the wildcard or textually equal to the
// corresponding segment of R, and any length mismatch is covered by
// wildcards: a shorter P needs a trailing wildcard (implicit wildcard
// tail), a longer P needs wildcards in every extra segment. Comparison is
// case-sensitive.
type Permission struct {
	segments []string
}

// ParsePermission parses a permission string. An empty string or a string
// with an empty segment is rejected.
func ParsePermission(s string) (Permission, error) {
	if s == "" {
		return Permission{}, ErrTokenInvalid.WithDetails("empty permission string")
	}
	segments := strings.Split(s, PermissionDelimiter)
	for _, seg := range segments {
		if seg == "" {
			return Permission{}, ErrTokenInvalid.WithDetails("permission string has empty segment: " + s)
		}
	}
	return Permission{segments: segments}, nil
}

// MustParsePermission is like ParsePermission but panics on invalid input.
// Intended for static permission literals.
func MustParsePermission(s string) Permission {
	p, err := ParsePermission(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical string form.
func (p Permission) String() string {
	return strings.Join(p.segments, PermissionDelimiter)
}

// IsZero reports whether the permission holds no segments.
func (p Permission) IsZero() bool {
	return len(p.segments) == 0
}

// Implies reports whether the held permission p grants the requested
// permission r.
func (p Permission) Implies(r Permission) bool {
	if p.IsZero() || r.IsZero() {
		return false
	}

	for i, seg := range p.segments {
		if i >= len(r.segments) {
			// Held is more specific than requested; every extra held
			// segment must be a wildcard.
			if seg != PermissionWildcard {
				return false
			}
			continue
		}
		if seg != PermissionWildcard && seg != r.segments[i] {
			return false
		}
	}

	if len(p.segments) < len(r.segments) {
		// Implicit wildcard tail: "book$*" grants "book$read$42".
		return p.segments[len(p.segments)-1] == PermissionWildcard
	}
	return true
}

// ImpliesString is a convenience wrapper parsing the requested permission.
// Returns false if the requested string is invalid.
func (p Permission) ImpliesString(requested string) bool {
	r, err := ParsePermission(requested)
	if err != nil {
		return false
	}
	return p.Implies(r)
}
