// Package domain defines the core domain models for RouteGuard.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionHandlePrefix is the prefix for session handles.
const SessionHandlePrefix = "rgss-"

// sessionHandleLength is prefix (5) + lowercase ULID (26).
const sessionHandleLength = 31

// Session is the authenticated state held by a Subject. It is created on
// successful authentication or restoration and destroyed on logout.
type Session struct {
	// ID is the session handle. Format: rgss-{ulid_lowercase}.
	ID string `json:"id"`

	// Authc is the verified identity for this session.
	Authc AuthenticationInfo `json:"-"`

	// Authz is the access-control data for this session.
	Authz AuthorizationInfo `json:"-"`

	// Remembered marks a session re-established from persisted state
	// rather than from submitted credentials.
	Remembered bool `json:"remembered"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewSession creates a Session with a generated handle.
func NewSession(authc AuthenticationInfo, authz AuthorizationInfo, remembered bool) (*Session, error) {
	id, err := GenerateSessionHandle()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         id,
		Authc:      authc,
		Authz:      authz,
		Remembered: remembered,
		CreatedAt:  time.Now().UnixMilli(),
	}, nil
}

// IsAnonymous reports whether the session holds no verified identity.
func (s *Session) IsAnonymous() bool {
	return s == nil || s.Authc.IsEmpty()
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// sessionRecord is the wire form of a session for persisted storage.
// Authc/Authz use unexported fields, so persistence flattens them here.
type sessionRecord struct {
	ID          string   `json:"id"`
	Principal   string   `json:"principal"`
	Credentials string   `json:"credentials"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Remembered  bool     `json:"remembered"`
	CreatedAt   int64    `json:"created_at"`
}

// Encode serializes the session for persisted storage.
func (s *Session) Encode() ([]byte, error) {
	rec := sessionRecord{
		ID:          s.ID,
		Principal:   s.Authc.Principal(),
		Credentials: s.Authc.Credentials(),
		Roles:       s.Authz.Roles(),
		Permissions: s.Authz.Permissions(),
		Remembered:  s.Remembered,
		CreatedAt:   s.CreatedAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return data, nil
}

// DecodeSession reconstructs a session from its persisted form. The handle
// format is validated; a record with an invalid or missing handle is
// rejected.
func DecodeSession(data []byte) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	if !IsValidSessionHandle(rec.ID) {
		return nil, ErrStorage.WithDetails("invalid session handle in persisted record")
	}
	return &Session{
		ID:         rec.ID,
		Authc:      NewAuthenticationInfo(rec.Principal, rec.Credentials),
		Authz:      NewAuthorizationInfo(rec.Roles, rec.Permissions),
		Remembered: rec.Remembered,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

// GenerateSessionHandle generates a new session handle using ULID.
// Format: rgss-{ulid_lowercase}, 31 characters total.
func GenerateSessionHandle() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return SessionHandlePrefix + strings.ToLower(id.String()), nil
}

// IsValidSessionHandle checks if a string is a valid session handle.
// Handles are normalized to lowercase before validation.
func IsValidSessionHandle(id string) bool {
	id = strings.ToLower(id)
	if !strings.HasPrefix(id, SessionHandlePrefix) {
		return false
	}
	if len(id) != sessionHandleLength {
		return false
	}
	ulidPart := strings.ToUpper(id[len(SessionHandlePrefix):])
	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// MaskHandle masks a session handle for safe logging.
// Example: rgss-01h...x7z
func MaskHandle(handle string) string {
	if len(handle) < 10 || !strings.HasPrefix(handle, SessionHandlePrefix) {
		return "***REDACTED***"
	}
	body := handle[len(SessionHandlePrefix):]
	if len(body) > 6 {
		return SessionHandlePrefix + body[:3] + "..." + body[len(body)-3:]
	}
	return SessionHandlePrefix + "***"
}
