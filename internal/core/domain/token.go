package domain

import "encoding/json"

// Token is a consolidation of a principal and supporting credentials
// submitted during a single authentication attempt, plus the remember-me
// flag controlling session continuity.
//
// A Token is mutable scratch state owned by the caller; it is distinct from
// AuthenticationInfo, which represents verified account data returned by
// the backend after a successful attempt.
type Token struct {
	Principal   string `json:"principal"`
	Credentials string `json:"credentials"`
	RememberMe  bool   `json:"rememberMe"`
}

// tokenPayload mirrors Token with optional fields so Deserialize can
// distinguish absent fields from zero values.
type tokenPayload struct {
	Principal   *string `json:"principal"`
	Credentials *string `json:"credentials"`
	RememberMe  *bool   `json:"rememberMe"`
}

// NewToken creates a Token for the given principal and credentials.
func NewToken(principal, credentials string) *Token {
	return &Token{
		Principal:   principal,
		Credentials: credentials,
	}
}

// IsUsable reports whether the token carries both a principal and
// credentials, the precondition for an authentication attempt.
func (t *Token) IsUsable() bool {
	return t != nil && t.Principal != "" && t.Credentials != ""
}

// Clear wipes the principal and credentials and resets the remember-me flag.
func (t *Token) Clear() {
	t.Principal = ""
	t.Credentials = ""
	t.RememberMe = false
}

// Serialize encodes the token as a flat string. The encoding round-trips
// losslessly through Deserialize for any field values.
func (t *Token) Serialize() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return string(data), nil
}

// Deserialize decodes an encoded token and merges it onto the receiver in
// place. Fields absent from the payload are left untouched. No semantic
// validation is performed; callers submitting the result to an
// authenticator get validation there.
func (t *Token) Deserialize(s string) error {
	var payload tokenPayload
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return ErrTokenDecode.WithCause(err)
	}

	if payload.Principal != nil {
		t.Principal = *payload.Principal
	}
	if payload.Credentials != nil {
		t.Credentials = *payload.Credentials
	}
	if payload.RememberMe != nil {
		t.RememberMe = *payload.RememberMe
	}
	return nil
}
