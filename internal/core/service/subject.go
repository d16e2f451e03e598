package service

import (
	"context"
	"errors"
	"sync"

	"github.com/yndnr/routeguard-go/internal/core/domain"
	"github.com/yndnr/routeguard-go/internal/storage"
	"github.com/yndnr/routeguard-go/internal/telemetry/logger"
	"github.com/yndnr/routeguard-go/internal/telemetry/metric"
	"github.com/yndnr/routeguard-go/pkg/crypto/seal"
)

// AAD labels binding sealed payloads to their storage slot, so a sealed
// token cannot be replayed into the session slot or vice versa.
const (
	sealLabelSession = "routeguard.session"
	sealLabelToken   = "routeguard.token"
)

// SubjectConfig holds the collaborators and storage keys for a Subject.
type SubjectConfig struct {
	// Authenticator issues the authenticate call. Required.
	Authenticator *Authenticator

	// Store persists remember-me state. Required.
	Store storage.KV

	// Sealer seals persisted payloads at rest. Nil stores them unsealed.
	Sealer seal.Sealer

	// SessionKey and TokenKey are the storage keys for the persisted
	// session record and remember-me token.
	SessionKey string
	TokenKey   string

	// Logger defaults to the package default logger.
	Logger logger.Logger

	// Metrics is optional.
	Metrics *metric.Registry
}

// Subject is the session state machine representing the current actor:
// whether they are authenticated, their session, and their authorization
// data. It mediates login, logout, restoration, and remember-me silent
// re-authentication.
//
// A Subject is either UNAUTHENTICATED (initial) or AUTHENTICATED, and
// the two are observable only through IsAuthenticated: authenticated
// implies a held session with a verified identity. Authorization queries
// deny (never panic, never error) while unauthenticated.
//
// All methods are safe for concurrent use. Login and RememberMe suspend
// for a network round trip; every other operation runs to completion
// synchronously.
type Subject struct {
	authenticator *Authenticator
	authorizer    *Authorizer
	store         storage.KV
	sealer        seal.Sealer
	sessionKey    string
	tokenKey      string
	logger        logger.Logger
	metrics       *metric.Registry

	mu            sync.Mutex
	authenticated bool
	session       *domain.Session

	// epoch invalidates in-flight authentications: Logout increments it,
	// and a login resolving against an older epoch is discarded instead
	// of resurrecting a dead session.
	epoch uint64

	// restoreMu serializes restoration attempts so overlapping
	// navigation events cannot issue duplicate silent re-authentications.
	restoreMu sync.Mutex
}

// NewSubject creates an unauthenticated Subject.
func NewSubject(cfg SubjectConfig) *Subject {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Subject{
		authenticator: cfg.Authenticator,
		authorizer:    NewAuthorizer(),
		store:         cfg.Store,
		sealer:        cfg.Sealer,
		sessionKey:    cfg.SessionKey,
		tokenKey:      cfg.TokenKey,
		logger:        log,
		metrics:       cfg.Metrics,
	}
}

// Authorizer returns the Subject's authorization decision engine.
// Query methods on it are not gated on authentication state; callers
// wanting deny-by-default semantics use the Subject's own query methods.
func (s *Subject) Authorizer() *Authorizer {
	return s.authorizer
}

// Login authenticates the token against the configured endpoint, and on
// success transitions the Subject to AUTHENTICATED with the returned
// identity and authorization data.
//
// On any failure the Subject keeps its previous state; there is no
// partial transition. When the token carries the remember-me flag, the
// session handle and serialized token are persisted for later silent
// re-authentication.
func (s *Subject) Login(ctx context.Context, token *domain.Token) error {
	return s.login(ctx, token, false)
}

func (s *Subject) login(ctx context.Context, token *domain.Token, remembered bool) error {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	payload, err := s.authenticator.Authenticate(ctx, token)
	if err != nil {
		s.countLogin(loginOutcome(err))
		return err
	}

	authc, authz, err := ParseAuthenticationResponse(payload)
	if err != nil {
		s.countLogin(metric.OutcomeMalformed)
		return err
	}

	sess, err := domain.NewSession(authc, authz, remembered)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		// Logged out (or otherwise invalidated) while the request was in
		// flight; the result belongs to a dead session.
		s.countLogin(metric.OutcomeStale)
		return domain.ErrStaleAuthentication
	}

	s.session = sess
	s.authenticated = true
	s.authorizer.SetInfo(authz)

	if token.RememberMe {
		s.persistLocked(ctx, sess, token)
	}

	s.countLogin(metric.OutcomeSuccess)
	if s.metrics != nil {
		s.metrics.SessionActive.Set(1)
	}
	s.logger.Info("subject authenticated",
		"principal", authc.Principal(),
		"session", sess.ID,
		"remembered", remembered)
	return nil
}

// Logout clears the session and authorization info, removes persisted
// remember-me entries, and transitions to UNAUTHENTICATED. It is
// idempotent, and any authentication still in flight when it runs will
// be discarded on arrival.
func (s *Subject) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	hadSession := s.session != nil
	sessionID := ""
	if hadSession {
		sessionID = s.session.ID
	}
	s.session = nil
	s.authenticated = false
	s.mu.Unlock()

	s.authorizer.ClearInfo()

	for _, key := range []string{s.sessionKey, s.tokenKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to remove persisted entry on logout", "key", key, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.SessionActive.Set(0)
	}
	if hadSession {
		s.logger.Info("subject logged out", "session", sessionID)
	}
}

// RestoreAuth attempts to reconstruct the session synchronously from
// persisted state, without any network call. It reports whether the
// Subject is authenticated afterwards. Corrupt or unsealable persisted
// records are discarded and treated as absent.
func (s *Subject) RestoreAuth(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated {
		return true
	}

	record, err := s.loadSealed(ctx, s.sessionKey, sealLabelSession)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("discarding unreadable persisted session", "error", err)
			_ = s.store.Delete(ctx, s.sessionKey)
		}
		s.countRestore(metric.ModeStorage, metric.DecisionDeny)
		return false
	}

	sess, err := domain.DecodeSession(record)
	if err != nil || sess.IsAnonymous() {
		s.logger.Warn("discarding invalid persisted session", "error", err)
		_ = s.store.Delete(ctx, s.sessionKey)
		s.countRestore(metric.ModeStorage, metric.DecisionDeny)
		return false
	}

	sess.Remembered = true
	s.session = sess
	s.authenticated = true
	s.authorizer.SetInfo(sess.Authz)

	if s.metrics != nil {
		s.metrics.SessionActive.Set(1)
	}
	s.countRestore(metric.ModeStorage, metric.DecisionAllow)
	s.logger.Info("session restored from storage", "session", sess.ID)
	return true
}

// RememberMe attempts silent re-authentication using the persisted
// remember-me token. It returns (false, nil) immediately when no
// remember-me data is available; otherwise it round-trips to the backend
// to re-fetch current authorization data and reports whether the Subject
// transitioned to AUTHENTICATED.
//
// At most one restoration attempt is outstanding at a time: overlapping
// callers serialize, and a caller arriving after a successful attempt
// returns true without issuing a duplicate request.
func (s *Subject) RememberMe(ctx context.Context) (bool, error) {
	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	if s.IsAuthenticated() {
		return true, nil
	}

	encoded, err := s.loadSealed(ctx, s.tokenKey, sealLabelToken)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("discarding unreadable remember-me token", "error", err)
			_ = s.store.Delete(ctx, s.tokenKey)
		}
		s.countRestore(metric.ModeRememberMe, metric.DecisionDeny)
		return false, nil
	}

	var token domain.Token
	if err := token.Deserialize(string(encoded)); err != nil || !token.IsUsable() {
		s.logger.Warn("discarding invalid remember-me token", "error", err)
		_ = s.store.Delete(ctx, s.tokenKey)
		s.countRestore(metric.ModeRememberMe, metric.DecisionDeny)
		return false, nil
	}
	token.RememberMe = true

	if err := s.login(ctx, &token, true); err != nil {
		s.countRestore(metric.ModeRememberMe, metric.DecisionDeny)
		return false, err
	}
	s.countRestore(metric.ModeRememberMe, metric.DecisionAllow)
	return true, nil
}

// HasRememberMeData reports whether a persisted remember-me token exists,
// without attempting re-authentication.
func (s *Subject) HasRememberMeData(ctx context.Context) bool {
	_, err := s.store.Get(ctx, s.tokenKey)
	return err == nil
}

// IsAuthenticated reports whether the Subject holds an authenticated
// session.
func (s *Subject) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsRemembered reports whether the current session was re-established
// from persisted state rather than submitted credentials.
func (s *Subject) IsRemembered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.Remembered
}

// Session returns the current session. With create set and no session
// held, an anonymous session is created and retained; it does not make
// the Subject authenticated.
func (s *Subject) Session(create bool) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil && create {
		sess, err := domain.NewSession(domain.AuthenticationInfo{}, domain.AuthorizationInfo{}, false)
		if err != nil {
			s.logger.Error("failed to create anonymous session", "error", err)
			return nil
		}
		s.session = sess
	}
	return s.session
}

// Principal returns the authenticated principal, or "" when
// unauthenticated.
func (s *Subject) Principal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.session == nil {
		return ""
	}
	return s.session.Authc.Principal()
}

// HasRole reports whether the authenticated subject holds the role.
// Always false when unauthenticated.
func (s *Subject) HasRole(role string) bool {
	return s.IsAuthenticated() && s.authorizer.HasRole(role)
}

// HasAllRoles reports whether every named role is held.
func (s *Subject) HasAllRoles(roles ...string) bool {
	return s.IsAuthenticated() && s.authorizer.HasAllRoles(roles...)
}

// HasAnyRole reports whether at least one named role is held.
func (s *Subject) HasAnyRole(roles ...string) bool {
	return s.IsAuthenticated() && s.authorizer.HasAnyRole(roles...)
}

// LacksRole is the negation of HasRole; it is true when unauthenticated.
func (s *Subject) LacksRole(role string) bool {
	return !s.HasRole(role)
}

// IsPermitted reports whether the requested permission is granted.
// Always false when unauthenticated.
func (s *Subject) IsPermitted(permission string) bool {
	return s.IsAuthenticated() && s.authorizer.IsPermitted(permission)
}

// IsPermittedAll reports whether every requested permission is granted.
func (s *Subject) IsPermittedAll(permissions ...string) bool {
	return s.IsAuthenticated() && s.authorizer.IsPermittedAll(permissions...)
}

// IsPermittedAny reports whether at least one requested permission is
// granted.
func (s *Subject) IsPermittedAny(permissions ...string) bool {
	return s.IsAuthenticated() && s.authorizer.IsPermittedAny(permissions...)
}

// LacksPermission is the negation of IsPermitted; it is true when
// unauthenticated.
func (s *Subject) LacksPermission(permission string) bool {
	return !s.IsPermitted(permission)
}

// persistLocked stores the session record and serialized token for
// remember-me continuity. Persistence failures degrade to a
// non-remembered session and are logged, not surfaced: the login itself
// succeeded. Caller holds s.mu.
func (s *Subject) persistLocked(ctx context.Context, sess *domain.Session, token *domain.Token) {
	record, err := sess.Encode()
	if err != nil {
		s.logger.Warn("failed to encode session for persistence", "error", err)
		return
	}
	if err := s.storeSealed(ctx, s.sessionKey, record, sealLabelSession); err != nil {
		s.logger.Warn("failed to persist session record", "error", err)
		return
	}

	encoded, err := token.Serialize()
	if err != nil {
		s.logger.Warn("failed to serialize remember-me token", "error", err)
		return
	}
	if err := s.storeSealed(ctx, s.tokenKey, []byte(encoded), sealLabelToken); err != nil {
		s.logger.Warn("failed to persist remember-me token", "error", err)
	}
}

// storeSealed seals (when a sealer is configured) and stores a payload.
func (s *Subject) storeSealed(ctx context.Context, key string, payload []byte, label string) error {
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(payload, []byte(label))
		if err != nil {
			return domain.ErrStorage.WithCause(err)
		}
		payload = sealed
	}
	return s.store.Set(ctx, key, payload)
}

// loadSealed loads and, when a sealer is configured, opens a payload.
func (s *Subject) loadSealed(ctx context.Context, key string, label string) ([]byte, error) {
	payload, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.sealer != nil {
		opened, err := s.sealer.Open(payload, []byte(label))
		if err != nil {
			return nil, domain.ErrStorage.WithCause(err)
		}
		payload = opened
	}
	return payload, nil
}

func (s *Subject) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(outcome).Inc()
	}
}

func (s *Subject) countRestore(mode, decision string) {
	if s.metrics != nil {
		s.metrics.Restores.WithLabelValues(mode, decision).Inc()
	}
}

// loginOutcome maps an authentication error to its metric label.
func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return metric.OutcomeTransport
	case errors.Is(err, domain.ErrMalformedResponse):
		return metric.OutcomeMalformed
	default:
		return metric.OutcomeInvalid
	}
}
