// Package config defines the RouteGuard configuration structure.
package config

import "time"

// Config is the root configuration for a RouteGuard host.
type Config struct {
	Auth    AuthSection    `koanf:"auth"`
	Views   ViewsSection   `koanf:"views"`
	Storage StorageSection `koanf:"storage"`
	Filters []FilterRule   `koanf:"filters"`
	Log     LogSection     `koanf:"log"`
}

// AuthSection configures the authentication client.
type AuthSection struct {
	// LoginURL is the login endpoint URL. Required for Login/RememberMe.
	LoginURL string `koanf:"login_url"`

	// Timeout is the per-request timeout for the authenticate call.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the allowed sustained login attempts per second.
	// Zero disables local rate limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the allowed burst of login attempts.
	RateBurst int `koanf:"rate_burst"`
}

// ViewsSection configures the navigation targets used by filters.
type ViewsSection struct {
	// Login is the login view path.
	Login string `koanf:"login"`

	// Index is the default/index view path.
	Index string `koanf:"index"`

	// Unauthorized is the view shown on failed role/permission checks.
	Unauthorized string `koanf:"unauthorized"`
}

// StorageSection configures persisted remember-me state.
type StorageSection struct {
	// Dir is the data directory for the durable engine.
	// Empty selects the in-memory engine.
	Dir string `koanf:"dir"`

	// SessionKey is the storage key for the persisted session record.
	SessionKey string `koanf:"session_key"`

	// TokenKey is the storage key for the persisted remember-me token.
	TokenKey string `koanf:"token_key"`

	// RedirectKey is the storage key for the pending redirect target.
	RedirectKey string `koanf:"redirect_key"`

	// SealKey is the hex-encoded 32-byte key sealing persisted payloads.
	// Empty stores payloads unsealed.
	SealKey string `koanf:"seal_key"`
}

// FilterRule maps a path pattern to an ordered filter chain.
// Rules are evaluated in configured order; the first matching pattern
// wins, so authors order rules most-specific-first.
type FilterRule struct {
	// Pattern is an exact path or a trailing-wildcard prefix ("/admin/*").
	Pattern string `koanf:"pattern"`

	// Filters is the ordered list of filter names, e.g.
	// ["authc", "roles[ADMIN]"].
	Filters []string `koanf:"filters"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
