package config

import "time"

// Default configuration values.
const (
	DefaultLoginView        = "/login"
	DefaultIndexView        = "/"
	DefaultUnauthorizedView = "/unauthorized"

	DefaultSessionKey  = "routeguard.session"
	DefaultTokenKey    = "routeguard.token"
	DefaultRedirectKey = "routeguard.redirect"

	DefaultAuthTimeout = 30 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Auth: AuthSection{
			Timeout: DefaultAuthTimeout,
		},
		Views: ViewsSection{
			Login:        DefaultLoginView,
			Index:        DefaultIndexView,
			Unauthorized: DefaultUnauthorizedView,
		},
		Storage: StorageSection{
			SessionKey:  DefaultSessionKey,
			TokenKey:    DefaultTokenKey,
			RedirectKey: DefaultRedirectKey,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
