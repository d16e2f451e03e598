package config

import (
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

// knownFilters are the filter names accepted in rule lists. Parameterized
// filters carry a bracketed argument list, e.g. "roles[ADMIN,EDITOR]".
var knownFilters = map[string]bool{
	"anon":   true,
	"authc":  true,
	"logout": true,
	"roles":  true,
	"perms":  true,
}

// Verify validates the configuration. It returns a DomainError with an
// RG-CONF code describing the first violation found.
func Verify(cfg *Config) error {
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return verifyFilters(cfg.Filters)
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.LoginURL != "" {
		u, err := url.Parse(cfg.LoginURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return domain.ErrConfigInvalid.WithDetails("auth.login_url is not an absolute URL: " + cfg.LoginURL)
		}
	}
	if cfg.RateLimit < 0 {
		return domain.ErrConfigInvalid.WithDetails("auth.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return domain.ErrConfigInvalid.WithDetails("auth.rate_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.SessionKey == "" || cfg.TokenKey == "" || cfg.RedirectKey == "" {
		return domain.ErrConfigInvalid.WithDetails("storage key names must not be empty")
	}
	if cfg.SessionKey == cfg.TokenKey || cfg.SessionKey == cfg.RedirectKey || cfg.TokenKey == cfg.RedirectKey {
		return domain.ErrConfigInvalid.WithDetails("storage key names must be distinct")
	}
	if cfg.SealKey != "" {
		raw, err := hex.DecodeString(cfg.SealKey)
		if err != nil || len(raw) != 32 {
			return domain.ErrConfigInvalid.WithDetails("storage.seal_key must be 64 hex characters (32 bytes)")
		}
	}
	return nil
}

func verifyFilters(rules []FilterRule) error {
	for _, rule := range rules {
		if rule.Pattern == "" {
			return domain.ErrConfigInvalid.WithDetails("filter rule pattern must not be empty")
		}
		for _, name := range rule.Filters {
			base, _, err := SplitFilterName(name)
			if err != nil {
				return err
			}
			if !knownFilters[base] {
				return domain.ErrConfigInvalid.WithDetails("unknown filter: " + name)
			}
		}
	}
	return nil
}

// SplitFilterName splits a configured filter name into its base name and
// bracketed arguments: "roles[ADMIN,EDITOR]" yields ("roles",
// [ADMIN EDITOR]). Names without brackets yield nil arguments.
func SplitFilterName(name string) (string, []string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return name, nil, nil
	}
	if !strings.HasSuffix(name, "]") {
		return "", nil, domain.ErrConfigInvalid.WithDetails("unterminated filter argument list: " + name)
	}
	var args []string
	for _, a := range strings.Split(name[i+1:len(name)-1], ",") {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return name[:i], args, nil
}

// SealKeyBytes decodes the configured seal key. Returns nil when sealing
// is disabled. Verify must have accepted the configuration first.
func (s *StorageSection) SealKeyBytes() []byte {
	if s.SealKey == "" {
		return nil
	}
	raw, err := hex.DecodeString(s.SealKey)
	if err != nil {
		return nil
	}
	return raw
}
