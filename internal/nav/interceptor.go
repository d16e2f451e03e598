// Package nav implements the navigation interceptor: the single entry
// point a host application calls for every route change.
package nav

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/routeguard-go/internal/config"
	"github.com/yndnr/routeguard-go/internal/core/service"
	"github.com/yndnr/routeguard-go/internal/filter"
	"github.com/yndnr/routeguard-go/internal/storage"
	"github.com/yndnr/routeguard-go/internal/telemetry/logger"
	"github.com/yndnr/routeguard-go/internal/telemetry/metric"
)

// InterceptorConfig wires an Interceptor.
type InterceptorConfig struct {
	Subject    *service.Subject
	Resolver   *filter.Resolver
	Redirector filter.Redirector
	Views      config.ViewsSection

	// Store and RedirectKey locate the pending-redirect slot.
	Store       storage.KV
	RedirectKey string

	Logger  logger.Logger
	Metrics *metric.Registry
}

// Interceptor guards navigation events. For each event it restores
// session state if needed, resolves the path's filter chain, and
// evaluates it. Unmatched paths are unguarded and always allowed.
type Interceptor struct {
	subject     *service.Subject
	resolver    *filter.Resolver
	env         *filter.Env
	store       storage.KV
	redirectKey string
	logger      logger.Logger
	metrics     *metric.Registry
}

// NewInterceptor creates an Interceptor.
func NewInterceptor(cfg InterceptorConfig) *Interceptor {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Interceptor{
		subject:  cfg.Subject,
		resolver: cfg.Resolver,
		env: &filter.Env{
			Subject:     cfg.Subject,
			Redirector:  cfg.Redirector,
			Views:       cfg.Views,
			Store:       cfg.Store,
			RedirectKey: cfg.RedirectKey,
			Logger:      log,
			Metrics:     cfg.Metrics,
		},
		store:       cfg.Store,
		redirectKey: cfg.RedirectKey,
		logger:      log,
		metrics:     cfg.Metrics,
	}
}

// OnNavigate handles a navigation event and reports whether the host may
// proceed to the requested path. A false return means a filter denied
// the navigation and has already redirected as its side effect.
//
// Before evaluating filters the interceptor tries to establish session
// state: first a synchronous restore from storage, then remember-me
// silent re-authentication. An error during re-authentication fails
// closed: it is logged, the subject is sent to the login view, and the
// navigation is denied.
func (i *Interceptor) OnNavigate(ctx context.Context, path string) bool {
	if i.metrics != nil {
		i.metrics.Navigations.Inc()
	}
	ctx = logger.WithNavID(ctx, strings.ToLower(ulid.Make().String()))

	if !i.subject.IsAuthenticated() && !i.subject.RestoreAuth(ctx) {
		if _, err := i.subject.RememberMe(ctx); err != nil {
			i.logger.Error("remember-me re-authentication failed", "path", path, "error", err)
			if i.env.Redirector != nil {
				i.env.Redirector.Redirect(ctx, i.env.Views.Login)
			}
			return false
		}
	}

	chain := i.resolver.Resolve(path)
	allowed := filter.Evaluate(ctx, i.env, path, chain)

	if allowed && i.subject.IsAuthenticated() {
		i.resumePendingRedirect(ctx, path)
	}
	return allowed
}

// WatchConfig hot-reloads the filter rules whenever the loader's
// configuration file changes. Reloads that fail verification are logged
// and dropped; the rules in effect stay unchanged. The caller closes the
// returned watcher on shutdown.
func (i *Interceptor) WatchConfig(loader *config.Loader) (*config.Watcher, error) {
	return config.NewWatcher(loader, func(cfg *config.Config) {
		if err := i.resolver.Reload(cfg.Filters); err != nil {
			i.logger.Error("filter rules reload rejected", "error", err)
		}
	}, i.logger)
}

// ConsumePendingRedirect removes and returns the stored post-login
// target. The second return is false when none is pending.
func (i *Interceptor) ConsumePendingRedirect(ctx context.Context) (string, bool) {
	if i.store == nil || i.redirectKey == "" {
		return "", false
	}
	target, err := i.store.Get(ctx, i.redirectKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			i.logger.Warn("failed to read pending redirect", "error", err)
		}
		return "", false
	}
	if err := i.store.Delete(ctx, i.redirectKey); err != nil {
		i.logger.Warn("failed to clear pending redirect", "error", err)
	}
	return string(target), len(target) > 0
}

// resumePendingRedirect sends a freshly authenticated subject back to
// the path it originally requested before being routed to login.
func (i *Interceptor) resumePendingRedirect(ctx context.Context, current string) {
	target, ok := i.ConsumePendingRedirect(ctx)
	if !ok || target == current {
		return
	}
	i.logger.Info("resuming pending redirect", "target", target)
	if i.env.Redirector != nil {
		i.env.Redirector.Redirect(ctx, target)
	}
}
