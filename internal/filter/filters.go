// Package filter implements route filtering: named guard filters, the
// pattern resolver that maps navigation paths to filter chains, and the
// short-circuiting chain evaluator.
package filter

import (
	"context"

	"github.com/yndnr/routeguard-go/internal/config"
	"github.com/yndnr/routeguard-go/internal/core/domain"
	"github.com/yndnr/routeguard-go/internal/core/service"
	"github.com/yndnr/routeguard-go/internal/storage"
	"github.com/yndnr/routeguard-go/internal/telemetry/logger"
	"github.com/yndnr/routeguard-go/internal/telemetry/metric"
)

// Redirector performs view navigation as a filter side effect. The host
// application supplies the implementation.
type Redirector interface {
	Redirect(ctx context.Context, target string)
}

// Env carries the collaborators a filter may touch while evaluating a
// navigation event.
type Env struct {
	Subject    *service.Subject
	Redirector Redirector
	Views      config.ViewsSection

	// Store and RedirectKey locate the pending-redirect slot used to
	// resume the originally requested path after login.
	Store       storage.KV
	RedirectKey string

	Logger  logger.Logger
	Metrics *metric.Registry
}

// log returns the configured logger or the package default.
func (e *Env) log() logger.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logger.Default()
}

// savePendingRedirect remembers the denied path so the host can resume
// it after a successful login. Best effort.
func (e *Env) savePendingRedirect(ctx context.Context, path string) {
	if e.Store == nil || e.RedirectKey == "" {
		return
	}
	if err := e.Store.Set(ctx, e.RedirectKey, []byte(path)); err != nil {
		e.log().Warn("failed to save pending redirect", "path", path, "error", err)
	}
}

// Filter is a single guard in a route's filter chain. Allow reports
// whether navigation may proceed past this filter; a denying filter has
// already performed its side effects (redirects, logout) when it
// returns.
type Filter interface {
	Name() string
	Allow(ctx context.Context, env *Env, path string) bool
}

// Parse builds a filter instance from its configured name, for example
// "authc" or "roles[ADMIN,AUDITOR]".
func Parse(name string) (Filter, error) {
	base, args, err := config.SplitFilterName(name)
	if err != nil {
		return nil, err
	}

	switch base {
	case "anon":
		return anonFilter{}, nil
	case "authc":
		return authcFilter{}, nil
	case "logout":
		return logoutFilter{}, nil
	case "roles":
		if len(args) == 0 {
			return nil, domain.ErrConfigInvalid.WithDetails("roles filter requires at least one role")
		}
		return rolesFilter{name: name, roles: args}, nil
	case "perms":
		if len(args) == 0 {
			return nil, domain.ErrConfigInvalid.WithDetails("perms filter requires at least one permission")
		}
		return permsFilter{name: name, perms: args}, nil
	default:
		return nil, domain.ErrConfigInvalid.WithDetails("unknown filter: " + base)
	}
}

// anonFilter admits unauthenticated visitors. Authenticated subjects
// have no business on anonymous-only routes (login, signup) and are
// sent to the index view instead.
type anonFilter struct{}

func (anonFilter) Name() string { return "anon" }

func (anonFilter) Allow(ctx context.Context, env *Env, _ string) bool {
	if !env.Subject.IsAuthenticated() {
		return true
	}
	if env.Redirector != nil {
		env.Redirector.Redirect(ctx, env.Views.Index)
	}
	return false
}

// authcFilter requires an authenticated subject. On deny it saves the
// requested path for post-login resumption and redirects to the login
// view.
type authcFilter struct{}

func (authcFilter) Name() string { return "authc" }

func (authcFilter) Allow(ctx context.Context, env *Env, path string) bool {
	if env.Subject.IsAuthenticated() {
		return true
	}
	env.savePendingRedirect(ctx, path)
	if env.Redirector != nil {
		env.Redirector.Redirect(ctx, env.Views.Login)
	}
	return false
}

// logoutFilter logs the subject out and redirects to the login view. It
// always denies so nothing after it in the chain runs and the guarded
// route itself never renders.
type logoutFilter struct{}

func (logoutFilter) Name() string { return "logout" }

func (logoutFilter) Allow(ctx context.Context, env *Env, _ string) bool {
	env.Subject.Logout(ctx)
	if env.Redirector != nil {
		env.Redirector.Redirect(ctx, env.Views.Login)
	}
	return false
}

// rolesFilter requires every listed role. Unauthenticated subjects are
// sent to the login view; authenticated subjects missing a role go to
// the unauthorized view.
type rolesFilter struct {
	name  string
	roles []string
}

func (f rolesFilter) Name() string { return f.name }

func (f rolesFilter) Allow(ctx context.Context, env *Env, path string) bool {
	if !env.Subject.IsAuthenticated() {
		env.savePendingRedirect(ctx, path)
		if env.Redirector != nil {
			env.Redirector.Redirect(ctx, env.Views.Login)
		}
		return false
	}
	if env.Subject.HasAllRoles(f.roles...) {
		return true
	}
	if env.Redirector != nil {
		env.Redirector.Redirect(ctx, env.Views.Unauthorized)
	}
	return false
}

// permsFilter requires every listed permission, using wildcard implies
// semantics.
type permsFilter struct {
	name  string
	perms []string
}

func (f permsFilter) Name() string { return f.name }

func (f permsFilter) Allow(ctx context.Context, env *Env, path string) bool {
	if !env.Subject.IsAuthenticated() {
		env.savePendingRedirect(ctx, path)
		if env.Redirector != nil {
			env.Redirector.Redirect(ctx, env.Views.Login)
		}
		return false
	}
	if env.Subject.IsPermittedAll(f.perms...) {
		return true
	}
	if env.Redirector != nil {
		env.Redirector.Redirect(ctx, env.Views.Unauthorized)
	}
	return false
}
