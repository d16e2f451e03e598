package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/routeguard-go/internal/config"
	"github.com/yndnr/routeguard-go/internal/core/service"
	"github.com/yndnr/routeguard-go/internal/filter"
	"github.com/yndnr/routeguard-go/internal/nav"
	"github.com/yndnr/routeguard-go/internal/storage"
	"github.com/yndnr/routeguard-go/internal/storage/memory"
	"github.com/yndnr/routeguard-go/internal/telemetry/logger"
	"github.com/yndnr/routeguard-go/internal/telemetry/metric"
	"github.com/yndnr/routeguard-go/pkg/crypto/seal"
)

// Runtime is the assembled RouteGuard stack a command operates on.
type Runtime struct {
	Config      *config.Config
	Store       storage.KV
	Subject     *service.Subject
	Resolver    *filter.Resolver
	Interceptor *nav.Interceptor
	Redirector  *printRedirector
}

// printRedirector reports filter redirects on stdout, standing in for
// the host application's router.
type printRedirector struct{}

func (printRedirector) Redirect(_ context.Context, target string) {
	fmt.Printf("redirect -> %s\n", target)
}

// buildRuntime loads and verifies the configuration, then assembles the
// storage engine, subject, and interceptor.
func buildRuntime(c *cli.Context) (*Runtime, error) {
	opts := []config.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	cfg, err := config.NewLoader(opts...).Load()
	if err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.Log.Format})
	logger.SetDefault(log)

	var store storage.KV
	if cfg.Storage.Dir != "" {
		store, err = storage.NewBadgerEngine(storage.BadgerConfig{
			Dir:        cfg.Storage.Dir,
			SyncWrites: true,
		}, nil)
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.New()
	}

	var sealer seal.Sealer
	if key := cfg.Storage.SealKeyBytes(); key != nil {
		sealer, err = seal.New(key)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	subject := service.NewSubject(service.SubjectConfig{
		Authenticator: service.NewAuthenticator(service.AuthenticatorConfig{
			LoginURL:  cfg.Auth.LoginURL,
			Timeout:   cfg.Auth.Timeout,
			RateLimit: cfg.Auth.RateLimit,
			RateBurst: cfg.Auth.RateBurst,
		}),
		Store:      store,
		Sealer:     sealer,
		SessionKey: cfg.Storage.SessionKey,
		TokenKey:   cfg.Storage.TokenKey,
		Logger:     log,
		Metrics:    metric.NewRegistry(),
	})

	resolver, err := filter.NewResolver(cfg.Filters)
	if err != nil {
		store.Close()
		return nil, err
	}

	red := &printRedirector{}
	return &Runtime{
		Config:   cfg,
		Store:    store,
		Subject:  subject,
		Resolver: resolver,
		Interceptor: nav.NewInterceptor(nav.InterceptorConfig{
			Subject:     subject,
			Resolver:    resolver,
			Redirector:  red,
			Views:       cfg.Views,
			Store:       store,
			RedirectKey: cfg.Storage.RedirectKey,
		}),
		Redirector: red,
	}, nil
}

// Close releases the runtime's storage engine.
func (r *Runtime) Close() {
	if err := r.Store.Close(); err != nil {
		PrintError("closing store: %v", err)
	}
}

// restore brings persisted session state back before a query command
// runs, trying the synchronous restore first and remember-me second.
func (r *Runtime) restore(ctx context.Context) {
	if r.Subject.RestoreAuth(ctx) {
		return
	}
	if _, err := r.Subject.RememberMe(ctx); err != nil {
		logger.Default().Warn("remember-me re-authentication failed", "error", err)
	}
}
