// Package metric provides Prometheus metrics for RouteGuard.
//
// It exposes login outcomes, session restoration attempts, filter-chain
// decisions, and the active-session gauge.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeTransport = "transport"
	OutcomeMalformed = "malformed"
	OutcomeStale     = "stale"
)

// Restore mode label values.
const (
	ModeStorage    = "storage"
	ModeRememberMe = "remember_me"
)

// Filter decision label values.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Registry holds all application metrics.
type Registry struct {
	// Logins counts authentication attempts by outcome.
	Logins *prometheus.CounterVec

	// Restores counts session restoration attempts by mode and outcome.
	Restores *prometheus.CounterVec

	// FilterDecisions counts filter evaluations by filter name and decision.
	FilterDecisions *prometheus.CounterVec

	// Navigations counts navigation events handled by the interceptor.
	Navigations prometheus.Counter

	// SessionActive is 1 while an authenticated session is held.
	SessionActive prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a metrics registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routeguard",
			Name:      "logins_total",
			Help:      "Authentication attempts by outcome.",
		}, []string{"outcome"}),

		Restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routeguard",
			Name:      "restores_total",
			Help:      "Session restoration attempts by mode and outcome.",
		}, []string{"mode", "outcome"}),

		FilterDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routeguard",
			Name:      "filter_decisions_total",
			Help:      "Filter evaluations by filter name and decision.",
		}, []string{"filter", "decision"}),

		Navigations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "routeguard",
			Name:      "navigations_total",
			Help:      "Navigation events handled by the interceptor.",
		}),

		SessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "routeguard",
			Name:      "session_active",
			Help:      "Whether an authenticated session is currently held.",
		}),

		registry: reg,
	}

	reg.MustRegister(r.Logins, r.Restores, r.FilterDecisions, r.Navigations, r.SessionActive)
	return r
}

// Handler returns an HTTP handler exposing the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and embedding hosts.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
